package handler_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking-directory/internal/flash"
	"github.com/iliyamo/venue-booking-directory/internal/repository"
)

func TestHealthAndHome(t *testing.T) {
	e := newServer(t, newFakeDirectory())

	rec := do(e, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = do(e, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Post a venue")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestUnknownRouteRenders404Page(t *testing.T) {
	e := newServer(t, newFakeDirectory())
	rec := do(e, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "does not exist")
}

func TestVenuesIndex(t *testing.T) {
	e := newServer(t, newFakeDirectory())
	rec := do(e, http.MethodGet, "/venues", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "San Francisco, CA")
	assert.Contains(t, body, "The Musical Hop")
	assert.Contains(t, body, "2 upcoming shows")
}

func TestVenueDetail(t *testing.T) {
	e := newServer(t, newFakeDirectory())

	rec := do(e, http.MethodGet, "/venues/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1015 Folsom Street")

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/venues/99", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/venues/abc", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/venues/0", nil).Code)
}

func TestSearchVenues(t *testing.T) {
	e := newServer(t, newFakeDirectory())
	rec := do(e, http.MethodPost, "/venues/search", url.Values{"search_term": {"  FRANCISCO "}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `Number of search results for "FRANCISCO": 1`)
	assert.Contains(t, body, `href="/venues/1"`)
}

func TestCreateVenueSuccess(t *testing.T) {
	dir := newFakeDirectory()
	e := newServer(t, dir)

	rec := do(e, http.MethodPost, "/venues/create", venueForm())
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	require.Len(t, dir.venues, 2)
	assert.Equal(t, "Park Square Live Music & Coffee", dir.venues[11].Name)

	home := followFlash(e, rec, "/")
	assert.Contains(t, home, "Venue Park Square Live Music &amp; Coffee was successfully listed!")
}

func TestCreateVenueWithoutAddress(t *testing.T) {
	dir := newFakeDirectory()
	e := newServer(t, dir)

	rec := do(e, http.MethodPost, "/venues/create", url.Values{
		"name":  {"The Fillmore"},
		"city":  {"San Francisco"},
		"state": {"CA"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	require.Len(t, dir.venues, 2)
	v := dir.venues[11]
	assert.Equal(t, "The Fillmore", v.Name)
	assert.Empty(t, v.Address)
	assert.False(t, v.SeekingTalent)
}

func TestFlashSurvivesNonPageRequests(t *testing.T) {
	e := newServer(t, newFakeDirectory())
	rec := do(e, http.MethodPost, "/venues/create", venueForm())
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var ck *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == flash.CookieName && c.MaxAge > 0 {
			ck = c
		}
	}
	require.NotNil(t, ck)

	for _, path := range []string{"/healthz", "/static/css/main.css"} {
		r := do(e, http.MethodGet, path, nil, ck)
		require.Equal(t, http.StatusOK, r.Code, path)
		for _, c := range r.Result().Cookies() {
			assert.NotEqual(t, flash.CookieName, c.Name, "%s must not clear the flash", path)
		}
	}

	home := do(e, http.MethodGet, "/", nil, ck).Body.String()
	assert.Contains(t, home, "was successfully listed!")
}

func TestCreateVenueInvalidRedisplaysForm(t *testing.T) {
	dir := newFakeDirectory()
	e := newServer(t, dir)

	vals := venueForm()
	vals.Del("city")
	vals.Set("phone", "12")
	rec := do(e, http.MethodPost, "/venues/create", vals)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "An error occurred with the form. Check form and try again")
	assert.Contains(t, body, "This field is required.")
	assert.Contains(t, body, "Invalid phone number.")
	assert.Contains(t, body, `value="34 Whiskey Moore Ave"`, "submitted values are kept")
	assert.Len(t, dir.venues, 1, "nothing is written")
}

func TestCreateVenueDuplicate(t *testing.T) {
	dir := newFakeDirectory()
	dir.createErr = repository.ErrDuplicateName
	e := newServer(t, dir)

	rec := do(e, http.MethodPost, "/venues/create", venueForm())
	require.Equal(t, http.StatusSeeOther, rec.Code)
	home := followFlash(e, rec, "/")
	assert.Contains(t, home, "already exists")
	assert.Contains(t, home, "could not be listed.")
}

func TestEditVenue(t *testing.T) {
	dir := newFakeDirectory()
	e := newServer(t, dir)

	rec := do(e, http.MethodGet, "/venues/1/edit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="The Musical Hop"`)
	assert.Contains(t, rec.Body.String(), `action="/venues/1/edit"`)

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/venues/99/edit", nil).Code)

	rec = do(e, http.MethodPost, "/venues/1/edit", venueForm())
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/venues/1", rec.Header().Get("Location"))
	assert.Equal(t, "Park Square Live Music & Coffee", dir.updated[1].Name)
	assert.Contains(t, followFlash(e, rec, "/venues/1"), "was successfully edited!")
}

func TestEditMissingVenueRedirectsWithFlash(t *testing.T) {
	e := newServer(t, newFakeDirectory())
	rec := do(e, http.MethodPost, "/venues/99/edit", venueForm())
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/venues", rec.Header().Get("Location"))
	assert.Contains(t, followFlash(e, rec, "/venues"), "Venue was not found.")
}

func TestDeleteVenue(t *testing.T) {
	dir := newFakeDirectory()
	e := newServer(t, dir)

	rec := do(e, http.MethodGet, "/venues/delete/1", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, []uint64{1}, dir.deleted)
	assert.Contains(t, followFlash(e, rec, "/"), "Venue The Musical Hop was deleted successfully! 2 shows were removed.")

	rec = do(e, http.MethodPost, "/venues/1/delete", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, followFlash(e, rec, "/"), "Venue was not deleted successfully.")
}

func TestArtistPages(t *testing.T) {
	e := newServer(t, newFakeDirectory())

	rec := do(e, http.MethodGet, "/artists", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/artists/4"`)

	rec = do(e, http.MethodGet, "/artists/4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Currently seeking performance venues")

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/artists/5", nil).Code)

	rec = do(e, http.MethodPost, "/artists/search", url.Values{"search_term": {"zzz"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ": 0")
}

func TestCreateArtistRequiresState(t *testing.T) {
	dir := newFakeDirectory()
	e := newServer(t, dir)

	rec := do(e, http.MethodPost, "/artists/create", url.Values{"name": {"The Wild Sax Band"}, "city": {"San Francisco"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "This field is required.")
	assert.Len(t, dir.artists, 1)

	rec = do(e, http.MethodPost, "/artists/create", url.Values{
		"name": {"The Wild Sax Band"}, "city": {"San Francisco"}, "state": {"CA"}, "seeking_venue": {"y"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Len(t, dir.artists, 2)
	assert.True(t, dir.artists[11].SeekingVenue)
}

func TestDeleteMissingArtist(t *testing.T) {
	e := newServer(t, newFakeDirectory())
	rec := do(e, http.MethodGet, "/artists/delete/77", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, followFlash(e, rec, "/"), "Artist was not deleted successfully.")
}

func TestShowsPage(t *testing.T) {
	e := newServer(t, newFakeDirectory())
	rec := do(e, http.MethodGet, "/shows", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sunday April, 1, 2035 at 8:00PM")

	rec = do(e, http.MethodGet, "/shows/create", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Guns N Petals (ID 4)")
}

func TestCreateShow(t *testing.T) {
	dir := newFakeDirectory()
	e := newServer(t, dir)

	rec := do(e, http.MethodPost, "/shows/create", url.Values{"artist_id": {"4"}, "venue_id": {"1"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Len(t, dir.shows, 1)
	assert.True(t, dir.shows[0].StartTime.Equal(testNow), "empty start time means now")
	assert.Contains(t, followFlash(e, rec, "/"), "Show was successfully listed!")

	rec = do(e, http.MethodPost, "/shows/create", url.Values{"artist_id": {"4"}, "venue_id": {"9"}, "start_time": {"2035-04-01 20:00:00"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, followFlash(e, rec, "/"), "the venue does not exist")
	assert.Len(t, dir.shows, 1)
}

func TestCreateShowInvalidRedisplays(t *testing.T) {
	dir := newFakeDirectory()
	e := newServer(t, dir)

	rec := do(e, http.MethodPost, "/shows/create", url.Values{"artist_id": {"x"}, "start_time": {"tomorrow"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "An error occurred with the form")
	assert.Contains(t, body, "The Musical Hop (ID 1)")
	assert.Empty(t, dir.shows)
}
