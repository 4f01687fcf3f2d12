package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/venue-booking-directory/internal/flash"
	"github.com/iliyamo/venue-booking-directory/internal/handler"
	"github.com/iliyamo/venue-booking-directory/internal/middleware"
	"github.com/iliyamo/venue-booking-directory/internal/model"
	"github.com/iliyamo/venue-booking-directory/internal/repository"
	"github.com/iliyamo/venue-booking-directory/internal/router"
	"github.com/iliyamo/venue-booking-directory/internal/service"
	"github.com/iliyamo/venue-booking-directory/internal/view"
)

// fakeDirectory records writes and serves canned reads.
type fakeDirectory struct {
	venues    map[uint64]*model.Venue
	artists   map[uint64]*model.Artist
	createErr error
	deleted   []uint64
	shows     []model.Show
	updated   map[uint64]model.VenueFields
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		venues: map[uint64]*model.Venue{
			1: {ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA", Address: "1015 Folsom Street", Genres: model.Genres{"Jazz"}},
		},
		artists: map[uint64]*model.Artist{
			4: {ID: 4, Name: "Guns N Petals", City: "San Francisco", State: "CA", SeekingVenue: true},
		},
		updated: map[uint64]model.VenueFields{},
	}
}

func (f *fakeDirectory) Areas(context.Context) ([]service.VenueArea, error) {
	return []service.VenueArea{{City: "San Francisco", State: "CA", Venues: []service.VenueSummary{{ID: 1, Name: "The Musical Hop", NumUpcomingShows: 2}}}}, nil
}

func (f *fakeDirectory) Venue(_ context.Context, id uint64) (*service.VenueDetail, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, repository.ErrVenueNotFound
	}
	return &service.VenueDetail{Venue: v, UpcomingShows: []service.VenueShow{}, PastShows: []service.VenueShow{}}, nil
}

func (f *fakeDirectory) VenueByID(_ context.Context, id uint64) (*model.Venue, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, repository.ErrVenueNotFound
	}
	return v, nil
}

func (f *fakeDirectory) SearchVenues(_ context.Context, term string) (*service.SearchResult, error) {
	res := &service.SearchResult{Term: term, Data: []service.SearchHit{}}
	for _, v := range f.venues {
		if strings.Contains(strings.ToLower(v.Name+" "+v.City), strings.ToLower(term)) {
			res.Data = append(res.Data, service.SearchHit{ID: v.ID, Name: v.Name})
		}
	}
	res.Count = len(res.Data)
	return res, nil
}

func (f *fakeDirectory) CreateVenue(_ context.Context, fields model.VenueFields) (*model.Venue, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	v := &model.Venue{ID: uint64(len(f.venues) + 10)}
	fields.Apply(v)
	f.venues[v.ID] = v
	return v, nil
}

func (f *fakeDirectory) UpdateVenue(_ context.Context, id uint64, fields model.VenueFields) (*model.Venue, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, repository.ErrVenueNotFound
	}
	f.updated[id] = fields
	fields.Apply(v)
	return v, nil
}

func (f *fakeDirectory) DeleteVenue(_ context.Context, id uint64) (*service.Deletion, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, repository.ErrVenueNotFound
	}
	delete(f.venues, id)
	f.deleted = append(f.deleted, id)
	return &service.Deletion{ID: id, Name: v.Name, RemovedShows: 2}, nil
}

func (f *fakeDirectory) ArtistNames(context.Context) ([]model.ArtistRef, error) {
	var out []model.ArtistRef
	for _, a := range f.artists {
		out = append(out, model.ArtistRef{ID: a.ID, Name: a.Name})
	}
	return out, nil
}

func (f *fakeDirectory) Artist(_ context.Context, id uint64) (*service.ArtistDetail, error) {
	a, ok := f.artists[id]
	if !ok {
		return nil, repository.ErrArtistNotFound
	}
	return &service.ArtistDetail{Artist: a}, nil
}

func (f *fakeDirectory) ArtistByID(_ context.Context, id uint64) (*model.Artist, error) {
	a, ok := f.artists[id]
	if !ok {
		return nil, repository.ErrArtistNotFound
	}
	return a, nil
}

func (f *fakeDirectory) SearchArtists(_ context.Context, term string) (*service.SearchResult, error) {
	return &service.SearchResult{Term: term, Data: []service.SearchHit{}}, nil
}

func (f *fakeDirectory) CreateArtist(_ context.Context, fields model.ArtistFields) (*model.Artist, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	a := &model.Artist{ID: uint64(len(f.artists) + 10)}
	fields.Apply(a)
	f.artists[a.ID] = a
	return a, nil
}

func (f *fakeDirectory) UpdateArtist(_ context.Context, id uint64, fields model.ArtistFields) (*model.Artist, error) {
	a, ok := f.artists[id]
	if !ok {
		return nil, repository.ErrArtistNotFound
	}
	fields.Apply(a)
	return a, nil
}

func (f *fakeDirectory) DeleteArtist(_ context.Context, id uint64) (*service.Deletion, error) {
	a, ok := f.artists[id]
	if !ok {
		return nil, repository.ErrArtistNotFound
	}
	delete(f.artists, id)
	return &service.Deletion{ID: id, Name: a.Name}, nil
}

func (f *fakeDirectory) Shows(context.Context) ([]service.ShowRow, error) {
	return []service.ShowRow{{ID: 1, VenueID: 1, VenueName: "The Musical Hop", ArtistID: 4, ArtistName: "Guns N Petals",
		StartTime: time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC), Upcoming: true}}, nil
}

func (f *fakeDirectory) ShowChoices(context.Context) ([]service.Choice, []service.Choice, error) {
	return []service.Choice{{ID: 4, Name: "Guns N Petals"}}, []service.Choice{{ID: 1, Name: "The Musical Hop"}}, nil
}

func (f *fakeDirectory) CreateShow(_ context.Context, s model.Show) (*model.Show, error) {
	if _, ok := f.artists[s.ArtistID]; !ok {
		return nil, repository.ErrArtistNotFound
	}
	if _, ok := f.venues[s.VenueID]; !ok {
		return nil, repository.ErrVenueNotFound
	}
	s.ID = uint64(len(f.shows) + 1)
	f.shows = append(f.shows, s)
	return &s, nil
}

var testNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func newServer(t *testing.T, dir *fakeDirectory) *echo.Echo {
	t.Helper()
	r, err := view.New()
	require.NoError(t, err)

	logger := zap.NewNop()
	store := flash.NewCookieStore(time.Minute)
	h := handler.NewHandler(dir, store, logger)
	h.Now = func() time.Time { return testNow }

	e := echo.New()
	e.Renderer = r
	e.HTTPErrorHandler = router.ErrorHandler(logger)
	e.Use(middleware.RequestID(), echomw.Recover(), middleware.LoadFlashes(store, logger))
	router.RegisterRoutes(e, h, router.PassThrough)
	return e
}

func do(e *echo.Echo, method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// followFlash replays the flash cookie set by rec on a GET of path.
func followFlash(e *echo.Echo, rec *httptest.ResponseRecorder, path string) string {
	var cookies []*http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == flash.CookieName && ck.MaxAge > 0 {
			cookies = append(cookies, ck)
		}
	}
	if len(cookies) > 1 {
		cookies = cookies[len(cookies)-1:]
	}
	return do(e, http.MethodGet, path, nil, cookies...).Body.String()
}

func venueForm() url.Values {
	return url.Values{
		"name":          {"Park Square Live Music & Coffee"},
		"city":          {"San Francisco"},
		"state":         {"CA"},
		"address":       {"34 Whiskey Moore Ave"},
		"phone":         {"415-000-1234"},
		"genres":        {"Rock n Roll", "Jazz"},
		"facebook_link": {"https://www.facebook.com/ParkSquareLiveMusicAndCoffee"},
	}
}
