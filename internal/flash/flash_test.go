package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestCookieStoreRoundTrip(t *testing.T) {
	store := NewCookieStore(time.Minute)

	c, rec := newContext(httptest.NewRequest(http.MethodPost, "/venues/create", nil))
	require.NoError(t, store.Add(c, Message{Category: Info, Text: "Venue The Musical Hop was successfully listed!"}))
	require.NoError(t, store.Add(c, Message{Category: Error, Text: "second"}))

	// Each Add rewrites the cookie with everything queued so far.
	var last *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CookieName {
			last = ck
		}
	}
	require.NotNil(t, last)
	assert.Equal(t, 60, last.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: last.Value})
	c, rec = newContext(req)
	msgs, err := store.Pop(c)
	require.NoError(t, err)
	assert.Equal(t, []Message{
		{Category: Info, Text: "Venue The Musical Hop was successfully listed!"},
		{Category: Error, Text: "second"},
	}, msgs)

	cleared := findCookie(rec, CookieName)
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge)
}

func TestCookieStorePopWithoutCookie(t *testing.T) {
	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/", nil))
	msgs, err := NewCookieStore(time.Minute).Pop(c)
	require.NoError(t, err)
	assert.Empty(t, msgs)
	assert.Nil(t, findCookie(rec, CookieName))
}

func TestCookieStoreDropsMangledCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "%%%not-base64"})
	c, rec := newContext(req)

	msgs, err := NewCookieStore(time.Minute).Pop(c)
	require.NoError(t, err)
	assert.Empty(t, msgs)
	assert.NotNil(t, findCookie(rec, CookieName), "the bad cookie is expired")
}

func TestRedisStoreSessionID(t *testing.T) {
	s := NewRedisStore(nil, time.Minute)

	c, _ := newContext(httptest.NewRequest(http.MethodGet, "/", nil))
	id := s.sessionID(c)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, s.sessionID(c), "id is stable within a request")
	assert.Equal(t, "flash:"+id, s.key(id))

	known := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: known})
	c, _ = newContext(req)
	assert.Equal(t, known, s.sessionID(c))
}

func TestRedisStorePopIgnoresForeignCookie(t *testing.T) {
	s := NewRedisStore(nil, time.Minute)

	c, _ := newContext(httptest.NewRequest(http.MethodGet, "/", nil))
	msgs, err := s.Pop(c)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-uuid"})
	c, rec := newContext(req)
	msgs, err = s.Pop(c)
	require.NoError(t, err)
	assert.Empty(t, msgs)
	assert.NotNil(t, findCookie(rec, SessionCookieName))
}
