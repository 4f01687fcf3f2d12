package flash

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieName is the cookie holding encoded messages.
const CookieName = "fyyur_flash"

// CookieStore keeps flashes in a short-lived cookie.  Messages are not
// secret, so the cookie is encoded but not signed.
type CookieStore struct {
	TTL time.Duration
}

// NewCookieStore returns a cookie store whose cookie expires after ttl.
func NewCookieStore(ttl time.Duration) *CookieStore {
	return &CookieStore{TTL: ttl}
}

func (s *CookieStore) Add(c echo.Context, m Message) error {
	msgs := append(pending(c), m)
	c.Set(pendingKey, msgs)
	val, err := encode(msgs)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    val,
		Path:     "/",
		MaxAge:   int(s.TTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *CookieStore) Pop(c echo.Context) ([]Message, error) {
	ck, err := c.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return nil, nil
	}
	expire(c, CookieName)
	msgs, err := decode(ck.Value)
	if err != nil {
		// A mangled cookie is dropped rather than shown.
		return nil, nil
	}
	return msgs, nil
}
