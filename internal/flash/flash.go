// Package flash keeps one-shot status messages between a write request and
// the page the browser is redirected to.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Message categories understood by the layout template.
const (
	Info  = "info"
	Error = "error"
)

// Message is a single flash.
type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Store persists flashes for the next request from the same browser.
type Store interface {
	// Add queues m for display on the next page view.
	Add(c echo.Context, m Message) error
	// Pop returns and clears every pending message.
	Pop(c echo.Context) ([]Message, error)
}

// pendingKey holds messages added during the current request so several
// Add calls accumulate instead of overwriting each other's cookie.
const pendingKey = "flash.pending"

func pending(c echo.Context) []Message {
	if v, ok := c.Get(pendingKey).([]Message); ok {
		return v
	}
	return nil
}

func encode(msgs []Message) (string, error) {
	b, err := json.Marshal(msgs)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func decode(s string) ([]Message, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	var msgs []Message
	if err := json.Unmarshal(b, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func expire(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
