package middleware

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/venue-booking-directory/internal/flash"
)

// FlashesKey is the echo.Context key holding the flash loader for this
// request.
const FlashesKey = "flashes"

// flashLoader pops the pending messages on first use and remembers them.
type flashLoader struct {
	pop    func() ([]flash.Message, error)
	loaded bool
	msgs   []flash.Message
}

// LoadFlashes makes pending flash messages available to GET requests.
// Nothing is popped until a handler asks for them through Flashes, so
// health checks, static assets and redirects leave the messages queued
// for the next rendered page.  Store failures are logged and ignored.
func LoadFlashes(store flash.Store, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == echo.GET {
				c.Set(FlashesKey, &flashLoader{pop: func() ([]flash.Message, error) {
					msgs, err := store.Pop(c)
					if err != nil {
						logger.Warn("flash: pop failed", zap.Error(err), zap.String("request_id", GetRequestID(c)))
					}
					return msgs, err
				}})
			}
			return next(c)
		}
	}
}

// Flashes pops and returns the pending messages for this request.  Repeated
// calls return the same messages.
func Flashes(c echo.Context) []flash.Message {
	l, ok := c.Get(FlashesKey).(*flashLoader)
	if !ok {
		return nil
	}
	if !l.loaded {
		l.msgs, _ = l.pop()
		l.loaded = true
	}
	return l.msgs
}
