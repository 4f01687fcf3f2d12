package router

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/venue-booking-directory/internal/middleware"
	"github.com/iliyamo/venue-booking-directory/internal/view"
)

// ErrorHandler renders the static 404 page for unknown routes and
// resources and the 500 page for everything else.  Server errors are
// logged with the request id.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		}

		page := "errors/500"
		switch {
		case isNotFoundCode(code):
			page = "errors/404"
		case code < http.StatusInternalServerError:
			// Client errors other than 404 (bad form encoding, oversized
			// bodies) get a short plain text answer.
			if werr := c.String(code, http.StatusText(code)); werr != nil {
				logger.Error("write error response", zap.Error(werr))
			}
			return
		default:
			code = http.StatusInternalServerError
			logger.Error("unhandled error",
				zap.Error(err),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.String("request_id", middleware.GetRequestID(c)),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.Render(code, page, view.Page{Title: http.StatusText(code)})
		}
		if err != nil {
			logger.Error("render error page", zap.String("page", page), zap.Error(err))
			_ = c.String(code, http.StatusText(code))
		}
	}
}
