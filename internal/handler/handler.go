// Package handler exposes the HTTP handlers of the directory site.  Reads
// render pages; writes validate the submitted form, persist through the
// directory service, set a flash message and redirect.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/venue-booking-directory/internal/flash"
	"github.com/iliyamo/venue-booking-directory/internal/middleware"
	"github.com/iliyamo/venue-booking-directory/internal/model"
	"github.com/iliyamo/venue-booking-directory/internal/service"
	"github.com/iliyamo/venue-booking-directory/internal/view"
)

// Directory is the application service the handlers depend on.
// *service.Directory implements it.
type Directory interface {
	Areas(ctx context.Context) ([]service.VenueArea, error)
	Venue(ctx context.Context, id uint64) (*service.VenueDetail, error)
	VenueByID(ctx context.Context, id uint64) (*model.Venue, error)
	SearchVenues(ctx context.Context, term string) (*service.SearchResult, error)
	CreateVenue(ctx context.Context, f model.VenueFields) (*model.Venue, error)
	UpdateVenue(ctx context.Context, id uint64, f model.VenueFields) (*model.Venue, error)
	DeleteVenue(ctx context.Context, id uint64) (*service.Deletion, error)

	ArtistNames(ctx context.Context) ([]model.ArtistRef, error)
	Artist(ctx context.Context, id uint64) (*service.ArtistDetail, error)
	ArtistByID(ctx context.Context, id uint64) (*model.Artist, error)
	SearchArtists(ctx context.Context, term string) (*service.SearchResult, error)
	CreateArtist(ctx context.Context, f model.ArtistFields) (*model.Artist, error)
	UpdateArtist(ctx context.Context, id uint64, f model.ArtistFields) (*model.Artist, error)
	DeleteArtist(ctx context.Context, id uint64) (*service.Deletion, error)

	Shows(ctx context.Context) ([]service.ShowRow, error)
	ShowChoices(ctx context.Context) (artists, venues []service.Choice, err error)
	CreateShow(ctx context.Context, s model.Show) (*model.Show, error)
}

// Form-level message shown when validation fails.
const formErrorMessage = "An error occurred with the form. Check form and try again"

// Handler bundles the dependencies shared by every page.
type Handler struct {
	Dir    Directory
	Flash  flash.Store
	Logger *zap.Logger

	// Now is the clock used to default an empty show start time.
	Now func() time.Time
}

// NewHandler constructs a Handler and panics if a dependency is nil.
func NewHandler(dir Directory, store flash.Store, logger *zap.Logger) *Handler {
	if dir == nil || store == nil || logger == nil {
		panic("nil dependency passed to NewHandler")
	}
	return &Handler{
		Dir:    dir,
		Flash:  store,
		Logger: logger,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

// parseID reads the :id path parameter.  Anything but a positive integer
// is treated as an unknown resource.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.ErrNotFound
	}
	return id, nil
}

// render writes page name with the flashes loaded for this request.
func (h *Handler) render(c echo.Context, status int, name string, p view.Page) error {
	p.Flashes = append(middleware.Flashes(c), p.Flashes...)
	return c.Render(status, name, p)
}

// redisplay re-renders a form with the submitted values and per-field
// errors.  The status stays 200 like any other form page.
func (h *Handler) redisplay(c echo.Context, name, title string, data any, f *view.Form) error {
	return h.render(c, http.StatusOK, name, view.Page{
		Title:   title,
		Data:    data,
		Form:    f,
		Flashes: []flash.Message{{Category: flash.Error, Text: formErrorMessage}},
	})
}

// notice queues a flash for the page the client is redirected to.
func (h *Handler) notice(c echo.Context, category, text string) {
	if err := h.Flash.Add(c, flash.Message{Category: category, Text: text}); err != nil {
		h.Logger.Warn("flash: add failed", zap.Error(err), zap.String("request_id", middleware.GetRequestID(c)))
	}
}

// redirect answers a successful or failed write with 303 See Other so the
// browser follows up with a GET.
func redirect(c echo.Context, to string) error {
	return c.Redirect(http.StatusSeeOther, to)
}
