package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking-directory/internal/flash"
	"github.com/iliyamo/venue-booking-directory/internal/form"
	"github.com/iliyamo/venue-booking-directory/internal/repository"
	"github.com/iliyamo/venue-booking-directory/internal/service"
	"github.com/iliyamo/venue-booking-directory/internal/view"
)

// Shows renders the full show calendar.
func (h *Handler) Shows(c echo.Context) error {
	rows, err := h.Dir.Shows(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/shows", view.Page{Title: "Shows", Data: rows})
}

// showForm builds the show form with the artist and venue choices.
func (h *Handler) showForm(c echo.Context, fe *form.Errors) (*view.Form, error) {
	artists, venues, err := h.Dir.ShowChoices(c.Request().Context())
	if err != nil {
		return nil, err
	}
	f := &view.Form{Action: "/shows/create", Artists: choices(artists), Venues: choices(venues)}
	if fe != nil {
		f.Values, f.Errors = fe.Values, fe.Fields
	}
	return f, nil
}

func choices(in []service.Choice) []view.Choice {
	out := make([]view.Choice, 0, len(in))
	for _, c := range in {
		out = append(out, view.Choice{ID: c.ID, Name: c.Name})
	}
	return out
}

// CreateShowForm renders the show form.
func (h *Handler) CreateShowForm(c echo.Context) error {
	f, err := h.showForm(c, nil)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "forms/new_show", view.Page{Title: "New show", Form: f})
}

// CreateShow handles POST /shows/create.
func (h *Handler) CreateShow(c echo.Context) error {
	vals, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s, err := form.ParseShow(vals, h.Now())
	if fe, ok := form.AsErrors(err); ok {
		f, ferr := h.showForm(c, fe)
		if ferr != nil {
			return ferr
		}
		return h.redisplay(c, "forms/new_show", "New show", nil, f)
	}
	if err != nil {
		return err
	}

	_, err = h.Dir.CreateShow(c.Request().Context(), s)
	switch {
	case errors.Is(err, repository.ErrArtistNotFound):
		h.notice(c, flash.Error, "Show could not be listed: the artist does not exist.")
	case errors.Is(err, repository.ErrVenueNotFound):
		h.notice(c, flash.Error, "Show could not be listed: the venue does not exist.")
	case err != nil:
		h.notice(c, flash.Error, "Show could not be listed successfully!")
	default:
		h.notice(c, flash.Info, "Show was successfully listed!")
	}
	return redirect(c, "/")
}
