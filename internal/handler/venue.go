package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/venue-booking-directory/internal/flash"
	"github.com/iliyamo/venue-booking-directory/internal/form"
	"github.com/iliyamo/venue-booking-directory/internal/repository"
	"github.com/iliyamo/venue-booking-directory/internal/service"
	"github.com/iliyamo/venue-booking-directory/internal/view"
)

// Venues renders venues grouped by city and state.
func (h *Handler) Venues(c echo.Context) error {
	areas, err := h.Dir.Areas(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/venues", view.Page{Title: "Venues", Data: areas})
}

// SearchVenues handles POST /venues/search.
func (h *Handler) SearchVenues(c echo.Context) error {
	term := strings.TrimSpace(c.FormValue("search_term"))
	res, err := h.Dir.SearchVenues(c.Request().Context(), term)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/search_venues", view.Page{Title: "Venue search", Data: res})
}

// ShowVenue renders one venue with its past and upcoming shows.
func (h *Handler) ShowVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	detail, err := h.Dir.Venue(c.Request().Context(), id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/show_venue", view.Page{Title: detail.Venue.Name, Data: detail})
}

// CreateVenueForm renders an empty venue form.
func (h *Handler) CreateVenueForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "forms/new_venue", view.Page{
		Title: "New venue",
		Form:  &view.Form{Action: "/venues/create"},
	})
}

// CreateVenue handles POST /venues/create.
func (h *Handler) CreateVenue(c echo.Context) error {
	vals, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	fields, err := form.ParseVenue(vals)
	if fe, ok := form.AsErrors(err); ok {
		return h.redisplay(c, "forms/new_venue", "New venue", nil,
			&view.Form{Action: "/venues/create", Values: fe.Values, Errors: fe.Fields})
	}
	if err != nil {
		return err
	}

	v, err := h.Dir.CreateVenue(c.Request().Context(), fields)
	switch {
	case errors.Is(err, repository.ErrDuplicateName):
		h.notice(c, flash.Error, fmt.Sprintf("A venue named %s already exists. Venue %s could not be listed.", fields.Name, fields.Name))
	case err != nil:
		h.notice(c, flash.Error, fmt.Sprintf("An error occurred. Venue %s could not be listed.", fields.Name))
	default:
		h.notice(c, flash.Info, fmt.Sprintf("Venue %s was successfully listed!", v.Name))
	}
	return redirect(c, "/")
}

// DeleteVenue removes a venue and its shows, then returns to the home page.
func (h *Handler) DeleteVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		h.notice(c, flash.Error, "Venue was not deleted successfully.")
		return redirect(c, "/")
	}
	del, err := h.Dir.DeleteVenue(c.Request().Context(), id)
	if err != nil {
		if !errors.Is(err, repository.ErrVenueNotFound) {
			h.Logger.Error("delete venue", zap.Uint64("id", id), zap.Error(err))
		}
		h.notice(c, flash.Error, "Venue was not deleted successfully.")
		return redirect(c, "/")
	}
	h.notice(c, flash.Info, deletedMessage("Venue", del))
	return redirect(c, "/")
}

// EditVenueForm renders the venue form prefilled with stored values.
func (h *Handler) EditVenueForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	v, err := h.Dir.VenueByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "forms/edit_venue", view.Page{
		Title: "Edit " + v.Name,
		Data:  v.Name,
		Form:  &view.Form{Action: fmt.Sprintf("/venues/%d/edit", id), Values: form.VenueValues(v.Fields())},
	})
}

// EditVenue handles POST /venues/:id/edit.
func (h *Handler) EditVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		h.notice(c, flash.Error, "Venue was not found.")
		return redirect(c, "/venues")
	}
	vals, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	fields, err := form.ParseVenue(vals)
	if fe, ok := form.AsErrors(err); ok {
		return h.redisplay(c, "forms/edit_venue", "Edit venue", vals.Get("name"),
			&view.Form{Action: fmt.Sprintf("/venues/%d/edit", id), Values: fe.Values, Errors: fe.Fields})
	}
	if err != nil {
		return err
	}

	v, err := h.Dir.UpdateVenue(c.Request().Context(), id, fields)
	switch {
	case errors.Is(err, repository.ErrVenueNotFound):
		h.notice(c, flash.Error, "Venue was not found.")
		return redirect(c, "/venues")
	case errors.Is(err, repository.ErrDuplicateName):
		h.notice(c, flash.Error, fmt.Sprintf("A venue named %s already exists. Venue was not successfully edited!", fields.Name))
	case err != nil:
		h.notice(c, flash.Error, fmt.Sprintf("Venue %s was not successfully edited!", fields.Name))
	default:
		h.notice(c, flash.Info, fmt.Sprintf("Venue %s was successfully edited!", v.Name))
	}
	return redirect(c, fmt.Sprintf("/venues/%d", id))
}

// deletedMessage words the success flash of a cascading delete.
func deletedMessage(kind string, del *service.Deletion) string {
	msg := fmt.Sprintf("%s %s was deleted successfully!", kind, del.Name)
	switch del.RemovedShows {
	case 0:
	case 1:
		msg += " 1 show was removed."
	default:
		msg += fmt.Sprintf(" %d shows were removed.", del.RemovedShows)
	}
	return msg
}
