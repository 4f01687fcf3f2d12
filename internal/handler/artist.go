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
	"github.com/iliyamo/venue-booking-directory/internal/view"
)

// Artists renders the id/name list of every artist.
func (h *Handler) Artists(c echo.Context) error {
	refs, err := h.Dir.ArtistNames(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/artists", view.Page{Title: "Artists", Data: refs})
}

// SearchArtists handles POST /artists/search.
func (h *Handler) SearchArtists(c echo.Context) error {
	term := strings.TrimSpace(c.FormValue("search_term"))
	res, err := h.Dir.SearchArtists(c.Request().Context(), term)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/search_artists", view.Page{Title: "Artist search", Data: res})
}

// ShowArtist renders one artist with past and upcoming shows.
func (h *Handler) ShowArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	detail, err := h.Dir.Artist(c.Request().Context(), id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/show_artist", view.Page{Title: detail.Artist.Name, Data: detail})
}

// CreateArtistForm renders an empty artist form.
func (h *Handler) CreateArtistForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "forms/new_artist", view.Page{
		Title: "New artist",
		Form:  &view.Form{Action: "/artists/create"},
	})
}

// CreateArtist handles POST /artists/create.
func (h *Handler) CreateArtist(c echo.Context) error {
	vals, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	fields, err := form.ParseArtist(vals)
	if fe, ok := form.AsErrors(err); ok {
		return h.redisplay(c, "forms/new_artist", "New artist", nil,
			&view.Form{Action: "/artists/create", Values: fe.Values, Errors: fe.Fields})
	}
	if err != nil {
		return err
	}

	a, err := h.Dir.CreateArtist(c.Request().Context(), fields)
	switch {
	case errors.Is(err, repository.ErrDuplicateName):
		h.notice(c, flash.Error, fmt.Sprintf("An artist named %s already exists. Artist %s could not be listed.", fields.Name, fields.Name))
	case err != nil:
		h.notice(c, flash.Error, fmt.Sprintf("An error occurred. Artist %s could not be listed.", fields.Name))
	default:
		h.notice(c, flash.Info, fmt.Sprintf("Artist %s was successfully listed!", a.Name))
	}
	return redirect(c, "/")
}

// DeleteArtist removes an artist and their shows.
func (h *Handler) DeleteArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		h.notice(c, flash.Error, "Artist was not deleted successfully.")
		return redirect(c, "/")
	}
	del, err := h.Dir.DeleteArtist(c.Request().Context(), id)
	if err != nil {
		if !errors.Is(err, repository.ErrArtistNotFound) {
			h.Logger.Error("delete artist", zap.Uint64("id", id), zap.Error(err))
		}
		h.notice(c, flash.Error, "Artist was not deleted successfully.")
		return redirect(c, "/")
	}
	h.notice(c, flash.Info, deletedMessage("Artist", del))
	return redirect(c, "/")
}

// EditArtistForm renders the artist form prefilled with stored values.
func (h *Handler) EditArtistForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	a, err := h.Dir.ArtistByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "forms/edit_artist", view.Page{
		Title: "Edit " + a.Name,
		Data:  a.Name,
		Form:  &view.Form{Action: fmt.Sprintf("/artists/%d/edit", id), Values: form.ArtistValues(a.Fields())},
	})
}

// EditArtist handles POST /artists/:id/edit.
func (h *Handler) EditArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		h.notice(c, flash.Error, "Artist was not found.")
		return redirect(c, "/artists")
	}
	vals, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	fields, err := form.ParseArtist(vals)
	if fe, ok := form.AsErrors(err); ok {
		return h.redisplay(c, "forms/edit_artist", "Edit artist", vals.Get("name"),
			&view.Form{Action: fmt.Sprintf("/artists/%d/edit", id), Values: fe.Values, Errors: fe.Fields})
	}
	if err != nil {
		return err
	}

	a, err := h.Dir.UpdateArtist(c.Request().Context(), id, fields)
	switch {
	case errors.Is(err, repository.ErrArtistNotFound):
		h.notice(c, flash.Error, "Artist was not found.")
		return redirect(c, "/artists")
	case errors.Is(err, repository.ErrDuplicateName):
		h.notice(c, flash.Error, fmt.Sprintf("An artist named %s already exists. Artist was not successfully edited!", fields.Name))
	case err != nil:
		h.notice(c, flash.Error, fmt.Sprintf("Artist %s was not successfully edited!", fields.Name))
	default:
		h.notice(c, flash.Info, fmt.Sprintf("Artist %s was successfully edited!", a.Name))
	}
	return redirect(c, fmt.Sprintf("/artists/%d", id))
}
