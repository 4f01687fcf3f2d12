// Package router wires handlers and middleware onto an Echo instance.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking-directory/internal/handler"
	"github.com/iliyamo/venue-booking-directory/internal/view"
)

// RegisterRoutes registers every page of the site.  writeLimit guards the
// routes that change data; pass a pass-through middleware to disable it.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, writeLimit echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)
	e.StaticFS("/static", view.Static())

	e.GET("/", h.Home)

	v := e.Group("/venues")
	v.GET("", h.Venues)
	v.POST("/search", h.SearchVenues)
	v.GET("/create", h.CreateVenueForm)
	v.POST("/create", h.CreateVenue, writeLimit)
	v.GET("/:id", h.ShowVenue)
	v.GET("/:id/edit", h.EditVenueForm)
	v.POST("/:id/edit", h.EditVenue, writeLimit)
	// Deletes are reachable from a plain link and from a form post.
	v.GET("/delete/:id", h.DeleteVenue, writeLimit)
	v.POST("/:id/delete", h.DeleteVenue, writeLimit)

	a := e.Group("/artists")
	a.GET("", h.Artists)
	a.POST("/search", h.SearchArtists)
	a.GET("/create", h.CreateArtistForm)
	a.POST("/create", h.CreateArtist, writeLimit)
	a.GET("/:id", h.ShowArtist)
	a.GET("/:id/edit", h.EditArtistForm)
	a.POST("/:id/edit", h.EditArtist, writeLimit)
	a.GET("/delete/:id", h.DeleteArtist, writeLimit)
	a.POST("/:id/delete", h.DeleteArtist, writeLimit)

	s := e.Group("/shows")
	s.GET("", h.Shows)
	s.GET("/create", h.CreateShowForm)
	s.POST("/create", h.CreateShow, writeLimit)
}

// PassThrough is a middleware that does nothing.
func PassThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

// isNotFoundCode reports whether code is answered with the 404 page.
func isNotFoundCode(code int) bool {
	return code == http.StatusNotFound || code == http.StatusMethodNotAllowed
}
