package model

import "time"

// Artist represents a performer that can be booked into shows.  It
// corresponds to a row in the `artists` table.  SeekingVenue is a real
// boolean column.
type Artist struct {
	ID                 uint64    `json:"id"`                  // artists.id
	Name               string    `json:"name"`                // artists.name
	City               string    `json:"city"`                // artists.city (nullable)
	State              string    `json:"state"`               // artists.state (nullable)
	Phone              string    `json:"phone"`               // artists.phone (nullable)
	Genres             Genres    `json:"genres"`              // artists.genres
	ImageLink          string    `json:"image_link"`          // artists.image_link (nullable)
	FacebookLink       string    `json:"facebook_link"`       // artists.facebook_link (nullable)
	Website            string    `json:"website"`             // artists.website (nullable)
	SeekingVenue       bool      `json:"seeking_venue"`       // artists.seeking_venue
	SeekingDescription string    `json:"seeking_description"` // artists.seeking_description (nullable)
	DateCreated        time.Time `json:"date_created"`        // artists.date_created
}

// ArtistRef is the minimal id/name pair used by the artist index and
// the show creation form.
type ArtistRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ArtistFields is the normalized, validated field set used to create or
// overwrite an artist.
type ArtistFields struct {
	Name               string
	City               string
	State              string
	Phone              string
	Genres             Genres
	ImageLink          string
	FacebookLink       string
	Website            string
	SeekingVenue       bool
	SeekingDescription string
}

// Apply overwrites every editable column of a with f.
func (f ArtistFields) Apply(a *Artist) {
	a.Name = f.Name
	a.City = f.City
	a.State = f.State
	a.Phone = f.Phone
	a.Genres = f.Genres
	a.ImageLink = f.ImageLink
	a.FacebookLink = f.FacebookLink
	a.Website = f.Website
	a.SeekingVenue = f.SeekingVenue
	a.SeekingDescription = f.SeekingDescription
}

// Fields returns the editable columns of a.
func (a *Artist) Fields() ArtistFields {
	return ArtistFields{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             a.Genres,
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		Website:            a.Website,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}
