package model

import "time"

// Venue represents a place that hosts shows.  It corresponds to a row
// in the `venues` table.  Optional text columns are nullable in the
// database; an empty string here stands for NULL.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – unique venue name.
//  Genres             – ordered genre tags (JSON array column).
//  City, State        – location used for grouping and search.
//  Address, Phone     – contact details.
//  ImageLink          – URL of a picture of the venue.
//  FacebookLink       – URL of the venue's Facebook page.
//  Website            – URL of the venue's website.
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – free text shown when SeekingTalent is true.
//  DateCreated        – creation timestamp, never updated.
type Venue struct {
	ID                 uint64    `json:"id"`                  // venues.id
	Name               string    `json:"name"`                // venues.name
	Genres             Genres    `json:"genres"`              // venues.genres
	City               string    `json:"city"`                // venues.city (nullable)
	State              string    `json:"state"`               // venues.state (nullable)
	Address            string    `json:"address"`             // venues.address (nullable)
	Phone              string    `json:"phone"`               // venues.phone (nullable)
	ImageLink          string    `json:"image_link"`          // venues.image_link (nullable)
	FacebookLink       string    `json:"facebook_link"`       // venues.facebook_link (nullable)
	Website            string    `json:"website"`             // venues.website (nullable)
	SeekingTalent      bool      `json:"seeking_talent"`      // venues.seeking_talent
	SeekingDescription string    `json:"seeking_description"` // venues.seeking_description (nullable)
	DateCreated        time.Time `json:"date_created"`        // venues.date_created
}

// VenueFields is the normalized, validated field set used to create or
// overwrite a venue.  It deliberately has no ID or DateCreated.
type VenueFields struct {
	Name               string
	Genres             Genres
	City               string
	State              string
	Address            string
	Phone              string
	ImageLink          string
	FacebookLink       string
	Website            string
	SeekingTalent      bool
	SeekingDescription string
}

// Apply overwrites every editable column of v with f.
func (f VenueFields) Apply(v *Venue) {
	v.Name = f.Name
	v.Genres = f.Genres
	v.City = f.City
	v.State = f.State
	v.Address = f.Address
	v.Phone = f.Phone
	v.ImageLink = f.ImageLink
	v.FacebookLink = f.FacebookLink
	v.Website = f.Website
	v.SeekingTalent = f.SeekingTalent
	v.SeekingDescription = f.SeekingDescription
}

// Fields returns the editable columns of v, used to pre-fill edit forms.
func (v *Venue) Fields() VenueFields {
	return VenueFields{
		Name:               v.Name,
		Genres:             v.Genres,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		Website:            v.Website,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}
