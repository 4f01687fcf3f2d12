package model

import "time"

// Show represents a scheduled event linking exactly one artist and one
// venue at a start time.  Both foreign keys are required.
//
// Fields:
//  ID        – primary key identifier.
//  ArtistID  – performing artist.
//  VenueID   – hosting venue.
//  StartTime – when the show begins (UTC).
type Show struct {
	ID        uint64    `json:"id"`         // shows.id
	ArtistID  uint64    `json:"artist_id"`  // shows.artist_id
	VenueID   uint64    `json:"venue_id"`   // shows.venue_id
	StartTime time.Time `json:"start_time"` // shows.start_time
}

// ShowListing is a show joined with the names and image links of its
// artist and venue.  It is a read row and is never written back.
type ShowListing struct {
	ID              uint64
	StartTime       time.Time
	VenueID         uint64
	VenueName       string
	VenueImageLink  string
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
}

// IsUpcoming reports whether the show starts strictly after now.  A show
// starting exactly at now counts as past.
func (s ShowListing) IsUpcoming(now time.Time) bool {
	return s.StartTime.After(now)
}
