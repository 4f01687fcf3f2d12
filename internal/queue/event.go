// Package queue defines message payloads exchanged over the message broker.
package queue

// ActivityQueueName is the durable queue directory activity is published to.
const ActivityQueueName = "directory.activity"

// Activity kinds.
const (
	VenueCreated  = "venue.created"
	VenueUpdated  = "venue.updated"
	VenueDeleted  = "venue.deleted"
	ArtistCreated = "artist.created"
	ArtistUpdated = "artist.updated"
	ArtistDeleted = "artist.deleted"
	ShowCreated   = "show.created"
)

// ActivityEvent is published after a directory write commits.  It carries
// enough information for downstream consumers to log or notify without
// querying the primary database.
type ActivityEvent struct {
	Kind         string `json:"kind"`
	EntityID     uint64 `json:"entity_id"`
	Name         string `json:"name,omitempty"`
	ArtistID     uint64 `json:"artist_id,omitempty"`
	VenueID      uint64 `json:"venue_id,omitempty"`
	StartTime    string `json:"start_time,omitempty"`
	RemovedShows int64  `json:"removed_shows,omitempty"`
	OccurredAt   string `json:"occurred_at"`
}
