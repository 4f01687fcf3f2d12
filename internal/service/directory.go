// Package service assembles the read models rendered by the handlers and
// orchestrates directory writes.  It sits between HTTP handlers and the
// repositories and owns the notion of "now" used to split shows into past
// and upcoming.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/venue-booking-directory/internal/model"
	"github.com/iliyamo/venue-booking-directory/internal/queue"
)

// StartTimeFormat is the layout used for start times on detail pages.
const StartTimeFormat = "01/02/2006, 15:04:05"

// VenueStore is the persistence surface the directory needs for venues.
type VenueStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Venue, error)
	ListAll(ctx context.Context) ([]*model.Venue, error)
	Search(ctx context.Context, term string) ([]*model.Venue, error)
	Create(ctx context.Context, v *model.Venue) error
	Update(ctx context.Context, v *model.Venue) error
	Delete(ctx context.Context, id uint64) (name string, removedShows int64, err error)
}

// ArtistStore is the persistence surface the directory needs for artists.
type ArtistStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Artist, error)
	ListAll(ctx context.Context) ([]*model.Artist, error)
	ListNames(ctx context.Context) ([]model.ArtistRef, error)
	Search(ctx context.Context, term string) ([]*model.Artist, error)
	Create(ctx context.Context, a *model.Artist) error
	Update(ctx context.Context, a *model.Artist) error
	Delete(ctx context.Context, id uint64) (name string, removedShows int64, err error)
}

// ShowStore is the persistence surface the directory needs for shows.
type ShowStore interface {
	Create(ctx context.Context, s *model.Show) error
	ListAll(ctx context.Context) ([]model.ShowListing, error)
	ListByVenue(ctx context.Context, venueID uint64) ([]model.ShowListing, error)
	ListByArtist(ctx context.Context, artistID uint64) ([]model.ShowListing, error)
}

// EventPublisher receives activity events after a write commits.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.ActivityEvent) error
}

// Directory is the application service behind every page of the site.
type Directory struct {
	venues  VenueStore
	artists ArtistStore
	shows   ShowStore
	events  EventPublisher
	logger  *zap.Logger

	// Now returns the current instant.  Tests replace it to pin the
	// past/upcoming boundary.
	Now func() time.Time
}

// New constructs a Directory.  events may be nil, in which case no
// activity is published.
func New(venues VenueStore, artists ArtistStore, shows ShowStore, events EventPublisher, logger *zap.Logger) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Directory{
		venues:  venues,
		artists: artists,
		shows:   shows,
		events:  events,
		logger:  logger,
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

func (d *Directory) now() time.Time {
	return d.Now().UTC()
}

// publish hands ev to the publisher.  The write has already committed,
// so a broker outage only costs the event, never the request.
func (d *Directory) publish(ctx context.Context, ev queue.ActivityEvent) {
	if d.events == nil {
		return
	}
	ev.OccurredAt = d.now().Format(time.RFC3339)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := d.events.Publish(ctx, ev); err != nil {
		d.logger.Warn("activity event dropped",
			zap.String("kind", ev.Kind), zap.Uint64("entity_id", ev.EntityID), zap.Error(err))
	}
}
