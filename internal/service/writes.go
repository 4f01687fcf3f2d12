package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/venue-booking-directory/internal/model"
	"github.com/iliyamo/venue-booking-directory/internal/queue"
)

// Deletion reports what a cascading delete removed.
type Deletion struct {
	ID           uint64
	Name         string
	RemovedShows int64
}

// CreateVenue persists a new venue built from f.
func (d *Directory) CreateVenue(ctx context.Context, f model.VenueFields) (*model.Venue, error) {
	v := &model.Venue{}
	f.Apply(v)
	if err := d.venues.Create(ctx, v); err != nil {
		d.logger.Error("create venue failed", zap.String("name", f.Name), zap.Error(err))
		return nil, err
	}
	d.publish(ctx, queue.ActivityEvent{Kind: queue.VenueCreated, EntityID: v.ID, Name: v.Name})
	return v, nil
}

// UpdateVenue overwrites every editable field of venue id with f.
func (d *Directory) UpdateVenue(ctx context.Context, id uint64, f model.VenueFields) (*model.Venue, error) {
	v, err := d.venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.Apply(v)
	if err := d.venues.Update(ctx, v); err != nil {
		d.logger.Error("update venue failed", zap.Uint64("id", id), zap.String("name", f.Name), zap.Error(err))
		return nil, err
	}
	d.publish(ctx, queue.ActivityEvent{Kind: queue.VenueUpdated, EntityID: v.ID, Name: v.Name})
	return v, nil
}

// DeleteVenue removes venue id together with its shows.
func (d *Directory) DeleteVenue(ctx context.Context, id uint64) (*Deletion, error) {
	name, removed, err := d.venues.Delete(ctx, id)
	if err != nil {
		d.logger.Error("delete venue failed", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	d.publish(ctx, queue.ActivityEvent{Kind: queue.VenueDeleted, EntityID: id, Name: name, RemovedShows: removed})
	return &Deletion{ID: id, Name: name, RemovedShows: removed}, nil
}

// CreateArtist persists a new artist built from f.
func (d *Directory) CreateArtist(ctx context.Context, f model.ArtistFields) (*model.Artist, error) {
	a := &model.Artist{}
	f.Apply(a)
	if err := d.artists.Create(ctx, a); err != nil {
		d.logger.Error("create artist failed", zap.String("name", f.Name), zap.Error(err))
		return nil, err
	}
	d.publish(ctx, queue.ActivityEvent{Kind: queue.ArtistCreated, EntityID: a.ID, Name: a.Name})
	return a, nil
}

// UpdateArtist overwrites every editable field of artist id with f.
func (d *Directory) UpdateArtist(ctx context.Context, id uint64, f model.ArtistFields) (*model.Artist, error) {
	a, err := d.artists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.Apply(a)
	if err := d.artists.Update(ctx, a); err != nil {
		d.logger.Error("update artist failed", zap.Uint64("id", id), zap.String("name", f.Name), zap.Error(err))
		return nil, err
	}
	d.publish(ctx, queue.ActivityEvent{Kind: queue.ArtistUpdated, EntityID: a.ID, Name: a.Name})
	return a, nil
}

// DeleteArtist removes artist id together with its shows.
func (d *Directory) DeleteArtist(ctx context.Context, id uint64) (*Deletion, error) {
	name, removed, err := d.artists.Delete(ctx, id)
	if err != nil {
		d.logger.Error("delete artist failed", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	d.publish(ctx, queue.ActivityEvent{Kind: queue.ArtistDeleted, EntityID: id, Name: name, RemovedShows: removed})
	return &Deletion{ID: id, Name: name, RemovedShows: removed}, nil
}

// CreateShow books an artist into a venue.  A zero start time means now.
func (d *Directory) CreateShow(ctx context.Context, s model.Show) (*model.Show, error) {
	if s.StartTime.IsZero() {
		s.StartTime = d.now()
	}
	s.StartTime = s.StartTime.UTC()
	if err := d.shows.Create(ctx, &s); err != nil {
		d.logger.Error("create show failed",
			zap.Uint64("artist_id", s.ArtistID), zap.Uint64("venue_id", s.VenueID), zap.Error(err))
		return nil, err
	}
	d.publish(ctx, queue.ActivityEvent{
		Kind:      queue.ShowCreated,
		EntityID:  s.ID,
		ArtistID:  s.ArtistID,
		VenueID:   s.VenueID,
		StartTime: s.StartTime.Format(time.RFC3339),
	})
	return &s, nil
}
