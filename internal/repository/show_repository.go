// Package repository contains data access logic for Show domain operations.
// This file defines the repository methods for shows. A Show links one
// artist with one venue at a start time; listings are always joined with
// the names and image links of both sides.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/venue-booking-directory/internal/database"
	"github.com/iliyamo/venue-booking-directory/internal/model"
)

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

const showListingSelect = `SELECT s.id, s.start_time,
		v.id, v.name, COALESCE(v.image_link, ''),
		a.id, a.name, COALESCE(a.image_link, '')
	FROM shows s
	JOIN venues v  ON v.id = s.venue_id
	JOIN artists a ON a.id = s.artist_id`

// Create inserts a new show.  The artist and venue are checked inside the
// same transaction so a show is never written for a missing parent; a
// zero StartTime is replaced with the current UTC time.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	if s.StartTime.IsZero() {
		s.StartTime = time.Now().UTC()
	}
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockShared(ctx, tx, "artists", s.ArtistID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrArtistNotFound
			}
			return err
		}
		if err := lockShared(ctx, tx, "venues", s.VenueID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrVenueNotFound
			}
			return err
		}
		const q = `INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`
		res, err := tx.ExecContext(ctx, q, s.ArtistID, s.VenueID, s.StartTime.UTC())
		if err != nil {
			return mapWriteErr(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		s.ID = uint64(id)
		return nil
	})
}

// lockShared reads table.id with a shared lock so the parent row cannot
// be deleted before the child insert commits.
func lockShared(ctx context.Context, tx *sql.Tx, table string, id uint64) error {
	var got uint64
	return tx.QueryRowContext(ctx, "SELECT id FROM "+table+" WHERE id = ? LOCK IN SHARE MODE", id).Scan(&got)
}

// ListAll returns every show joined with its venue and artist, ordered
// by start time.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.ShowListing, error) {
	return r.list(ctx, showListingSelect+" ORDER BY s.start_time, s.id")
}

// ListByVenue returns the shows hosted by one venue.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.ShowListing, error) {
	return r.list(ctx, showListingSelect+" WHERE s.venue_id = ? ORDER BY s.start_time, s.id", venueID)
}

// ListByArtist returns the shows played by one artist.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]model.ShowListing, error) {
	return r.list(ctx, showListingSelect+" WHERE s.artist_id = ? ORDER BY s.start_time, s.id", artistID)
}

func (r *ShowRepo) list(ctx context.Context, q string, args ...any) ([]model.ShowListing, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ShowListing
	for rows.Next() {
		var s model.ShowListing
		if err := rows.Scan(&s.ID, &s.StartTime,
			&s.VenueID, &s.VenueName, &s.VenueImageLink,
			&s.ArtistID, &s.ArtistName, &s.ArtistImageLink); err != nil {
			return nil, err
		}
		s.StartTime = s.StartTime.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
