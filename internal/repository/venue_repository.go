// Package repository contains data access logic separated from HTTP handlers.
// This file defines the repository methods for venues. A Venue is a place
// that hosts shows; deleting one removes its shows in the same transaction.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"
	"fmt"

	"github.com/iliyamo/venue-booking-directory/internal/database"
	"github.com/iliyamo/venue-booking-directory/internal/model"
)

const venueColumns = `id, name, genres, city, state, address, phone, image_link,
	facebook_link, website, seeking_talent, seeking_description, date_created`

// VenueRepo encapsulates all database queries related to venues.  It
// depends on a sql.DB connection which should be configured elsewhere.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(s rowScanner) (*model.Venue, error) {
	var (
		v                                           model.Venue
		city, state, address, phone                 sql.NullString
		image, facebook, website, seekingDescription sql.NullString
	)
	if err := s.Scan(&v.ID, &v.Name, &v.Genres, &city, &state, &address, &phone, &image,
		&facebook, &website, &v.SeekingTalent, &seekingDescription, &v.DateCreated); err != nil {
		return nil, err
	}
	v.City, v.State, v.Address, v.Phone = city.String, state.String, address.String, phone.String
	v.ImageLink, v.FacebookLink, v.Website = image.String, facebook.String, website.String
	v.SeekingDescription = seekingDescription.String
	return &v, nil
}

func collectVenues(rows *sql.Rows) ([]*model.Venue, error) {
	defer rows.Close()
	var out []*model.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a venue by its ID.  It returns ErrVenueNotFound if no
// row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	return getVenue(ctx, r.db, id)
}

func getVenue(ctx context.Context, q queryer, id uint64) (*model.Venue, error) {
	v, err := scanVenue(q.QueryRowContext(ctx, "SELECT "+venueColumns+" FROM venues WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// ListAll returns every venue ordered by id.
func (r *VenueRepo) ListAll(ctx context.Context) ([]*model.Venue, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+venueColumns+" FROM venues ORDER BY id")
	if err != nil {
		return nil, err
	}
	return collectVenues(rows)
}

// Search returns venues whose name, city or state contains term,
// ignoring case.  NULL columns never match.
func (r *VenueRepo) Search(ctx context.Context, term string) ([]*model.Venue, error) {
	p := likePattern(term)
	rows, err := r.db.QueryContext(ctx, "SELECT "+venueColumns+` FROM venues
		WHERE LOWER(name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ?
		ORDER BY name`, p, p, p)
	if err != nil {
		return nil, err
	}
	return collectVenues(rows)
}

// Create inserts a new venue.  On success the venue's ID and DateCreated
// are populated from the database.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		const qInsert = `INSERT INTO venues (name, genres, city, state, address, phone, image_link,
			facebook_link, website, seeking_talent, seeking_description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		res, err := tx.ExecContext(ctx, qInsert, v.Name, v.Genres, nullable(v.City), nullable(v.State),
			nullable(v.Address), nullable(v.Phone), nullable(v.ImageLink), nullable(v.FacebookLink),
			nullable(v.Website), v.SeekingTalent, nullable(v.SeekingDescription))
		if err != nil {
			return mapWriteErr(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		v.ID = uint64(id)

		// Read back the DB-assigned creation timestamp.
		const qSelect = "SELECT date_created FROM venues WHERE id = ?"
		return tx.QueryRowContext(ctx, qSelect, v.ID).Scan(&v.DateCreated)
	})
}

// Update overwrites every editable column of the venue with v's values.
// date_created is never touched.  ErrVenueNotFound is returned when the
// row does not exist.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockRow(ctx, tx, "venues", v.ID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrVenueNotFound
			}
			return err
		}
		const q = `UPDATE venues
			SET name = ?, genres = ?, city = ?, state = ?, address = ?, phone = ?, image_link = ?,
			    facebook_link = ?, website = ?, seeking_talent = ?, seeking_description = ?
			WHERE id = ?`
		_, err := tx.ExecContext(ctx, q, v.Name, v.Genres, nullable(v.City), nullable(v.State),
			nullable(v.Address), nullable(v.Phone), nullable(v.ImageLink), nullable(v.FacebookLink),
			nullable(v.Website), v.SeekingTalent, nullable(v.SeekingDescription), v.ID)
		return mapWriteErr(err)
	})
}

// Delete removes a venue and all of its shows within one transaction and
// returns the name of the deleted venue and the number of shows removed.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) (name string, removedShows int64, err error) {
	err = database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, "SELECT name FROM venues WHERE id = ? FOR UPDATE", id).Scan(&name); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrVenueNotFound
			}
			return err
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM shows WHERE venue_id = ?", id)
		if err != nil {
			return fmt.Errorf("delete venue shows: %w", err)
		}
		removedShows, _ = res.RowsAffected()
		if _, err := tx.ExecContext(ctx, "DELETE FROM venues WHERE id = ?", id); err != nil {
			return fmt.Errorf("delete venue: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", 0, err
	}
	return name, removedShows, nil
}

// lockRow takes a row lock on table.id so the row cannot disappear
// between the existence check and the following write.  It returns
// sql.ErrNoRows when the row does not exist.
func lockRow(ctx context.Context, tx *sql.Tx, table string, id uint64) error {
	var got uint64
	return tx.QueryRowContext(ctx, "SELECT id FROM "+table+" WHERE id = ? FOR UPDATE", id).Scan(&got)
}
