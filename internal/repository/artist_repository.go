package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/venue-booking-directory/internal/database"
	"github.com/iliyamo/venue-booking-directory/internal/model"
)

const artistColumns = `id, name, city, state, phone, genres, image_link,
	facebook_link, website, seeking_venue, seeking_description, date_created`

// ArtistRepo provides persistence for artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the given DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

func scanArtist(s rowScanner) (*model.Artist, error) {
	var (
		a                                            model.Artist
		city, state, phone                           sql.NullString
		image, facebook, website, seekingDescription sql.NullString
	)
	if err := s.Scan(&a.ID, &a.Name, &city, &state, &phone, &a.Genres, &image,
		&facebook, &website, &a.SeekingVenue, &seekingDescription, &a.DateCreated); err != nil {
		return nil, err
	}
	a.City, a.State, a.Phone = city.String, state.String, phone.String
	a.ImageLink, a.FacebookLink, a.Website = image.String, facebook.String, website.String
	a.SeekingDescription = seekingDescription.String
	return &a, nil
}

func collectArtists(rows *sql.Rows) ([]*model.Artist, error) {
	defer rows.Close()
	var out []*model.Artist
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID retrieves an artist by its ID.  It returns ErrArtistNotFound
// when no row is found.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	return getArtist(ctx, r.db, id)
}

func getArtist(ctx context.Context, q queryer, id uint64) (*model.Artist, error) {
	a, err := scanArtist(q.QueryRowContext(ctx, "SELECT "+artistColumns+" FROM artists WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListAll returns every artist ordered by id.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]*model.Artist, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+artistColumns+" FROM artists ORDER BY id")
	if err != nil {
		return nil, err
	}
	return collectArtists(rows)
}

// ListNames returns only id and name of every artist, ordered by name.
func (r *ArtistRepo) ListNames(ctx context.Context) ([]model.ArtistRef, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM artists ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ArtistRef
	for rows.Next() {
		var a model.ArtistRef
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Search returns artists whose name, city or state contains term,
// ignoring case.
func (r *ArtistRepo) Search(ctx context.Context, term string) ([]*model.Artist, error) {
	p := likePattern(term)
	rows, err := r.db.QueryContext(ctx, "SELECT "+artistColumns+` FROM artists
		WHERE LOWER(name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ?
		ORDER BY name`, p, p, p)
	if err != nil {
		return nil, err
	}
	return collectArtists(rows)
}

// Create inserts a new artist and populates its ID and DateCreated.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		const qInsert = `INSERT INTO artists (name, city, state, phone, genres, image_link,
			facebook_link, website, seeking_venue, seeking_description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		res, err := tx.ExecContext(ctx, qInsert, a.Name, nullable(a.City), nullable(a.State),
			nullable(a.Phone), a.Genres, nullable(a.ImageLink), nullable(a.FacebookLink),
			nullable(a.Website), a.SeekingVenue, nullable(a.SeekingDescription))
		if err != nil {
			return mapWriteErr(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		a.ID = uint64(id)
		return tx.QueryRowContext(ctx, "SELECT date_created FROM artists WHERE id = ?", a.ID).Scan(&a.DateCreated)
	})
}

// Update overwrites every editable column of the artist.  It returns
// ErrArtistNotFound when the row does not exist.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockRow(ctx, tx, "artists", a.ID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrArtistNotFound
			}
			return err
		}
		const q = `UPDATE artists
			SET name = ?, city = ?, state = ?, phone = ?, genres = ?, image_link = ?,
			    facebook_link = ?, website = ?, seeking_venue = ?, seeking_description = ?
			WHERE id = ?`
		_, err := tx.ExecContext(ctx, q, a.Name, nullable(a.City), nullable(a.State),
			nullable(a.Phone), a.Genres, nullable(a.ImageLink), nullable(a.FacebookLink),
			nullable(a.Website), a.SeekingVenue, nullable(a.SeekingDescription), a.ID)
		return mapWriteErr(err)
	})
}

// Delete removes an artist and all of its shows in one transaction.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) (name string, removedShows int64, err error) {
	err = database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, "SELECT name FROM artists WHERE id = ? FOR UPDATE", id).Scan(&name); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrArtistNotFound
			}
			return err
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM shows WHERE artist_id = ?", id)
		if err != nil {
			return fmt.Errorf("delete artist shows: %w", err)
		}
		removedShows, _ = res.RowsAffected()
		if _, err := tx.ExecContext(ctx, "DELETE FROM artists WHERE id = ?", id); err != nil {
			return fmt.Errorf("delete artist: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", 0, err
	}
	return name, removedShows, nil
}
