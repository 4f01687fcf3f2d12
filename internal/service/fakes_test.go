package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/venue-booking-directory/internal/model"
	"github.com/iliyamo/venue-booking-directory/internal/queue"
	"github.com/iliyamo/venue-booking-directory/internal/repository"
)

// memDB is an in-memory stand-in for the three tables.
type memDB struct {
	venues  map[uint64]*model.Venue
	artists map[uint64]*model.Artist
	shows   []model.Show
	nextID  uint64
}

func newMemDB() *memDB {
	return &memDB{venues: map[uint64]*model.Venue{}, artists: map[uint64]*model.Artist{}}
}

func (m *memDB) id() uint64 {
	m.nextID++
	return m.nextID
}

// venueNameTaken reports whether a venue other than id already uses name.
// Like the unique key, the comparison is exact.
func (m *memDB) venueNameTaken(name string, id uint64) bool {
	for _, v := range m.venues {
		if v.ID != id && v.Name == name {
			return true
		}
	}
	return false
}

func (m *memDB) artistNameTaken(name string, id uint64) bool {
	for _, a := range m.artists {
		if a.ID != id && a.Name == name {
			return true
		}
	}
	return false
}

func (m *memDB) listing(s model.Show) model.ShowListing {
	v, a := m.venues[s.VenueID], m.artists[s.ArtistID]
	return model.ShowListing{
		ID: s.ID, StartTime: s.StartTime,
		VenueID: v.ID, VenueName: v.Name, VenueImageLink: v.ImageLink,
		ArtistID: a.ID, ArtistName: a.Name, ArtistImageLink: a.ImageLink,
	}
}

func (m *memDB) listShows(keep func(model.Show) bool) []model.ShowListing {
	var out []model.ShowListing
	for _, s := range m.shows {
		if keep(s) {
			out = append(out, m.listing(s))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func (m *memDB) dropShows(keep func(model.Show) bool) int64 {
	var kept []model.Show
	var removed int64
	for _, s := range m.shows {
		if keep(s) {
			kept = append(kept, s)
		} else {
			removed++
		}
	}
	m.shows = kept
	return removed
}

func contains(field, term string) bool {
	return field != "" && strings.Contains(strings.ToLower(field), strings.ToLower(term))
}

type memVenues struct{ *memDB }

func (m memVenues) GetByID(_ context.Context, id uint64) (*model.Venue, error) {
	v, ok := m.venues[id]
	if !ok {
		return nil, repository.ErrVenueNotFound
	}
	cp := *v
	return &cp, nil
}

func (m memVenues) ListAll(context.Context) ([]*model.Venue, error) {
	var out []*model.Venue
	for _, v := range m.venues {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memVenues) Search(ctx context.Context, term string) ([]*model.Venue, error) {
	all, _ := m.ListAll(ctx)
	var out []*model.Venue
	for _, v := range all {
		if contains(v.Name, term) || contains(v.City, term) || contains(v.State, term) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m memVenues) Create(_ context.Context, v *model.Venue) error {
	if m.venueNameTaken(v.Name, 0) {
		return repository.ErrDuplicateName
	}
	v.ID = m.id()
	cp := *v
	m.venues[v.ID] = &cp
	return nil
}

func (m memVenues) Update(_ context.Context, v *model.Venue) error {
	if _, ok := m.venues[v.ID]; !ok {
		return repository.ErrVenueNotFound
	}
	if m.venueNameTaken(v.Name, v.ID) {
		return repository.ErrDuplicateName
	}
	cp := *v
	m.venues[v.ID] = &cp
	return nil
}

func (m memVenues) Delete(_ context.Context, id uint64) (string, int64, error) {
	v, ok := m.venues[id]
	if !ok {
		return "", 0, repository.ErrVenueNotFound
	}
	removed := m.dropShows(func(s model.Show) bool { return s.VenueID != id })
	delete(m.venues, id)
	return v.Name, removed, nil
}

type memArtists struct{ *memDB }

func (m memArtists) GetByID(_ context.Context, id uint64) (*model.Artist, error) {
	a, ok := m.artists[id]
	if !ok {
		return nil, repository.ErrArtistNotFound
	}
	cp := *a
	return &cp, nil
}

func (m memArtists) ListAll(context.Context) ([]*model.Artist, error) {
	var out []*model.Artist
	for _, a := range m.artists {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memArtists) ListNames(ctx context.Context) ([]model.ArtistRef, error) {
	all, _ := m.ListAll(ctx)
	out := make([]model.ArtistRef, 0, len(all))
	for _, a := range all {
		out = append(out, model.ArtistRef{ID: a.ID, Name: a.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m memArtists) Search(ctx context.Context, term string) ([]*model.Artist, error) {
	all, _ := m.ListAll(ctx)
	var out []*model.Artist
	for _, a := range all {
		if contains(a.Name, term) || contains(a.City, term) || contains(a.State, term) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m memArtists) Create(_ context.Context, a *model.Artist) error {
	if m.artistNameTaken(a.Name, 0) {
		return repository.ErrDuplicateName
	}
	a.ID = m.id()
	cp := *a
	m.artists[a.ID] = &cp
	return nil
}

func (m memArtists) Update(_ context.Context, a *model.Artist) error {
	if _, ok := m.artists[a.ID]; !ok {
		return repository.ErrArtistNotFound
	}
	if m.artistNameTaken(a.Name, a.ID) {
		return repository.ErrDuplicateName
	}
	cp := *a
	m.artists[a.ID] = &cp
	return nil
}

func (m memArtists) Delete(_ context.Context, id uint64) (string, int64, error) {
	a, ok := m.artists[id]
	if !ok {
		return "", 0, repository.ErrArtistNotFound
	}
	removed := m.dropShows(func(s model.Show) bool { return s.ArtistID != id })
	delete(m.artists, id)
	return a.Name, removed, nil
}

type memShows struct{ *memDB }

func (m memShows) Create(_ context.Context, s *model.Show) error {
	if _, ok := m.artists[s.ArtistID]; !ok {
		return repository.ErrArtistNotFound
	}
	if _, ok := m.venues[s.VenueID]; !ok {
		return repository.ErrVenueNotFound
	}
	s.ID = m.id()
	m.shows = append(m.shows, *s)
	return nil
}

func (m memShows) ListAll(context.Context) ([]model.ShowListing, error) {
	return m.listShows(func(model.Show) bool { return true }), nil
}

func (m memShows) ListByVenue(_ context.Context, id uint64) ([]model.ShowListing, error) {
	return m.listShows(func(s model.Show) bool { return s.VenueID == id }), nil
}

func (m memShows) ListByArtist(_ context.Context, id uint64) ([]model.ShowListing, error) {
	return m.listShows(func(s model.Show) bool { return s.ArtistID == id }), nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.ActivityEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.ActivityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Kind)
	}
	return out
}

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func newTestDirectory() (*Directory, *memDB, *recordingPublisher) {
	db := newMemDB()
	pub := &recordingPublisher{}
	d := New(memVenues{db}, memArtists{db}, memShows{db}, pub, nil)
	d.Now = func() time.Time { return fixedNow }
	return d, db, pub
}
