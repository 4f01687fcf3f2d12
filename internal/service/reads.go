package service

import (
	"context"
	"sort"
	"time"

	"github.com/iliyamo/venue-booking-directory/internal/model"
)

// VenueSummary is one venue line on the venues index.
type VenueSummary struct {
	ID               uint64
	Name             string
	NumUpcomingShows int
}

// VenueArea groups the venues sharing a (city, state) pair.
type VenueArea struct {
	City   string
	State  string
	Venues []VenueSummary
}

// VenueShow is a show as listed on a venue page: the counterpart is the
// performing artist.
type VenueShow struct {
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
	StartTimeText   string
}

// ArtistShow is a show as listed on an artist page: the counterpart is the
// hosting venue.
type ArtistShow struct {
	VenueID        uint64
	VenueName      string
	VenueImageLink string
	StartTime      time.Time
	StartTimeText  string
}

// VenueDetail is the read model of a venue page.
type VenueDetail struct {
	Venue              *model.Venue
	UpcomingShows      []VenueShow
	PastShows          []VenueShow
	UpcomingShowsCount int
	PastShowsCount     int
}

// ArtistDetail is the read model of an artist page.
type ArtistDetail struct {
	Artist             *model.Artist
	UpcomingShows      []ArtistShow
	PastShows          []ArtistShow
	UpcomingShowsCount int
	PastShowsCount     int
}

// SearchHit is one venue or artist matched by a search.
type SearchHit struct {
	ID               uint64
	Name             string
	NumUpcomingShows int
}

// SearchResult is the outcome of a partial, case-insensitive search.
type SearchResult struct {
	Term  string
	Count int
	Data  []SearchHit
}

// ShowRow is one line of the show calendar.
type ShowRow struct {
	ID              uint64
	VenueID         uint64
	VenueName       string
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
	Upcoming        bool
}

// Choice is an id/name pair offered by a select input.
type Choice struct {
	ID   uint64
	Name string
}

// SplitShows partitions shows into those strictly after now and the rest.
// A show starting exactly at now is past.  Input order is preserved
// within each half.
func SplitShows(shows []model.ShowListing, now time.Time) (upcoming, past []model.ShowListing) {
	for _, s := range shows {
		if s.IsUpcoming(now) {
			upcoming = append(upcoming, s)
		} else {
			past = append(past, s)
		}
	}
	return upcoming, past
}

// Areas returns the venues index: every distinct (city, state) pair with
// its venues and their upcoming show counts.  Areas are ordered by state
// then city, venues by name.
func (d *Directory) Areas(ctx context.Context) ([]VenueArea, error) {
	venues, err := d.venues.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	upcoming, err := d.upcomingCounts(ctx)
	if err != nil {
		return nil, err
	}

	type areaKey struct{ city, state string }
	index := make(map[areaKey]int)
	var areas []VenueArea
	for _, v := range venues {
		k := areaKey{v.City, v.State}
		i, ok := index[k]
		if !ok {
			i = len(areas)
			index[k] = i
			areas = append(areas, VenueArea{City: v.City, State: v.State})
		}
		areas[i].Venues = append(areas[i].Venues, VenueSummary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: upcoming.venues[v.ID],
		})
	}

	sort.SliceStable(areas, func(i, j int) bool {
		if areas[i].State != areas[j].State {
			return areas[i].State < areas[j].State
		}
		return areas[i].City < areas[j].City
	})
	for _, a := range areas {
		sortSummaries(a.Venues)
	}
	return areas, nil
}

// Venue returns the detail view of one venue.  repository.ErrVenueNotFound
// is returned for an unknown id.
func (d *Directory) Venue(ctx context.Context, id uint64) (*VenueDetail, error) {
	v, err := d.venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := d.shows.ListByVenue(ctx, id)
	if err != nil {
		return nil, err
	}
	up, past := SplitShows(shows, d.now())
	detail := &VenueDetail{
		Venue:              v,
		UpcomingShows:      venueShows(up),
		PastShows:          venueShows(past),
		UpcomingShowsCount: len(up),
		PastShowsCount:     len(past),
	}
	return detail, nil
}

func venueShows(in []model.ShowListing) []VenueShow {
	out := make([]VenueShow, 0, len(in))
	for _, s := range in {
		out = append(out, VenueShow{
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       s.StartTime,
			StartTimeText:   s.StartTime.Format(StartTimeFormat),
		})
	}
	return out
}

// Artist returns the detail view of one artist.
// repository.ErrArtistNotFound is returned for an unknown id.
func (d *Directory) Artist(ctx context.Context, id uint64) (*ArtistDetail, error) {
	a, err := d.artists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := d.shows.ListByArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	up, past := SplitShows(shows, d.now())
	return &ArtistDetail{
		Artist:             a,
		UpcomingShows:      artistShows(up),
		PastShows:          artistShows(past),
		UpcomingShowsCount: len(up),
		PastShowsCount:     len(past),
	}, nil
}

func artistShows(in []model.ShowListing) []ArtistShow {
	out := make([]ArtistShow, 0, len(in))
	for _, s := range in {
		out = append(out, ArtistShow{
			VenueID:        s.VenueID,
			VenueName:      s.VenueName,
			VenueImageLink: s.VenueImageLink,
			StartTime:      s.StartTime,
			StartTimeText:  s.StartTime.Format(StartTimeFormat),
		})
	}
	return out
}

// VenueByID returns the stored venue, used to prefill the edit form.
func (d *Directory) VenueByID(ctx context.Context, id uint64) (*model.Venue, error) {
	return d.venues.GetByID(ctx, id)
}

// ArtistByID returns the stored artist, used to prefill the edit form.
func (d *Directory) ArtistByID(ctx context.Context, id uint64) (*model.Artist, error) {
	return d.artists.GetByID(ctx, id)
}

// SearchVenues matches term against venue name, city and state.
func (d *Directory) SearchVenues(ctx context.Context, term string) (*SearchResult, error) {
	venues, err := d.venues.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	upcoming, err := d.upcomingCounts(ctx)
	if err != nil {
		return nil, err
	}
	res := &SearchResult{Term: term, Data: make([]SearchHit, 0, len(venues))}
	for _, v := range venues {
		res.Data = append(res.Data, SearchHit{ID: v.ID, Name: v.Name, NumUpcomingShows: upcoming.venues[v.ID]})
	}
	res.Count = len(res.Data)
	return res, nil
}

// SearchArtists matches term against artist name, city and state.
func (d *Directory) SearchArtists(ctx context.Context, term string) (*SearchResult, error) {
	artists, err := d.artists.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	upcoming, err := d.upcomingCounts(ctx)
	if err != nil {
		return nil, err
	}
	res := &SearchResult{Term: term, Data: make([]SearchHit, 0, len(artists))}
	for _, a := range artists {
		res.Data = append(res.Data, SearchHit{ID: a.ID, Name: a.Name, NumUpcomingShows: upcoming.artists[a.ID]})
	}
	res.Count = len(res.Data)
	return res, nil
}

// Shows returns the full show calendar ordered by start time.
func (d *Directory) Shows(ctx context.Context) ([]ShowRow, error) {
	shows, err := d.shows.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := d.now()
	rows := make([]ShowRow, 0, len(shows))
	for _, s := range shows {
		rows = append(rows, ShowRow{
			ID:              s.ID,
			VenueID:         s.VenueID,
			VenueName:       s.VenueName,
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       s.StartTime,
			Upcoming:        s.IsUpcoming(now),
		})
	}
	return rows, nil
}

// ArtistNames lists every artist's id and name for the artists index.
func (d *Directory) ArtistNames(ctx context.Context) ([]model.ArtistRef, error) {
	return d.artists.ListNames(ctx)
}

// ShowChoices returns the artists and venues offered by the show form,
// each ordered by name.
func (d *Directory) ShowChoices(ctx context.Context) (artists, venues []Choice, err error) {
	refs, err := d.artists.ListNames(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, r := range refs {
		artists = append(artists, Choice{ID: r.ID, Name: r.Name})
	}
	all, err := d.venues.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, v := range all {
		venues = append(venues, Choice{ID: v.ID, Name: v.Name})
	}
	sortChoices(artists)
	sortChoices(venues)
	return artists, venues, nil
}

type upcomingIndex struct {
	venues  map[uint64]int
	artists map[uint64]int
}

// upcomingCounts tallies upcoming shows per venue and per artist.
func (d *Directory) upcomingCounts(ctx context.Context) (upcomingIndex, error) {
	idx := upcomingIndex{venues: map[uint64]int{}, artists: map[uint64]int{}}
	shows, err := d.shows.ListAll(ctx)
	if err != nil {
		return idx, err
	}
	now := d.now()
	for _, s := range shows {
		if s.IsUpcoming(now) {
			idx.venues[s.VenueID]++
			idx.artists[s.ArtistID]++
		}
	}
	return idx, nil
}

func sortSummaries(s []VenueSummary) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Name != s[j].Name {
			return s[i].Name < s[j].Name
		}
		return s[i].ID < s[j].ID
	})
}

func sortChoices(c []Choice) {
	sort.SliceStable(c, func(i, j int) bool {
		if c[i].Name != c[j].Name {
			return c[i].Name < c[j].Name
		}
		return c[i].ID < c[j].ID
	})
}
