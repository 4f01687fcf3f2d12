package form

import (
	"net/url"
	"strconv"
	"time"

	"github.com/iliyamo/venue-booking-directory/internal/model"
)

// StartTimeLayout is the layout the show form pre-fills and accepts first.
const StartTimeLayout = "2006-01-02 15:04:05"

var startTimeLayouts = []string{
	StartTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

type showForm struct {
	ArtistID uint64 `form:"artist_id" validate:"required,gt=0"`
	VenueID  uint64 `form:"venue_id" validate:"required,gt=0"`
}

// ParseShow validates a show submission.  An empty start_time defaults
// to now; times without a zone are read as UTC.
func ParseShow(vals url.Values, now time.Time) (model.Show, error) {
	fe := &Errors{Values: vals}
	f := showForm{
		ArtistID: parseID(vals, "artist_id", fe),
		VenueID:  parseID(vals, "venue_id", fe),
	}
	if verr := check(f, vals); verr != nil {
		for k, msgs := range verr.Fields {
			if fe.Has(k) {
				continue // already reported as malformed
			}
			for _, m := range msgs {
				fe.Add(k, m)
			}
		}
	}

	start := now.UTC()
	if raw := text(vals, "start_time"); raw != "" {
		t, err := parseStartTime(raw)
		if err != nil {
			fe.Add("start_time", "Invalid date and time.")
		} else {
			start = t
		}
	}
	if len(fe.Fields) > 0 {
		return model.Show{}, fe
	}
	return model.Show{ArtistID: f.ArtistID, VenueID: f.VenueID, StartTime: start}, nil
}

func parseID(vals url.Values, key string, fe *Errors) uint64 {
	raw := text(vals, key)
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		fe.Add(key, "Must be a positive number.")
		return 0
	}
	return n
}

func parseStartTime(raw string) (time.Time, error) {
	var err error
	for _, layout := range startTimeLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}
