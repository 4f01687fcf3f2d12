package form

import (
	"net/url"

	"github.com/iliyamo/venue-booking-directory/internal/model"
)

type artistForm struct {
	Name               string   `form:"name" validate:"required,max=255"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,state"`
	Phone              string   `form:"phone" validate:"omitempty,phone,max=120"`
	Genres             []string `form:"genres" validate:"dive,genre"`
	ImageLink          string   `form:"image_link" validate:"omitempty,http_url,max=500"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,http_url,facebook,max=120"`
	Website            string   `form:"website_link" validate:"omitempty,http_url,max=120"`
	SeekingVenue       bool     `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

// ParseArtist validates an artist submission.
func ParseArtist(vals url.Values) (model.ArtistFields, error) {
	f := artistForm{
		Name:               text(vals, "name"),
		City:               text(vals, "city"),
		State:              text(vals, "state"),
		Phone:              text(vals, "phone"),
		Genres:             genres(vals),
		ImageLink:          text(vals, "image_link"),
		FacebookLink:       text(vals, "facebook_link"),
		Website:            text(vals, "website_link"),
		SeekingVenue:       Checkbox(vals, "seeking_venue"),
		SeekingDescription: text(vals, "seeking_description"),
	}
	if fe := check(f, vals); fe != nil {
		return model.ArtistFields{}, fe
	}
	return model.ArtistFields{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Genres:             model.Genres(f.Genres),
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
	}, nil
}

// ArtistValues renders stored artist fields back into form values.
func ArtistValues(f model.ArtistFields) url.Values {
	vals := url.Values{}
	vals.Set("name", f.Name)
	vals.Set("city", f.City)
	vals.Set("state", f.State)
	vals.Set("phone", f.Phone)
	vals.Set("image_link", f.ImageLink)
	vals.Set("facebook_link", f.FacebookLink)
	vals.Set("website_link", f.Website)
	vals.Set("seeking_description", f.SeekingDescription)
	if f.SeekingVenue {
		vals.Set("seeking_venue", "y")
	}
	for _, g := range f.Genres {
		vals.Add("genres", g)
	}
	return vals
}
