package form

import (
	"net/url"

	"github.com/iliyamo/venue-booking-directory/internal/model"
)

type venueForm struct {
	Name               string   `form:"name" validate:"required,max=255"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,state"`
	Address            string   `form:"address" validate:"omitempty,max=120"`
	Phone              string   `form:"phone" validate:"omitempty,phone,max=120"`
	Genres             []string `form:"genres" validate:"dive,genre"`
	ImageLink          string   `form:"image_link" validate:"omitempty,http_url,max=500"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,http_url,facebook,max=120"`
	Website            string   `form:"website_link" validate:"omitempty,http_url,max=120"`
	SeekingTalent      bool     `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

// ParseVenue validates a venue submission.  On success it returns the
// normalized field set; otherwise it returns *Errors.
func ParseVenue(vals url.Values) (model.VenueFields, error) {
	f := venueForm{
		Name:               text(vals, "name"),
		City:               text(vals, "city"),
		State:              text(vals, "state"),
		Address:            text(vals, "address"),
		Phone:              text(vals, "phone"),
		Genres:             genres(vals),
		ImageLink:          text(vals, "image_link"),
		FacebookLink:       text(vals, "facebook_link"),
		Website:            text(vals, "website_link"),
		SeekingTalent:      Checkbox(vals, "seeking_talent"),
		SeekingDescription: text(vals, "seeking_description"),
	}
	if fe := check(f, vals); fe != nil {
		return model.VenueFields{}, fe
	}
	return model.VenueFields{
		Name:               f.Name,
		Genres:             model.Genres(f.Genres),
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
	}, nil
}

// VenueValues renders stored venue fields back into form values, used to
// pre-fill the edit form.
func VenueValues(f model.VenueFields) url.Values {
	vals := url.Values{}
	vals.Set("name", f.Name)
	vals.Set("city", f.City)
	vals.Set("state", f.State)
	vals.Set("address", f.Address)
	vals.Set("phone", f.Phone)
	vals.Set("image_link", f.ImageLink)
	vals.Set("facebook_link", f.FacebookLink)
	vals.Set("website_link", f.Website)
	vals.Set("seeking_description", f.SeekingDescription)
	if f.SeekingTalent {
		vals.Set("seeking_talent", "y")
	}
	for _, g := range f.Genres {
		vals.Add("genres", g)
	}
	return vals
}
