// Package form validates and normalizes submitted venue, artist and show
// forms before they reach persistence.  Parsing never touches the
// database; uniqueness is enforced by the store.
package form

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors is returned when a submission is invalid.  Fields maps form
// field names to their messages; Values holds the raw submission so the
// form can be redisplayed as typed.
type Errors struct {
	Fields map[string][]string
	Values url.Values
}

func (e *Errors) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid form fields: %s", strings.Join(names, ", "))
}

// Add appends msg to the messages of field.
func (e *Errors) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Has reports whether field has at least one message.
func (e *Errors) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

// First returns the first message for field or "".
func (e *Errors) First(field string) string {
	if msgs := e.Fields[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// AsErrors unwraps err into *Errors.
func AsErrors(err error) (*Errors, bool) {
	var fe *Errors
	ok := errors.As(err, &fe)
	return fe, ok
}

var phonePattern = regexp.MustCompile(`^\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}$`)

// validate is the shared validator instance with the directory's custom
// rules registered.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(formName)
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("state", func(fl validator.FieldLevel) bool {
		return stateSet[fl.Field().String()]
	})
	_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return genreSet[fl.Field().String()]
	})
	_ = v.RegisterValidation("facebook", func(fl validator.FieldLevel) bool {
		u, err := url.Parse(fl.Field().String())
		if err != nil {
			return false
		}
		host := strings.ToLower(u.Hostname())
		return host == "facebook.com" || strings.HasSuffix(host, ".facebook.com")
	})
	return v
}

// formName reports the `form` tag of a struct field so validation errors
// are keyed by the HTML field name rather than the Go field name.
func formName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// check runs the struct validator and converts its failures into Errors.
func check(s any, raw url.Values) *Errors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	fe := &Errors{Values: raw}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.Add("form", err.Error())
		return fe
	}
	for _, ve := range verrs {
		name := ve.Field()
		// dive errors are reported as genres[1]; collapse onto the field.
		if i := strings.IndexByte(name, '['); i > 0 {
			name = name[:i]
		}
		fe.Add(name, message(ve))
	}
	return fe
}

func message(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", ve.Param())
	case "phone":
		return "Invalid phone number."
	case "url", "http_url":
		return "Invalid URL."
	case "facebook":
		return "Must be a facebook.com URL."
	case "state", "genre":
		return "Not a valid choice."
	case "gt":
		return "Must be a positive number."
	}
	return "Invalid value."
}

// text returns the trimmed value of key.
func text(vals url.Values, key string) string {
	return strings.TrimSpace(vals.Get(key))
}

// Checkbox coerces an HTML checkbox value into a boolean.  An absent
// field means unchecked.
func Checkbox(vals url.Values, key string) bool {
	switch strings.ToLower(text(vals, key)) {
	case "y", "yes", "on", "true", "1":
		return true
	}
	return false
}

// genres returns the submitted genre list trimmed and de-duplicated,
// keeping the first-seen order.
func genres(vals url.Values) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, g := range vals["genres"] {
		g = strings.TrimSpace(g)
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out
}
