package view

import (
	"html/template"
	"strings"
	"time"

	"github.com/iliyamo/venue-booking-directory/internal/form"
)

// Date layouts of the datetime filter.
const (
	FullDateTime   = "Monday January, 2, 2006 at 3:04PM"
	MediumDateTime = "Mon 01, 02, 2006 3:04PM"
)

// Funcs are available to every template.
var Funcs = template.FuncMap{
	"datetime": DateTime,
	"join":     strings.Join,
	"states":   func() []string { return form.States },
	"genres":   func() []string { return form.Genres },
	"plural": func(n int, one, many string) string {
		if n == 1 {
			return one
		}
		return many
	},
}

// DateTime formats t for display.  format is "full" or "medium" (the
// default).
func DateTime(t time.Time, format ...string) string {
	layout := MediumDateTime
	if len(format) > 0 && format[0] == "full" {
		layout = FullDateTime
	}
	return t.Format(layout)
}
