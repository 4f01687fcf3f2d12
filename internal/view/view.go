// Package view renders the site's HTML pages.  Templates are embedded in
// the binary; every page is parsed together with the shared layout.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking-directory/internal/flash"
	"github.com/iliyamo/venue-booking-directory/internal/form"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page is the value every template is executed with.
type Page struct {
	Title   string
	Flashes []flash.Message
	Data    any
	Form    *Form
}

// Choice is an id/name option of a select input.
type Choice struct {
	ID   uint64
	Name string
}

// Form carries the raw submitted (or prefilled) values and per-field
// errors of an HTML form.
type Form struct {
	Action  string
	Values  url.Values
	Errors  map[string][]string
	Artists []Choice
	Venues  []Choice
}

// Value returns the first submitted value of field.
func (f *Form) Value(field string) string {
	if f == nil {
		return ""
	}
	return f.Values.Get(field)
}

// Has reports whether option was submitted for field.
func (f *Form) Has(field, option string) bool {
	if f == nil {
		return false
	}
	for _, v := range f.Values[field] {
		if v == option {
			return true
		}
	}
	return false
}

// Checked reports whether the checkbox field is ticked.
func (f *Form) Checked(field string) bool {
	if f == nil {
		return false
	}
	return form.Checkbox(f.Values, field)
}

// Errs returns the error messages attached to field.
func (f *Form) Errs(field string) []string {
	if f == nil {
		return nil
	}
	return f.Errors[field]
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page under templates/ (except layouts) against the
// layout.  Pages are addressed by their path without extension, e.g.
// "pages/show_venue" or "errors/404".
func New() (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}
	err := fs.WalkDir(templateFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".html" || strings.HasPrefix(p, "templates/layouts/") {
			return nil
		}
		name := strings.TrimSuffix(strings.TrimPrefix(p, "templates/"), ".html")
		t, err := template.New(path.Base(p)).Funcs(Funcs).ParseFS(templateFS, "templates/layouts/*.html", p)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Render executes the layout with page name's content block.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Has reports whether a page named name exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}
