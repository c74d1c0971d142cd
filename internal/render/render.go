// Package render projects module record lists into HTML fragments for the
// dashboard views. Rendering is a pure function of the record list: the
// same input always yields identical markup. html/template escapes every
// user-supplied field on output.
package render

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// funcMap holds the formatting helpers shared by all view templates
var funcMap = template.FuncMap{
	"shortDate": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02")
	},
	"shortDatePtr": func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("2006-01-02")
	},
	"pct": func(v float64) string {
		return fmt.Sprintf("%.1f%%", v)
	},
	"money": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"join": strings.Join,
}

// Renderer renders the per-module list views
type Renderer struct {
	templates *template.Template
}

// New parses the view templates. Parsing happens once; a template error
// here is a programming bug and is returned to the caller at startup.
func New() (*Renderer, error) {
	root := template.New("views").Funcs(funcMap)
	for name, body := range viewTemplates {
		if _, err := root.New(name).Parse(body); err != nil {
			return nil, fmt.Errorf("failed to parse view template %q: %w", name, err)
		}
	}
	return &Renderer{templates: root}, nil
}

// Render executes the named view template over the record list
func (r *Renderer) Render(view string, records interface{}) (string, error) {
	var sb strings.Builder
	if err := r.templates.ExecuteTemplate(&sb, view, records); err != nil {
		return "", fmt.Errorf("failed to render %s view: %w", view, err)
	}
	return sb.String(), nil
}

// Views returns the names of the available view templates
func (r *Renderer) Views() []string {
	names := make([]string, 0, len(viewTemplates))
	for name := range viewTemplates {
		names = append(names, name)
	}
	return names
}

// Has reports whether the named view exists
func (r *Renderer) Has(view string) bool {
	_, ok := viewTemplates[view]
	return ok
}
