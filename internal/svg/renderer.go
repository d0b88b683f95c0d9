package svg

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"notcoderguy/spotify-svg/internal/playback"
)

// Renderer executes parsed SVG templates against a display model. Templates
// are parsed once at construction; a template referencing a field the model
// does not have fails at execution time and is surfaced as an error rather
// than swallowed, since that is a programming mistake the tests must catch.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses every *.svg.tmpl file in dir.
func NewRenderer(dir string) (*Renderer, error) {
	templates, err := template.ParseGlob(filepath.Join(dir, "*.svg.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("parse svg templates: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

// Render produces the final markup for the model using the named template.
func (r *Renderer) Render(model playback.Model, templateID string) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, templateID, model); err != nil {
		return "", fmt.Errorf("execute template %q: %w", templateID, err)
	}
	return buf.String(), nil
}
