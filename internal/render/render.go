// Package render renders project templates against a data context.
//
// Templates use text/template syntax with the sprig function set. Missing
// keys and out-of-range indices are errors; a template never silently renders
// an empty string in place of data it could not find.
package render

import (
	"strings"
	"text/template"

	sprig "github.com/Masterminds/sprig/v3"

	verrors "github.com/JonSteinn/vspy/internal/errors"
)

// Renderer parses and executes templates with a fixed function map.
// It holds no per-render state and is safe for concurrent use.
type Renderer struct {
	funcs template.FuncMap
}

// New creates a renderer with the sprig hermetic functions and a strict index.
func New() *Renderer {
	funcs := sprig.HermeticTxtFuncMap()
	funcs["index"] = index
	return &Renderer{funcs: funcs}
}

var defaultRenderer = New()

// Render renders text against data using the default renderer.
func Render(text string, data any) (string, error) {
	return defaultRenderer.Render("template", text, data)
}

// Render parses text as a template called name and executes it against data.
// Failures are returned as *errors.RenderError.
func (r *Renderer) Render(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(r.funcs).
		Parse(text)
	if err != nil {
		return "", &verrors.RenderError{Template: name, Err: err}
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", &verrors.RenderError{Template: name, Err: err}
	}
	return b.String(), nil
}
