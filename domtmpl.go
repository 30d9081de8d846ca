// Package domtmpl renders HTML templates by rewriting a parsed DOM tree in
// place. The root package re-exports the common entry points; the engine,
// data contexts, template sources and widgets live under pkg/.
package domtmpl

import (
	"io"
	"io/fs"
	"strings"

	"github.com/goliatone/go-domtmpl/pkg/dom"
	"github.com/goliatone/go-domtmpl/pkg/engine"
	"github.com/goliatone/go-domtmpl/pkg/locale"
	"github.com/goliatone/go-domtmpl/pkg/scope"
)

// Data is the plain map context accepted by Render.
type Data = scope.Map

// Content aliases engine.Content for callers building contexts.
type Content = engine.Content

// ElementFunc aliases engine.ElementFunc.
type ElementFunc = engine.ElementFunc

// HTML marks a value as raw markup for element content bindings.
func HTML(s string) Content { return engine.HTML(s) }

// Text marks a value as plain text for element content bindings.
func Text(s string) Content { return engine.Text(s) }

// Visible toggles the presence of a content-bound element.
func Visible(v bool) Content { return engine.Visible(v) }

// NewEngine exposes the engine constructor from the top-level module.
func NewEngine(options ...engine.Option) *engine.Engine {
	return engine.New(options...)
}

// Render parses src, applies data and writes the result to w. Callers that
// render the same template repeatedly should keep a parsed master (see
// pkg/source) instead.
func Render(w io.Writer, src string, data any, options ...engine.Option) error {
	master, err := dom.Parse(src)
	if err != nil {
		return err
	}
	ctx, err := scope.FromValue(data)
	if err != nil {
		return err
	}
	return engine.New(options...).Render(w, master, ctx)
}

// RenderString is Render into a string.
func RenderString(src string, data any, options ...engine.Option) (string, error) {
	var b strings.Builder
	if err := Render(&b, src, data, options...); err != nil {
		return "", err
	}
	return b.String(), nil
}

// EmbeddedTemplates exposes the bundled localized templates so callers can
// reuse or extend them without importing pkg/locale directly.
func EmbeddedTemplates() fs.FS {
	return locale.TemplatesFS()
}
