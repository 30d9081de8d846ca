package preview

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/goliatone/go-domtmpl/pkg/dom"
	"github.com/goliatone/go-domtmpl/pkg/engine"
	"github.com/goliatone/go-domtmpl/pkg/scope"
)

// DefaultTemplate wraps the rendered draft in the preview box.
const DefaultTemplate = `<div id="jtPreviewBox"><jv html>preview</jv></div>`

// Preview renders drafts into a template fragment.
type Preview struct {
	renderer *Renderer
	engine   *engine.Engine
	master   *dom.Fragment
	logger   *slog.Logger
}

// NewPreview builds a preview over master. A nil master selects
// DefaultTemplate. The renderer and logger come from the component options.
func NewPreview(master *dom.Fragment, fns ...OptionFn) *Preview {
	opts := NewOptions(fns...)
	if master == nil {
		master = dom.MustParse(DefaultTemplate)
	}
	return &Preview{
		renderer: opts.Renderer,
		engine:   engine.New(engine.WithLogger(opts.Logger)),
		master:   master,
		logger:   opts.Logger,
	}
}

// Render converts text to HTML and returns a fresh fragment holding it.
func (p *Preview) Render(text string) (*dom.Fragment, error) {
	rendered, err := p.renderer.Render(text)
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	return p.engine.Execute(p.master, scope.Map{"preview": rendered, "text": text}), nil
}

// Debounced returns a debouncer that renders each settled draft and hands
// the result to out.
func (p *Preview) Debounced(interval time.Duration, out func(*dom.Fragment, error)) *Debouncer {
	return NewDebouncer(interval, func(text string) {
		frag, err := p.Render(text)
		if err != nil {
			p.logger.Warn("preview render failed", "error", err)
		}
		if out != nil {
			out(frag, err)
		}
	})
}
