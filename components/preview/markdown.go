package preview

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Renderer converts comment markdown into sanitised HTML. It is safe for
// concurrent use.
type Renderer struct {
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
}

var (
	defaultRendererOnce sync.Once
	defaultRenderer     *Renderer
)

// DefaultRenderer returns the shared renderer built by NewRenderer.
func DefaultRenderer() *Renderer {
	defaultRendererOnce.Do(func() {
		defaultRenderer = NewRenderer(nil)
	})
	return defaultRenderer
}

// NewRenderer builds a renderer. A nil policy selects bluemonday's UGC policy.
func NewRenderer(policy *bluemonday.Policy) *Renderer {
	if policy == nil {
		policy = bluemonday.UGCPolicy()
	}
	return &Renderer{
		markdown: goldmark.New(
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
		),
		sanitizer: policy,
	}
}

// Render returns the sanitised HTML for src.
func (r *Renderer) Render(src string) (string, error) {
	source := []byte(src)
	root := r.markdown.Parser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	if err := r.markdown.Renderer().Render(&buf, source, root); err != nil {
		return "", fmt.Errorf("preview: render markdown: %w", err)
	}
	return r.sanitizer.Sanitize(buf.String()), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
