package engine

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/goliatone/go-domtmpl/pkg/dom"
	"github.com/goliatone/go-domtmpl/pkg/scope"
)

// DateFormatter renders a parsed date for date-mode placeholders.
type DateFormatter func(t time.Time) string

// Option configures an Engine.
type Option func(*config)

type config struct {
	syntax      Syntax
	dates       DateFormatter
	dateLayouts []string
	logger      *slog.Logger
}

// WithSyntax selects the directive notation. Defaults to
// Combined(NewDirectives(DefaultTags()), Markers{}).
func WithSyntax(s Syntax) Option {
	return func(cfg *config) {
		if s != nil {
			cfg.syntax = s
		}
	}
}

// WithDateFormatter installs the locale aware date formatter. Without one,
// date placeholders render their raw input.
func WithDateFormatter(fn DateFormatter) Option {
	return func(cfg *config) {
		cfg.dates = fn
	}
}

// WithDateLayouts overrides the layouts tried when parsing date strings.
func WithDateLayouts(layouts ...string) Option {
	return func(cfg *config) {
		if len(layouts) == 0 {
			return
		}
		cfg.dateLayouts = append([]string(nil), layouts...)
	}
}

// WithLogger routes diagnostics about malformed directives and data.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// DefaultDateLayouts are tried in order when a date placeholder holds a string.
func DefaultDateLayouts() []string {
	return []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
}

// Engine applies directives to HTML trees. It holds no per-render state and
// is safe for concurrent use as long as each render works on its own tree.
type Engine struct {
	syntax      Syntax
	dates       DateFormatter
	dateLayouts []string
	logger      *slog.Logger
}

// New constructs an Engine.
func New(options ...Option) *Engine {
	cfg := config{
		syntax:      Combined(NewDirectives(DefaultTags()), Markers{}),
		dateLayouts: DefaultDateLayouts(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		syntax:      cfg.syntax,
		dates:       cfg.dates,
		dateLayouts: cfg.dateLayouts,
		logger:      cfg.logger,
	}
}

// Syntax returns the notation the engine classifies nodes with.
func (e *Engine) Syntax() Syntax { return e.syntax }

// Execute clones master, applies ctx to the clone and returns it. The
// master is left untouched.
func (e *Engine) Execute(master *dom.Fragment, ctx scope.Context) *dom.Fragment {
	out := master.Clone()
	e.ApplyFragment(out, ctx)
	return out
}

// Render executes master against ctx and writes the markup to w.
func (e *Engine) Render(w io.Writer, master *dom.Fragment, ctx scope.Context) error {
	return e.Execute(master, ctx).Render(w)
}

// RenderString is Render into a string.
func (e *Engine) RenderString(master *dom.Fragment, ctx scope.Context) (string, error) {
	var b strings.Builder
	if err := e.Render(&b, master, ctx); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ApplyFragment resolves every directive in f in place.
func (e *Engine) ApplyFragment(f *dom.Fragment, ctx scope.Context) {
	if f == nil {
		return
	}
	e.Apply(f.Root(), ctx)
}

// Apply resolves n and its descendants in place. Directive nodes replace
// themselves, so n should be attached to a parent (or be a fragment root).
func (e *Engine) Apply(n *html.Node, ctx scope.Context) {
	if n == nil {
		return
	}
	if ctx == nil {
		ctx = scope.Map{}
	}
	switch n.Type {
	case html.DocumentNode:
		e.applyChildren(n, ctx)
		return
	case html.ElementNode:
	default:
		return
	}

	d := e.syntax.Classify(n)
	switch d.Kind {
	case KindPlaceholder:
		e.renderPlaceholder(n, d, ctx)
	case KindConditional:
		e.applyConditional(n, d, ctx)
	case KindLoop:
		e.applyLoop(n, d, ctx)
	case KindContent:
		e.applyContent(n, d, ctx)
	default:
		e.interpolate(n, d.Bindings, ctx)
		e.applyChildren(n, ctx)
	}
}

// applyChildren snapshots the children first: directives replace themselves
// and the replacement must not be visited again.
func (e *Engine) applyChildren(n *html.Node, ctx scope.Context) {
	for _, c := range dom.Children(n) {
		e.Apply(c, ctx)
	}
}

// Residual lists the nodes under n that still carry directive behaviour.
// A complete pass leaves none.
func (e *Engine) Residual(n *html.Node) []*html.Node {
	var out []*html.Node
	dom.Walk(n, func(node *html.Node) bool {
		if node.Type == html.ElementNode && e.syntax.Classify(node).IsDirective() {
			out = append(out, node)
		}
		return true
	})
	return out
}

func (e *Engine) lookup(ctx scope.Context, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	return scope.Resolve(ctx, path)
}
