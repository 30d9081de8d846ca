package adminlist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-domtmpl/pkg/dom"
	"github.com/goliatone/go-domtmpl/pkg/engine"
	"github.com/goliatone/go-domtmpl/pkg/scope"
)

// DefaultItemsPerPage is used when no page size is configured.
const DefaultItemsPerPage = 20

// DefaultTemplate lays out the title, the table and the pagination links.
const DefaultTemplate = `<div class="adminList">` +
	`<h2 class="listName"><jv>title</jv></h2>` +
	`<table class="list">` +
	`<thead><tr jtvar="headers"><th><input type="checkbox" name="SelectAll"></th></tr></thead>` +
	`<tbody jtvar="rows"></tbody>` +
	`</table>` +
	`<div class="listLinks">` +
	`<jv-if cond="has_next"><a jv-href="next_href">Next</a></jv-if>` +
	`<jv-if cond="has_both"> </jv-if>` +
	`<jv-if cond="has_previous"><a jv-href="previous_href">Previous</a></jv-if>` +
	`</div>` +
	`</div>`

// DefaultRowTemplate is the markup of a single row before its text columns
// are appended.
const DefaultRowTemplate = `<tr><td><input type="checkbox" name="Selected" value="jtvar index"></td></tr>`

// ItemList is one page of results.
type ItemList[T any] struct {
	List []T
	More bool
}

// Source supplies the items and their presentation.
type Source[T, F any] interface {
	Items(ctx context.Context, filter F, limit, start int) (ItemList[T], error)
	Title(filter F) string
	Row(item T) []string
}

// Headed is implemented by sources that name their columns.
type Headed interface {
	Columns() []string
}

// Option configures a Controller.
type Option func(*config)

type config struct {
	perPage     int
	template    string
	rowTemplate string
	link        func(start int) string
	engine      *engine.Engine
	logger      *slog.Logger
}

// WithItemsPerPage sets the page size. Non-positive values are ignored.
func WithItemsPerPage(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.perPage = n
		}
	}
}

// WithTemplate overrides the list template.
func WithTemplate(src string) Option {
	return func(cfg *config) {
		if src != "" {
			cfg.template = src
		}
	}
}

// WithRowTemplate overrides the row template. It must hold a single <tr>.
func WithRowTemplate(src string) Option {
	return func(cfg *config) {
		if src != "" {
			cfg.rowTemplate = src
		}
	}
}

// WithLinkFormat sets how pagination links encode their start offset.
func WithLinkFormat(fn func(start int) string) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.link = fn
		}
	}
}

// WithEngine overrides the default engine.
func WithEngine(e *engine.Engine) Option {
	return func(cfg *config) {
		if e != nil {
			cfg.engine = e
		}
	}
}

// WithLogger sets the controller logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Controller renders pages of a Source.
type Controller[T, F any] struct {
	source  Source[T, F]
	perPage int
	master  *dom.Fragment
	row     []*html.Node
	link    func(start int) string
	engine  *engine.Engine
	logger  *slog.Logger
}

// New builds a controller over src.
func New[T, F any](src Source[T, F], opts ...Option) (*Controller[T, F], error) {
	if src == nil {
		return nil, errors.New("adminlist: source required")
	}
	cfg := config{
		perPage:     DefaultItemsPerPage,
		template:    DefaultTemplate,
		rowTemplate: DefaultRowTemplate,
		link:        func(start int) string { return "?start=" + strconv.Itoa(start) },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.engine == nil {
		cfg.engine = engine.New(engine.WithLogger(cfg.logger))
	}

	master, err := dom.Parse(cfg.template)
	if err != nil {
		return nil, fmt.Errorf("adminlist: parse template: %w", err)
	}
	tbody := &html.Node{Type: html.ElementNode, DataAtom: atom.Tbody, Data: "tbody"}
	row, err := dom.ParseIn(tbody, cfg.rowTemplate)
	if err != nil {
		return nil, fmt.Errorf("adminlist: parse row template: %w", err)
	}
	return &Controller[T, F]{
		source:  src,
		perPage: cfg.perPage,
		master:  master,
		row:     row,
		link:    cfg.link,
		engine:  cfg.engine,
		logger:  cfg.logger,
	}, nil
}

// ItemsPerPage reports the configured page size.
func (c *Controller[T, F]) ItemsPerPage() int { return c.perPage }

// Page fetches the items starting at start and renders them.
func (c *Controller[T, F]) Page(ctx context.Context, filter F, start int) (*dom.Fragment, error) {
	if start < 0 {
		start = 0
	}
	items, err := c.source.Items(ctx, filter, c.perPage, start)
	if err != nil {
		c.logger.Warn("admin list fetch failed", "start", start, "error", err)
		return nil, fmt.Errorf("adminlist: fetch items: %w", err)
	}

	previous := start - c.perPage
	if previous < 0 {
		previous = 0
	}
	page := scope.Map{
		"title":         c.source.Title(filter),
		"start":         start,
		"count":         len(items.List),
		"has_next":      items.More,
		"has_previous":  start > 0,
		"has_both":      items.More && start > 0,
		"next_href":     c.link(start + c.perPage),
		"previous_href": c.link(previous),
	}
	page["headers"] = engine.ElementFunc(c.headers)
	page["rows"] = engine.ElementFunc(func(tbody *html.Node) {
		c.rows(tbody, page, items.List, start)
	})

	return c.engine.Execute(c.master, page), nil
}

func (c *Controller[T, F]) headers(tr *html.Node) {
	headed, ok := c.source.(Headed)
	if !ok {
		return
	}
	for _, name := range headed.Columns() {
		th := &html.Node{Type: html.ElementNode, DataAtom: atom.Th, Data: "th"}
		th.AppendChild(dom.Text(name))
		tr.AppendChild(th)
	}
}

func (c *Controller[T, F]) rows(tbody *html.Node, page scope.Context, list []T, start int) {
	for i, item := range list {
		columns := c.source.Row(item)
		rowCtx := scope.With(page,
			scope.Binding{Name: "index", Value: start + i},
			scope.Binding{Name: "item", Value: item},
			scope.Binding{Name: "columns", Value: columns},
		)
		for _, master := range c.row {
			n := dom.Clone(master)
			tbody.AppendChild(n)
			c.engine.Apply(n, rowCtx)
			if n.Type == html.ElementNode && n.Data == "tr" {
				appendColumns(n, columns)
			}
		}
	}
}

func appendColumns(tr *html.Node, columns []string) {
	for _, col := range columns {
		td := &html.Node{Type: html.ElementNode, DataAtom: atom.Td, Data: "td"}
		td.AppendChild(dom.Text(col))
		tr.AppendChild(td)
	}
}
