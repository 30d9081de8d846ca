package comments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-domtmpl/pkg/dom"
	"github.com/goliatone/go-domtmpl/pkg/engine"
	"github.com/goliatone/go-domtmpl/pkg/locale"
	"github.com/goliatone/go-domtmpl/pkg/scope"
	"github.com/goliatone/go-domtmpl/pkg/source"
)

// ErrUnavailable is returned when the thread's comments are not readable.
var ErrUnavailable = errors.New("comments: thread not available")

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func commentSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.UGCPolicy()
	})
	return textPolicy
}

// Option configures a Widget.
type Option func(*Widget)

// WithLanguage selects the template and message language.
func WithLanguage(lang locale.Language) Option {
	return func(w *Widget) {
		w.lang = lang
	}
}

// WithLocation sets the zone comment dates are displayed in.
func WithLocation(loc *time.Location) Option {
	return func(w *Widget) {
		if loc != nil {
			w.location = loc
		}
	}
}

// WithTemplates replaces the localized template table. The thread is rendered
// from the template named by WithTemplateName.
func WithTemplates(set *source.Set) Option {
	return func(w *Widget) {
		if set != nil {
			w.templates = set
		}
	}
}

// WithTemplateName overrides the thread template name.
func WithTemplateName(name string) Option {
	return func(w *Widget) {
		if name != "" {
			w.templateName = name
		}
	}
}

// WithEngine overrides the engine built from the language and location.
func WithEngine(e *engine.Engine) Option {
	return func(w *Widget) {
		w.engine = e
	}
}

// WithPolicy overrides the sanitiser applied to comment bodies.
func WithPolicy(p *bluemonday.Policy) Option {
	return func(w *Widget) {
		if p != nil {
			w.policy = p
		}
	}
}

// WithLogger sets the widget logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Widget) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Widget renders comment threads for a single language.
type Widget struct {
	client       *Client
	lang         locale.Language
	location     *time.Location
	templates    *source.Set
	templateName string
	engine       *engine.Engine
	policy       *bluemonday.Policy
	logger       *slog.Logger
}

// New builds a widget. client may be nil when only Render is used.
func New(client *Client, opts ...Option) *Widget {
	w := &Widget{
		client:       client,
		lang:         locale.English,
		location:     time.UTC,
		templateName: locale.TemplateComments,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	if w.templates == nil {
		w.templates = source.New(
			source.WithStrings(locale.Templates(w.lang)),
			source.WithLogger(w.logger),
		)
	}
	if w.engine == nil {
		w.engine = engine.New(
			engine.WithDateFormatter(locale.DateFormatter(w.lang, w.location)),
			engine.WithLogger(w.logger),
		)
	}
	if w.policy == nil {
		w.policy = commentSanitizer()
	}
	return w
}

// Context builds the template data for thread as seen from pageURL.
func (w *Widget) Context(thread Thread, pageURL string) scope.Map {
	count := len(thread.List)
	list := make([]any, 0, count)
	for _, c := range thread.List {
		anchor := "c" + c.Id
		list = append(list, scope.Map{
			"author": c.Author,
			"url":    anchorURL(pageURL, anchor),
			"anchor": anchor,
			"when":   c.When,
			"text":   w.policy.Sanitize(c.Text),
		})
	}
	return scope.Map{
		"has_none_count":     count == 0,
		"has_singular_count": count == 1,
		"has_plural_count":   count > 1,
		"count":              count,
		"comments":           list,
		"can_add_comment":    thread.Config.IsWritable,
	}
}

// Render renders thread. Unreadable threads yield ErrUnavailable.
func (w *Widget) Render(thread Thread, pageURL string) (*dom.Fragment, error) {
	if !thread.Config.IsReadable {
		return nil, ErrUnavailable
	}
	master, err := w.templates.Fragment(w.templateName)
	if err != nil {
		return nil, fmt.Errorf("comments: load template: %w", err)
	}
	w.engine.ApplyFragment(master, w.Context(thread, pageURL))
	return master, nil
}

// Load fetches the thread for postID and renders it.
func (w *Widget) Load(ctx context.Context, postID, pageURL string) (*dom.Fragment, error) {
	if w.client == nil {
		return nil, errors.New("comments: client required")
	}
	thread, err := w.client.List(ctx, postID)
	if err != nil {
		w.logger.Warn("comment thread fetch failed", "post", postID, "error", err)
		return nil, err
	}
	return w.Render(thread, pageURL)
}

// Submit posts a new comment. The returned message is empty when the comment
// was published right away, the draft notice when it awaits approval, and the
// localized failure text alongside a non-nil error otherwise.
func (w *Widget) Submit(ctx context.Context, comment NewComment) (string, error) {
	if w.client == nil {
		return locale.Message(w.lang, locale.ErrorPostingComment), errors.New("comments: client required")
	}
	stored, err := w.client.Add(ctx, comment)
	if err != nil {
		w.logger.Warn("comment submission failed", "post", comment.PostId, "error", err)
		return locale.Message(w.lang, locale.ErrorPostingComment), err
	}
	if stored.Visible {
		return "", nil
	}
	return locale.Message(w.lang, locale.CommentPostedAsDraft), nil
}

func anchorURL(pageURL, anchor string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "#" + anchor
	}
	u.Fragment = anchor
	u.RawFragment = ""
	return u.String()
}
