package engine

import "golang.org/x/net/html"

// ContentKind selects how a Content value is written.
type ContentKind int

const (
	ContentText ContentKind = iota
	ContentHTML
	ContentVisibility
)

// Content is a structured value that picks its own output mode, used by the
// marker notation where placeholders carry no flags.
type Content struct {
	Kind    ContentKind
	Value   string
	Visible bool
}

// Text writes s as literal text.
func Text(s string) Content { return Content{Kind: ContentText, Value: s} }

// HTML writes s as markup. The value is not sanitised.
func HTML(s string) Content { return Content{Kind: ContentHTML, Value: s} }

// Visible keeps or removes a bound element.
func Visible(v bool) Content { return Content{Kind: ContentVisibility, Visible: v} }

// ElementFunc fills a bound element programmatically. It is called with the
// element still attached so it may append children or insert siblings.
type ElementFunc func(n *html.Node)

// Truthy lets conditionals treat a Content the way content bindings do.
// Visibility values report their flag; text and markup are true when
// non-empty.
func (c Content) Truthy() bool {
	if c.Kind == ContentVisibility {
		return c.Visible
	}
	return c.Value != ""
}
