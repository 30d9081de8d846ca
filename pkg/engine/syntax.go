package engine

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-domtmpl/pkg/dom"
)

// Attribute and flag names shared by the directive notation.
const (
	AttrCond  = "cond"
	AttrNot   = "not"
	AttrItems = "items"
	AttrItem  = "item"
	AttrIndex = "index"
	FlagHTML  = "html"
	FlagDate  = "date"
)

// Tags configures the element and attribute names of the directive notation.
type Tags struct {
	Placeholder string
	If          string
	For         string
	AttrPrefix  string
}

// DefaultTags are the names used by the bundled templates.
func DefaultTags() Tags {
	return Tags{
		Placeholder: "jv",
		If:          "jv-if",
		For:         "jv-for",
		AttrPrefix:  "jv-",
	}
}

// Directives is the element based notation.
type Directives struct {
	tags Tags
}

// NewDirectives builds the notation with the supplied tags. Empty fields
// fall back to DefaultTags.
func NewDirectives(tags Tags) Directives {
	def := DefaultTags()
	tags.Placeholder = fallback(tags.Placeholder, def.Placeholder)
	tags.If = fallback(tags.If, def.If)
	tags.For = fallback(tags.For, def.For)
	tags.AttrPrefix = fallback(tags.AttrPrefix, def.AttrPrefix)
	return Directives{tags: tags}
}

// Tags returns the configured names.
func (s Directives) Tags() Tags { return s.tags }

// Classify implements Syntax.
func (s Directives) Classify(n *html.Node) Directive {
	if !isHTMLElement(n) {
		return Directive{}
	}
	switch {
	case strings.EqualFold(n.Data, s.tags.Placeholder):
		d := Directive{Kind: KindPlaceholder, Path: strings.TrimSpace(dom.TextContent(n))}
		switch {
		case dom.HasAttr(n, FlagHTML):
			d.Mode = ModeHTML
		case dom.HasAttr(n, FlagDate):
			d.Mode = ModeDate
		}
		return d
	case strings.EqualFold(n.Data, s.tags.If):
		cond, _ := dom.Attr(n, AttrCond)
		return Directive{
			Kind:   KindConditional,
			Path:   strings.TrimSpace(cond),
			Negate: dom.HasAttr(n, AttrNot),
		}
	case strings.EqualFold(n.Data, s.tags.For):
		items, _ := dom.Attr(n, AttrItems)
		item, _ := dom.Attr(n, AttrItem)
		index, _ := dom.Attr(n, AttrIndex)
		return Directive{
			Kind:  KindLoop,
			Path:  strings.TrimSpace(items),
			Item:  strings.TrimSpace(item),
			Index: strings.TrimSpace(index),
		}
	}

	var d Directive
	prefix := strings.ToLower(s.tags.AttrPrefix)
	for _, a := range n.Attr {
		if a.Namespace != "" || !strings.HasPrefix(a.Key, prefix) {
			continue
		}
		d.Bindings = append(d.Bindings, AttrBinding{
			Marker: a.Key,
			Target: strings.TrimPrefix(a.Key, prefix),
			Path:   strings.TrimSpace(a.Val),
		})
	}
	return d
}

// MarkerKeyword introduces every binding of the marker notation.
const MarkerKeyword = "jtvar"

// Markers is the attribute/element marker notation.
type Markers struct{}

// Classify implements Syntax.
func (Markers) Classify(n *html.Node) Directive {
	if !isHTMLElement(n) {
		return Directive{}
	}
	if strings.EqualFold(n.Data, MarkerKeyword) {
		d := Directive{Kind: KindPlaceholder}
		for _, a := range n.Attr {
			if a.Namespace != "" {
				continue
			}
			if d.Path == "" {
				d.Path = a.Key
				continue
			}
			d.Alternates = append(d.Alternates, a.Key)
		}
		return d
	}

	var d Directive
	prefix := MarkerKeyword + " "
	for _, a := range n.Attr {
		if a.Namespace != "" {
			continue
		}
		if a.Key == MarkerKeyword {
			d.Kind = KindContent
			d.Path = strings.TrimSpace(a.Val)
			d.Marker = a.Key
			continue
		}
		if strings.HasPrefix(a.Val, prefix) {
			d.Bindings = append(d.Bindings, AttrBinding{
				Marker: a.Key,
				Target: a.Key,
				Path:   strings.TrimSpace(a.Val[len(prefix):]),
			})
		}
	}
	return d
}

func isHTMLElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.Namespace == ""
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
