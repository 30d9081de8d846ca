package engine

import (
	"golang.org/x/net/html"
)

// Kind classifies a node before dispatch.
type Kind int

const (
	KindPlain Kind = iota
	KindPlaceholder
	KindConditional
	KindLoop
	KindContent
)

func (k Kind) String() string {
	switch k {
	case KindPlaceholder:
		return "placeholder"
	case KindConditional:
		return "conditional"
	case KindLoop:
		return "loop"
	case KindContent:
		return "content"
	default:
		return "plain"
	}
}

// Mode selects how a placeholder value is written.
type Mode int

const (
	ModeText Mode = iota
	ModeHTML
	ModeDate
)

// AttrBinding interpolates Target from Path. Marker names the attribute that
// carried the binding; it is stripped after resolution.
type AttrBinding struct {
	Marker string
	Target string
	Path   string
}

// Directive is the classification of a single element.
type Directive struct {
	Kind Kind
	// Path is the variable path (placeholder, content binding), the condition
	// (conditional) or the iterable (loop). Empty means malformed.
	Path string
	// Alternates are further placeholder paths tried in order while the
	// previous ones are undefined.
	Alternates []string
	Mode       Mode
	// Negate inverts a conditional.
	Negate bool
	// Item and Index name the loop bindings.
	Item  string
	Index string
	// Marker is the attribute stripped from a content-bound element.
	Marker   string
	Bindings []AttrBinding
}

// IsDirective reports whether the node still carries template behaviour.
func (d Directive) IsDirective() bool {
	return d.Kind != KindPlain || len(d.Bindings) > 0
}

// Syntax classifies elements for one directive notation.
type Syntax interface {
	Classify(n *html.Node) Directive
}

// SyntaxFunc adapts a function into a Syntax.
type SyntaxFunc func(n *html.Node) Directive

// Classify delegates to the underlying function.
func (fn SyntaxFunc) Classify(n *html.Node) Directive {
	return fn(n)
}

type combined []Syntax

// Combined merges several notations. The first one that recognises a
// directive element wins; attribute bindings from every notation are kept.
func Combined(syntaxes ...Syntax) Syntax {
	var out combined
	for _, s := range syntaxes {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

func (c combined) Classify(n *html.Node) Directive {
	var result Directive
	var bindings []AttrBinding
	for _, s := range c {
		d := s.Classify(n)
		bindings = append(bindings, d.Bindings...)
		if result.Kind == KindPlain && d.Kind != KindPlain {
			result = d
		}
	}
	result.Bindings = bindings
	return result
}
