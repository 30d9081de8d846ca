// Package dom wraps golang.org/x/net/html nodes into detached, mutable
// fragments: parse once, clone per render, splice and serialise.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fragment is a detached tree of nodes hanging from a synthetic root. The
// root itself is never rendered.
type Fragment struct {
	root *html.Node
}

// Parse reads an HTML fragment in <body> context.
func Parse(src string) (*Fragment, error) {
	return ParseReader(strings.NewReader(src))
}

// ParseReader reads an HTML fragment from r in <body> context.
func ParseReader(r io.Reader) (*Fragment, error) {
	nodes, err := html.ParseFragment(r, bodyContext())
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	f := &Fragment{root: newRoot()}
	for _, n := range nodes {
		f.root.AppendChild(n)
	}
	return f, nil
}

// MustParse is Parse for static templates; it panics on error.
func MustParse(src string) *Fragment {
	f, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return f
}

// Root returns the synthetic container node. Callers may mutate its children.
func (f *Fragment) Root() *html.Node {
	if f == nil {
		return nil
	}
	return f.root
}

// Nodes returns the top-level nodes in document order.
func (f *Fragment) Nodes() []*html.Node {
	if f == nil {
		return nil
	}
	return Children(f.root)
}

// Clone returns a deep copy that shares nothing with f.
func (f *Fragment) Clone() *Fragment {
	if f == nil {
		return nil
	}
	return &Fragment{root: Clone(f.root)}
}

// Render serialises the top-level nodes into w.
func (f *Fragment) Render(w io.Writer) error {
	if f == nil {
		return nil
	}
	for c := f.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return fmt.Errorf("dom: render: %w", err)
		}
	}
	return nil
}

// String returns the serialised fragment, or "" if rendering fails.
func (f *Fragment) String() string {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// AppendTo moves the fragment's top-level nodes under parent, leaving the
// fragment empty.
func (f *Fragment) AppendTo(parent *html.Node) {
	if f == nil || parent == nil {
		return
	}
	for _, n := range Children(f.root) {
		f.root.RemoveChild(n)
		parent.AppendChild(n)
	}
}

func newRoot() *html.Node {
	return &html.Node{Type: html.DocumentNode}
}

func bodyContext() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}
