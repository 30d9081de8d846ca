package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Children snapshots the child list of n. Mutating the tree afterwards does
// not affect the returned slice.
func Children(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// Clone deep-copies n and its subtree. The copy is detached.
func Clone(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	out := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		out.Attr = append([]html.Attribute(nil), n.Attr...)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out.AppendChild(Clone(c))
	}
	return out
}

// InsertBefore inserts detached nodes before ref, preserving their order.
func InsertBefore(ref *html.Node, nodes ...*html.Node) {
	if ref == nil || ref.Parent == nil {
		return
	}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		ref.Parent.InsertBefore(n, ref)
	}
}

// Remove detaches n from its parent. Detached nodes are left alone.
func Remove(n *html.Node) {
	if n == nil || n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Unwrap lifts the children of n into its parent at n's position and then
// removes n.
func Unwrap(n *html.Node) {
	if n == nil || n.Parent == nil {
		return
	}
	InsertBefore(n, Children(n)...)
	Remove(n)
}

// ReplaceChildren drops every child of n and appends nodes.
func ReplaceChildren(n *html.Node, nodes ...*html.Node) {
	if n == nil {
		return
	}
	for _, c := range Children(n) {
		n.RemoveChild(c)
	}
	for _, c := range nodes {
		if c == nil {
			continue
		}
		if c.Parent != nil {
			c.Parent.RemoveChild(c)
		}
		n.AppendChild(c)
	}
}

// Text builds a detached text node. The content is escaped on render.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// ParseIn parses markup as it would be parsed inside context. When context
// is nil or not an element, <body> is used.
func ParseIn(context *html.Node, markup string) ([]*html.Node, error) {
	ctx := context
	if ctx == nil || ctx.Type != html.ElementNode {
		ctx = bodyContext()
	} else {
		// ParseFragment rejects contexts whose DataAtom disagrees with Data.
		ctx = &html.Node{Type: html.ElementNode, Data: ctx.Data, DataAtom: atom.Lookup([]byte(ctx.Data)), Namespace: ctx.Namespace}
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, fmt.Errorf("dom: parse markup: %w", err)
	}
	return nodes, nil
}

// Attr returns the value of attribute key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether n carries attribute key.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// SetAttr sets attribute key on n, replacing an existing value.
func SetAttr(n *html.Node, key, val string) {
	if n == nil {
		return
	}
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes attribute key from n.
func RemoveAttr(n *html.Node, key string) {
	if n == nil || len(n.Attr) == 0 {
		return
	}
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

// TextContent concatenates the text nodes under n.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(TextContent(c))
	}
	return b.String()
}

// Walk visits n and its descendants in document order. Returning false from
// visit skips the node's subtree.
func Walk(n *html.Node, visit func(*html.Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, visit)
	}
}
