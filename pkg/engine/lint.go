package engine

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-domtmpl/pkg/dom"
)

// Issue is a malformed directive found by Lint. Malformed directives render
// nothing; Lint surfaces them before a template ships.
type Issue struct {
	Node     *html.Node
	Kind     Kind
	Location string
	Message  string
}

func (i Issue) String() string {
	return i.Location + ": " + i.Message
}

// Lint reports malformed directives under n without modifying the tree.
func (e *Engine) Lint(n *html.Node) []Issue {
	var issues []Issue
	dom.Walk(n, func(node *html.Node) bool {
		if node.Type != html.ElementNode {
			return true
		}
		d := e.syntax.Classify(node)
		report := func(msg string) {
			issues = append(issues, Issue{Node: node, Kind: d.Kind, Location: location(node), Message: msg})
		}
		switch d.Kind {
		case KindPlaceholder:
			if d.Path == "" {
				report("placeholder has no variable path")
			}
		case KindConditional:
			if d.Path == "" {
				report("conditional has no condition path")
			}
		case KindLoop:
			if d.Path == "" {
				report("loop has no items path")
			}
			if d.Item == "" {
				report("loop has no item name")
			}
		case KindContent:
			if d.Path == "" {
				report("content binding has no variable path")
			}
		}
		for _, b := range d.Bindings {
			if b.Path == "" {
				report(fmt.Sprintf("attribute %q has no variable path", b.Target))
			}
		}
		return true
	})
	return issues
}

func location(n *html.Node) string {
	var parts []string
	for cur := n; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		parts = append(parts, cur.Data)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " > ")
}
