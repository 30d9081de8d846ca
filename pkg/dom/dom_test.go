package dom

import (
	"testing"

	"golang.org/x/net/html"
)

func TestParseRenderRoundTrip(t *testing.T) {
	t.Parallel()

	src := `<p class="a">By <b>Ann</b></p><div>x</div>`
	f, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := f.String(); got != src {
		t.Fatalf("expected %q, got %q", src, got)
	}
	if n := len(f.Nodes()); n != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", n)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	master := MustParse(`<a href="x">link</a>`)
	clone := master.Clone()

	a := clone.Nodes()[0]
	SetAttr(a, "href", "y")
	a.FirstChild.Data = "changed"

	if got := master.String(); got != `<a href="x">link</a>` {
		t.Fatalf("expected master to be unchanged, got %q", got)
	}
	if got := clone.String(); got != `<a href="y">changed</a>` {
		t.Fatalf("unexpected clone output %q", got)
	}
}

func TestUnwrapPreservesOrder(t *testing.T) {
	t.Parallel()

	f := MustParse(`<h1>a<span>b<i>c</i>d</span>e</h1>`)
	span := f.Nodes()[0].FirstChild.NextSibling
	Unwrap(span)

	if got := f.String(); got != `<h1>ab<i>c</i>de</h1>` {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestInsertBeforeAndRemove(t *testing.T) {
	t.Parallel()

	f := MustParse(`<ul><li>last</li></ul>`)
	ul := f.Nodes()[0]
	last := ul.FirstChild
	first := Clone(last)
	first.FirstChild.Data = "first"
	InsertBefore(last, first, Text(" "))
	if got := f.String(); got != `<ul><li>first</li> <li>last</li></ul>` {
		t.Fatalf("unexpected output %q", got)
	}

	Remove(last)
	Remove(last)
	if got := f.String(); got != `<ul><li>first</li> </ul>` {
		t.Fatalf("unexpected output after remove %q", got)
	}
}

func TestParseInUsesContext(t *testing.T) {
	t.Parallel()

	tr := &html.Node{Type: html.ElementNode, Data: "tbody"}
	nodes, err := ParseIn(tr, `<tr><td>1</td></tr>`)
	if err != nil {
		t.Fatalf("ParseIn returned error: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Data != "tr" {
		t.Fatalf("expected a single tr node, got %#v", nodes)
	}

	custom := &html.Node{Type: html.ElementNode, Data: "jv-if"}
	nodes, err = ParseIn(custom, `<b>hi</b>`)
	if err != nil {
		t.Fatalf("ParseIn returned error for custom context: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Data != "b" {
		t.Fatalf("expected bold node, got %#v", nodes)
	}
}

func TestAttributes(t *testing.T) {
	t.Parallel()

	f := MustParse(`<input name="a" disabled>`)
	input := f.Nodes()[0]

	if v, ok := Attr(input, "name"); !ok || v != "a" {
		t.Fatalf("expected name=a, got %q (ok=%v)", v, ok)
	}
	if !HasAttr(input, "disabled") {
		t.Fatalf("expected disabled attribute")
	}
	RemoveAttr(input, "disabled")
	SetAttr(input, "value", "v")
	if got := f.String(); got != `<input name="a" value="v"/>` {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestTextContentAndWalk(t *testing.T) {
	t.Parallel()

	f := MustParse(`<p>a<b>b</b><i>skip</i>c</p>`)
	if got := TextContent(f.Root()); got != "abskipc" {
		t.Fatalf("unexpected text content %q", got)
	}

	var seen []string
	Walk(f.Root(), func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			seen = append(seen, n.Data)
		}
		return n.Data != "i"
	})
	if len(seen) != 3 || seen[2] != "i" {
		t.Fatalf("unexpected walk order %v", seen)
	}
}

func TestAppendTo(t *testing.T) {
	t.Parallel()

	host := MustParse(`<div></div>`)
	div := host.Nodes()[0]
	MustParse(`<p>1</p><p>2</p>`).AppendTo(div)
	if got := host.String(); got != `<div><p>1</p><p>2</p></div>` {
		t.Fatalf("unexpected output %q", got)
	}
}
