package source

import (
	"errors"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestFragmentReturnsFreshClones(t *testing.T) {
	t.Parallel()

	set := New(WithStrings(map[string]string{"greeting": "<p>Hello <jv>name</jv></p>"}))

	first, err := set.Fragment("greeting")
	if err != nil {
		t.Fatalf("fragment: %v", err)
	}
	first.Nodes()[0].FirstChild.Data = "Changed "

	second, err := set.Fragment("greeting")
	if err != nil {
		t.Fatalf("fragment: %v", err)
	}
	if got := second.String(); got != "<p>Hello <jv>name</jv></p>" {
		t.Fatalf("cached master was mutated: %q", got)
	}
	if diff := cmp.Diff([]string{"greeting"}, set.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestFragmentLoadsFromFS(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"list.tpl":  {Data: []byte("<ul><jv-for items=\"xs\" item=\"x\"><li><jv>x</jv></li></jv-for></ul>")},
		"other.tpl": {Data: []byte("<p>from fs</p>")},
	}
	set := New(
		WithFS(files),
		WithExtension("tpl"),
		WithStrings(map[string]string{"other": "<p>from table</p>"}),
	)

	list, err := set.Fragment("list")
	if err != nil {
		t.Fatalf("fragment: %v", err)
	}
	if got := list.String(); got != "<ul><jv-for items=\"xs\" item=\"x\"><li><jv>x</jv></li></jv-for></ul>" {
		t.Fatalf("unexpected list markup %q", got)
	}

	other, err := set.Fragment("other.tpl")
	if err != nil {
		t.Fatalf("fragment with extension: %v", err)
	}
	if got := other.String(); got != "<p>from fs</p>" {
		t.Fatalf("unexpected markup %q", got)
	}

	other, err = set.Fragment("other")
	if err != nil {
		t.Fatalf("fragment: %v", err)
	}
	if got := other.String(); got != "<p>from table</p>" {
		t.Fatalf("string table should win over files, got %q", got)
	}
}

func TestFragmentNotFound(t *testing.T) {
	t.Parallel()

	for _, set := range []*Set{New(), New(WithFS(fstest.MapFS{}))} {
		if _, err := set.Fragment("missing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	}
}

func TestGlobalsAreExpandedBeforeParsing(t *testing.T) {
	t.Parallel()

	set := New(
		WithStrings(map[string]string{"footer": `<footer><a href="{{ home }}">{{ site }}</a> <jv>year</jv></footer>`}),
		WithGlobals(map[string]any{"site": "Example", "home": "/"}),
	)
	frag, err := set.Fragment("footer")
	if err != nil {
		t.Fatalf("fragment: %v", err)
	}
	if got := frag.String(); got != `<footer><a href="/">Example</a> <jv>year</jv></footer>` {
		t.Fatalf("unexpected expanded markup %q", got)
	}
}

func TestAddReplacesMaster(t *testing.T) {
	t.Parallel()

	set := New(WithStrings(map[string]string{"a": "<p>one</p>"}))
	if _, err := set.Fragment("a"); err != nil {
		t.Fatalf("fragment: %v", err)
	}
	if err := set.Add("a", "<p>two</p>"); err != nil {
		t.Fatalf("add: %v", err)
	}
	frag, err := set.Fragment("a")
	if err != nil {
		t.Fatalf("fragment: %v", err)
	}
	if got := frag.String(); got != "<p>two</p>" {
		t.Fatalf("expected replaced master, got %q", got)
	}
	if err := set.Add(" ", "<p/>"); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestConcurrentFragmentCalls(t *testing.T) {
	t.Parallel()

	set := New(WithStrings(map[string]string{"p": "<p>x</p>"}))
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			frag, err := set.Fragment("p")
			if err != nil {
				t.Errorf("fragment: %v", err)
				return
			}
			if frag.String() != "<p>x</p>" {
				t.Errorf("unexpected markup %q", frag.String())
			}
		}()
	}
	wg.Wait()
}
