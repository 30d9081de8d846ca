package scope

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestResolveNestedPath(t *testing.T) {
	t.Parallel()

	ctx := Map{
		"comment": map[string]any{
			"author": "Ann",
			"when":   "2024-01-02T10:00:00Z",
		},
	}

	got, ok := Resolve(ctx, "comment.author")
	if !ok {
		t.Fatalf("expected comment.author to resolve")
	}
	if got != "Ann" {
		t.Fatalf("expected Ann, got %#v", got)
	}

	again, _ := Resolve(ctx, "comment.author")
	if again != got {
		t.Fatalf("expected repeated resolution to be stable, got %#v then %#v", got, again)
	}
}

func TestResolveEmptyPathReturnsContext(t *testing.T) {
	t.Parallel()

	ctx := Map{"a": 1}
	got, ok := Resolve(ctx, "")
	if !ok {
		t.Fatalf("expected empty path to resolve")
	}
	if _, isMap := got.(Map); !isMap {
		t.Fatalf("expected the context itself, got %#v", got)
	}
}

func TestResolveSequenceIndex(t *testing.T) {
	t.Parallel()

	ctx := Map{
		"comments": []any{
			map[string]any{"author": "Ann"},
			map[string]any{"author": "Bob"},
		},
		"tags": []string{"go", "html"},
	}

	cases := []struct {
		path string
		want any
		ok   bool
	}{
		{path: "comments.1.author", want: "Bob", ok: true},
		{path: "comments.0.author", want: "Ann", ok: true},
		{path: "comments.2.author", ok: false},
		{path: "comments.-1", ok: false},
		{path: "comments.length", want: 2, ok: true},
		{path: "tags.1", want: "html", ok: true},
		{path: "tags.length", want: 2, ok: true},
		{path: "comments.author", ok: false},
		{path: "missing.author", ok: false},
		{path: "comments..author", ok: false},
	}

	for _, tc := range cases {
		got, ok := Resolve(ctx, tc.path)
		if ok != tc.ok {
			t.Fatalf("%s: expected ok=%v, got %v (%#v)", tc.path, tc.ok, ok, got)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("%s: expected %#v, got %#v", tc.path, tc.want, got)
		}
	}
}

func TestResolveStructFields(t *testing.T) {
	t.Parallel()

	type author struct {
		Name string
	}
	type comment struct {
		Author *author
		hidden string
	}

	ctx := Map{"comment": comment{Author: &author{Name: "Ann"}, hidden: "x"}}

	got, ok := Resolve(ctx, "comment.Author.Name")
	if !ok || got != "Ann" {
		t.Fatalf("expected Ann, got %#v (ok=%v)", got, ok)
	}
	if _, ok := Resolve(ctx, "comment.hidden"); ok {
		t.Fatalf("expected unexported field to be unresolvable")
	}
}

func TestDeriveShadowsWithoutMutatingParent(t *testing.T) {
	t.Parallel()

	parent := Map{"item": "outer", "title": "Thread"}
	first := Derive(parent, "item", "a")
	second := Derive(parent, "item", "b")
	nested := With(first, Binding{Name: "item", Value: "inner"}, Binding{Name: "i", Value: "0"})

	check := func(ctx Context, path string, want any) {
		t.Helper()
		got, ok := Resolve(ctx, path)
		if !ok || got != want {
			t.Fatalf("%s: expected %#v, got %#v (ok=%v)", path, want, got, ok)
		}
	}

	check(first, "item", "a")
	check(second, "item", "b")
	check(nested, "item", "inner")
	check(nested, "i", "0")
	check(nested, "title", "Thread")
	check(parent, "item", "outer")

	if _, ok := parent["i"]; ok {
		t.Fatalf("expected parent to stay untouched")
	}
}

type label string

type flag bool

func (f flag) Truthy() bool { return bool(f) }

func TestTruthy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value any
		ok    bool
		want  bool
	}{
		{name: "undefined", value: nil, ok: false, want: false},
		{name: "nil", value: nil, ok: true, want: false},
		{name: "false", value: false, ok: true, want: false},
		{name: "true", value: true, ok: true, want: true},
		{name: "empty string", value: "", ok: true, want: false},
		{name: "string", value: "x", ok: true, want: true},
		{name: "blank string", value: " ", ok: true, want: true},
		{name: "named blank string", value: label("\t"), ok: true, want: true},
		{name: "truther false", value: flag(false), ok: true, want: false},
		{name: "truther true", value: flag(true), ok: true, want: true},
		{name: "zero", value: 0, ok: true, want: false},
		{name: "zero uint", value: uint8(0), ok: true, want: false},
		{name: "number", value: 3.5, ok: true, want: true},
		{name: "empty slice", value: []any{}, ok: true, want: false},
		{name: "typed slice", value: []string{"a"}, ok: true, want: true},
		{name: "empty map", value: map[string]any{}, ok: true, want: false},
		{name: "map", value: Map{"a": 1}, ok: true, want: true},
		{name: "zero time", value: time.Time{}, ok: true, want: false},
	}

	for _, tc := range cases {
		if got := Truthy(tc.value, tc.ok); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value any
		want  string
	}{
		{value: nil, want: ""},
		{value: "text", want: "text"},
		{value: true, want: "true"},
		{value: 3, want: "3"},
		{value: float64(3), want: "3"},
		{value: 2.5, want: "2.5"},
		{value: uint16(7), want: "7"},
		{value: []any{"a"}, want: ""},
		{value: Map{"a": "b"}, want: ""},
		{value: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), want: "2024-01-02T10:00:00Z"},
	}

	for _, tc := range cases {
		if got := String(tc.value); got != tc.want {
			t.Fatalf("String(%#v): expected %q, got %q", tc.value, tc.want, got)
		}
	}
}

func TestEntries(t *testing.T) {
	t.Parallel()

	seq, ok := Entries([]any{"a", "b", "c"})
	if !ok {
		t.Fatalf("expected slice to be iterable")
	}
	want := []Entry{{Key: "0", Value: "a"}, {Key: "1", Value: "b"}, {Key: "2", Value: "c"}}
	if diff := cmp.Diff(want, seq); diff != "" {
		t.Fatalf("sequence entries mismatch (-want +got):\n%s", diff)
	}

	mapped, ok := Entries(map[string]int{"b": 2, "a": 1})
	if !ok {
		t.Fatalf("expected typed map to be iterable")
	}
	wantMapped := []Entry{{Key: "a", Value: 1}, {Key: "b", Value: 2}}
	if diff := cmp.Diff(wantMapped, mapped); diff != "" {
		t.Fatalf("map entries mismatch (-want +got):\n%s", diff)
	}

	for _, value := range []any{nil, "abc", 3, true} {
		if _, ok := Entries(value); ok {
			t.Fatalf("expected %#v to be non-iterable", value)
		}
	}
}

func TestFromValue(t *testing.T) {
	t.Parallel()

	type comment struct {
		Author string `json:"author"`
		Votes  int    `json:"votes"`
	}

	ctx, err := FromValue(struct {
		Comments []comment `json:"comments"`
	}{Comments: []comment{{Author: "Ann", Votes: 2}}})
	if err != nil {
		t.Fatalf("FromValue returned error: %v", err)
	}

	got, ok := Resolve(ctx, "comments.0.author")
	if !ok || got != "Ann" {
		t.Fatalf("expected Ann, got %#v (ok=%v)", got, ok)
	}
	if votes, _ := Resolve(ctx, "comments.0.votes"); String(votes) != "2" {
		t.Fatalf("expected votes to render as 2, got %q", String(votes))
	}

	if _, err := FromValue([]string{"not", "an", "object"}); err == nil {
		t.Fatalf("expected error for non-object data")
	}
}
