package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-domtmpl/pkg/dom"
	"github.com/goliatone/go-domtmpl/pkg/engine"
	"github.com/goliatone/go-domtmpl/pkg/scope"
)

// MustParse parses a template fragment or fails the test.
func MustParse(t *testing.T, src string) *dom.Fragment {
	t.Helper()

	frag, err := dom.Parse(src)
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	return frag
}

// LoadContext reads a JSON or YAML data fixture into a scope.Map.
func LoadContext(path string) (scope.Map, error) {
	if path == "" {
		return nil, errors.New("testsupport: context path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read context: %w", err)
	}

	var raw any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("testsupport: unmarshal yaml context: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("testsupport: unmarshal json context: %w", err)
		}
	}
	ctx, err := scope.FromValue(raw)
	if err != nil {
		return nil, fmt.Errorf("testsupport: normalise context: %w", err)
	}
	return ctx, nil
}

// MustLoadContext is LoadContext for tests.
func MustLoadContext(t *testing.T, path string) scope.Map {
	t.Helper()

	ctx, err := LoadContext(path)
	if err != nil {
		t.Fatalf("load context: %v", err)
	}
	return ctx
}

// RenderString serialises a fragment or fails the test.
func RenderString(t *testing.T, frag *dom.Fragment) string {
	t.Helper()

	var buf bytes.Buffer
	if err := frag.Render(&buf); err != nil {
		t.Fatalf("render fragment: %v", err)
	}
	return buf.String()
}

// AssertNoMarkers fails the test when frag still holds directive markers.
func AssertNoMarkers(t *testing.T, e *engine.Engine, frag *dom.Fragment) {
	t.Helper()

	residual := e.Residual(frag.Root())
	if len(residual) == 0 {
		return
	}
	var names []string
	for _, n := range residual {
		names = append(names, describe(n))
	}
	t.Fatalf("unexpected directive markers after render: %s", strings.Join(names, ", "))
}

func describe(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return n.Data
	}
	return buf.String()
}

// AssertGolden compares got against the golden file at path, rewriting the
// file instead when UPDATE_GOLDENS is set.
func AssertGolden(t *testing.T, path string, got string) {
	t.Helper()

	if WriteMaybeGolden(t, path, []byte(got)) {
		return
	}
	want := strings.TrimRight(MustReadGoldenString(t, path), "\n")
	if diff := CompareGolden(want, strings.TrimRight(got, "\n")); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// CaptureRender executes a render function writing to an io.Writer and
// returns what it wrote.
func CaptureRender(t *testing.T, render func(io.Writer) error) string {
	t.Helper()

	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		t.Fatalf("render template: %v", err)
	}
	return buf.String()
}
