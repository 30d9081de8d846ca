package preview

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestEndpoint(t *testing.T) {
	cases := []struct {
		base, route, want string
	}{
		{"", "", "/render"},
		{"/", "/render", "/render"},
		{"_", "render", "/_/render"},
		{"/comments/_/", "/render", "/comments/_/render"},
		{" /api ", "preview/", "/api/preview"},
	}
	for _, tc := range cases {
		if got := Endpoint(tc.base, WithRoutePath(tc.route)); got != tc.want {
			t.Fatalf("Endpoint(%q, %q): expected %q, got %q", tc.base, tc.route, tc.want, got)
		}
	}
}

func TestComponentMount(t *testing.T) {
	mux := http.NewServeMux()
	component := New()
	pattern, err := component.Mount(mux, "/_")
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if pattern != "/_/render" || component.Endpoint("/_") != pattern {
		t.Fatalf("unexpected pattern %q", pattern)
	}

	req := httptest.NewRequest(http.MethodPost, "/_/render", strings.NewReader(`{"Text":"*hi*"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `<em>hi</em>`) {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}

	rendered, err := component.Render("*hi*")
	if err != nil || !strings.Contains(rendered, "<em>hi</em>") {
		t.Fatalf("unexpected direct render %q (%v)", rendered, err)
	}
}

func TestMountRequiresMux(t *testing.T) {
	if _, err := Mount(nil, "/"); !errors.Is(err, ErrNoMux) {
		t.Fatalf("expected ErrNoMux, got %v", err)
	}
	if _, err := New().Mount(nil, "/"); !errors.Is(err, ErrNoMux) {
		t.Fatalf("expected ErrNoMux from component, got %v", err)
	}
}

func TestMountWithOptionsServesCustomRoute(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := MountWithOptions(mux, "/api", NewOptions(WithRoutePath("md")))
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, pattern, strings.NewReader(`{"Text":"x"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if pattern != "/api/md" || rec.Code != http.StatusOK {
		t.Fatalf("unexpected pattern %q or status %d", pattern, rec.Code)
	}
}
