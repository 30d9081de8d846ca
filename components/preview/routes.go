package preview

import (
	"errors"
	"net/http"
	"path"
	"strings"
)

// ErrNoMux is returned when routes are mounted on a nil mux.
var ErrNoMux = errors.New("preview: mux required")

// Mux accepts the render handler. *http.ServeMux satisfies it.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Endpoint is the path the render handler answers on below basePath,
// e.g. "/_" + "/render".
func Endpoint(basePath string, fns ...OptionFn) string {
	return joinRoute(basePath, NewOptions(fns...).RoutePath)
}

// Mount installs the render handler on mux and returns its pattern.
func Mount(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return MountWithOptions(mux, basePath, NewOptions(fns...))
}

// MountWithOptions is Mount for an already assembled Options value.
func MountWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", ErrNoMux
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	pattern := joinRoute(basePath, opts.RoutePath)
	mux.Handle(pattern, HandlerWithOptions(opts))
	opts.Logger.Debug("preview endpoint mounted", "pattern", pattern)
	return pattern, nil
}

func joinRoute(basePath, routePath string) string {
	return path.Join("/", strings.TrimSpace(basePath), strings.TrimSpace(routePath))
}
