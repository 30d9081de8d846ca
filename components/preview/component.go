package preview

import "net/http"

// Component serves markdown previews for the comment form. The handler is
// built once and shared by every mount.
type Component struct {
	opts    Options
	handler http.Handler
}

// New builds a component from the defaults plus fns.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	return &Component{opts: opts, handler: HandlerWithOptions(opts)}
}

// Options reports the resolved configuration.
func (c *Component) Options() Options {
	if c == nil {
		return NewOptions()
	}
	return c.opts
}

// Render converts text the same way the endpoint does.
func (c *Component) Render(text string) (string, error) {
	return c.Options().Renderer.Render(text)
}

// Handler is the POST endpoint taking and returning a Payload.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return c.handler
}

// Endpoint is the path the component answers on below basePath.
func (c *Component) Endpoint(basePath string) string {
	return joinRoute(basePath, c.Options().RoutePath)
}

// Mount installs the component handler on mux below basePath.
func (c *Component) Mount(mux Mux, basePath string) (string, error) {
	if mux == nil {
		return "", ErrNoMux
	}
	pattern := c.Endpoint(basePath)
	mux.Handle(pattern, c.Handler())
	return pattern, nil
}
