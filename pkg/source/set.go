package source

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-domtmpl/pkg/dom"
)

// ErrNotFound reports a template name missing from every configured source.
var ErrNotFound = errors.New("source: template not found")

// Option configures a Set before construction.
type Option func(*config)

type config struct {
	files     fs.FS
	extension string
	strings   map[string]string
	globals   map[string]any
	logger    *slog.Logger
}

// WithFS loads templates from files. Names are resolved as name+extension.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithExtension overrides the default ".html" template extension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithStrings registers in-memory template sources keyed by name. Entries
// take precedence over files with the same name.
func WithStrings(table map[string]string) Option {
	return func(cfg *config) {
		if len(table) == 0 {
			return
		}
		if cfg.strings == nil {
			cfg.strings = make(map[string]string, len(table))
		}
		for name, src := range table {
			cfg.strings[strings.TrimSpace(name)] = src
		}
	}
}

// WithGlobals seeds values expanded into every source with pongo2 syntax
// ({{ site }}) before the markup is parsed.
func WithGlobals(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// WithLogger sets the logger used to report cache loads.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Set caches parsed master templates.
type Set struct {
	mu sync.RWMutex

	files     fs.FS
	extension string
	strings   map[string]string
	expander  *pongo2.TemplateSet
	logger    *slog.Logger
	masters   map[string]*dom.Fragment
}

var emptyFS embed.FS

// New constructs a Set using the provided options.
func New(options ...Option) *Set {
	cfg := &config{
		extension: ".html",
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	set := &Set{
		files:     cfg.files,
		extension: cfg.extension,
		strings:   cfg.strings,
		logger:    cfg.logger,
		masters:   make(map[string]*dom.Fragment),
	}
	if len(cfg.globals) > 0 {
		files := cfg.files
		if files == nil {
			files = emptyFS
		}
		set.expander = pongo2.NewSet("domtmpl", pongo2.NewFSLoader(files))
		set.expander.Globals = pongo2.Context(cfg.globals)
	}
	return set
}

// Fragment returns a fresh clone of the named master, parsing and caching it
// on first use.
func (s *Set) Fragment(name string) (*dom.Fragment, error) {
	master, err := s.master(strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	return master.Clone(), nil
}

// Add parses src and stores it under name, replacing any cached master.
func (s *Set) Add(name, src string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("source: template name required")
	}
	master, err := s.parse(name, src)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.masters[name] = master
	return nil
}

// Names lists the templates parsed so far, sorted.
func (s *Set) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.masters))
	for name := range s.masters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Set) master(name string) (*dom.Fragment, error) {
	s.mu.RLock()
	if master, ok := s.masters[name]; ok {
		s.mu.RUnlock()
		return master, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if master, ok := s.masters[name]; ok {
		return master, nil
	}

	src, err := s.read(name)
	if err != nil {
		return nil, err
	}
	master, err := s.parse(name, src)
	if err != nil {
		return nil, err
	}
	s.masters[name] = master
	s.logger.Debug("template cached", "name", name)
	return master, nil
}

func (s *Set) read(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrNotFound)
	}
	if src, ok := s.strings[name]; ok {
		return src, nil
	}
	if s.files == nil {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	path := name
	if !strings.HasSuffix(path, s.extension) {
		path += s.extension
	}
	data, err := fs.ReadFile(s.files, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return "", fmt.Errorf("source: read template %q: %w", path, err)
	}
	return string(data), nil
}

func (s *Set) parse(name, src string) (*dom.Fragment, error) {
	if s.expander != nil {
		tmpl, err := s.expander.FromString(src)
		if err != nil {
			return nil, fmt.Errorf("source: parse globals in %q: %w", name, err)
		}
		expanded, err := tmpl.Execute(pongo2.Context{})
		if err != nil {
			return nil, fmt.Errorf("source: expand globals in %q: %w", name, err)
		}
		src = expanded
	}

	master, err := dom.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("source: parse template %q: %w", name, err)
	}
	return master, nil
}
