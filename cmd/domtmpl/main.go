// Command domtmpl renders an HTML template against a JSON or YAML data file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-domtmpl/pkg/engine"
	"github.com/goliatone/go-domtmpl/pkg/locale"
	"github.com/goliatone/go-domtmpl/pkg/scope"
	"github.com/goliatone/go-domtmpl/pkg/source"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("domtmpl", flag.ContinueOnError)
	flags.SetOutput(stderr)
	templatePath := flags.String("template", "", "template file to render")
	name := flags.String("name", locale.TemplateComments, "bundled template to render when -template is empty")
	dataPath := flags.String("data", "", "JSON or YAML data file (empty context if unset)")
	lang := flags.String("lang", "en", "document language tag (en, es, gl_ES, ...)")
	dialect := flags.String("dialect", "both", "directive notation: jv, jtvar or both")
	tz := flags.String("tz", "UTC", "IANA zone dates are displayed in")
	output := flags.String("output", "", "output file (stdout if empty)")
	logLevel := flags.String("log-level", "warn", "log level: debug, info, warn, error")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(stderr, "invalid -log-level %q\n", *logLevel)
		return 2
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	syntax, err := parseDialect(*dialect)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	loc, err := time.LoadLocation(*tz)
	if err != nil {
		fmt.Fprintf(stderr, "invalid -tz %q: %v\n", *tz, err)
		return 2
	}
	language := locale.Resolve(*lang)

	set, templateName := templateSource(*templatePath, *name, language, logger)
	master, err := set.Fragment(templateName)
	if err != nil {
		logger.Error("load template", "name", templateName, "error", err)
		return 1
	}

	data, err := loadData(*dataPath)
	if err != nil {
		logger.Error("load data", "path", *dataPath, "error", err)
		return 1
	}

	e := engine.New(
		engine.WithSyntax(syntax),
		engine.WithDateFormatter(locale.DateFormatter(language, loc)),
		engine.WithLogger(logger),
	)

	out := stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			logger.Error("create output", "path", *output, "error", err)
			return 1
		}
		defer f.Close()
		out = f
	}
	if err := e.Render(out, master, data); err != nil {
		logger.Error("render", "error", err)
		return 1
	}
	if *output != "" {
		logger.Info("template written", "path", *output)
	} else {
		fmt.Fprintln(out)
	}
	return 0
}

func parseDialect(raw string) (engine.Syntax, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "jv":
		return engine.NewDirectives(engine.DefaultTags()), nil
	case "jtvar":
		return engine.Markers{}, nil
	case "both", "":
		return engine.Combined(engine.NewDirectives(engine.DefaultTags()), engine.Markers{}), nil
	}
	return nil, fmt.Errorf("invalid -dialect %q: want jv, jtvar or both", raw)
}

func templateSource(path, name string, lang locale.Language, logger *slog.Logger) (*source.Set, string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return source.New(
			source.WithStrings(locale.Templates(lang)),
			source.WithLogger(logger),
		), name
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(filepath.Base(path), ext)
	opts := []source.Option{
		source.WithFS(os.DirFS(filepath.Dir(path))),
		source.WithLogger(logger),
	}
	if ext != "" {
		opts = append(opts, source.WithExtension(ext))
	}
	return source.New(opts...), base
}

func loadData(path string) (scope.Context, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return scope.Map{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}

	var decoded any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &decoded); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	}
	ctx, err := scope.FromValue(decoded)
	if err != nil {
		return nil, fmt.Errorf("normalise data: %w", err)
	}
	return ctx, nil
}
