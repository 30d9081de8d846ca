package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-domtmpl/pkg/dom"
	"github.com/goliatone/go-domtmpl/pkg/engine"
	"github.com/goliatone/go-domtmpl/pkg/locale"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint HTML templates for malformed directives. Without paths the bundled templates are linted.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	e := engine.New()

	var violations []violation
	if paths := flag.Args(); len(paths) > 0 {
		for _, path := range paths {
			linted, err := lintFile(e, path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
				os.Exit(1)
			}
			violations = append(violations, linted...)
		}
	} else {
		for _, lang := range locale.Supported() {
			for name, src := range locale.Templates(lang) {
				linted, err := lintSource(e, locale.TemplateFile(name, lang), src)
				if err != nil {
					fmt.Fprintf(os.Stderr, "lint %s: %v\n", name, err)
					os.Exit(1)
				}
				violations = append(violations, linted...)
			}
		}
	}

	if report(os.Stderr, violations) > 0 {
		os.Exit(1)
	}
}

func lintFile(e *engine.Engine, path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return lintSource(e, path, string(raw))
}

func lintSource(e *engine.Engine, file, src string) ([]violation, error) {
	frag, err := dom.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	var result []violation
	for _, issue := range e.Lint(frag.Root()) {
		result = append(result, violation{
			file:     file,
			location: issue.Location,
			message:  issue.Message,
		})
	}
	return result, nil
}

func report(w io.Writer, violations []violation) int {
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(w, "%s: %s -> %s\n", v.file, v.location, v.message)
	}
	return len(violations)
}
