package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// Template names bundled with the package.
const (
	TemplateComments = "comments"
)

// TemplatesFS exposes the bundled template sources. Files are named
// <template>.<language>.html.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// TemplateFile returns the file name holding name for lang.
func TemplateFile(name string, lang Language) string {
	return fmt.Sprintf("%s.%s.html", strings.TrimSpace(name), lang)
}

// Template returns the source of name for lang, falling back to English.
func Template(lang Language, name string) (string, bool) {
	for _, candidate := range []Language{lang, English} {
		data, err := fs.ReadFile(embeddedTemplates, path.Join("templates", TemplateFile(name, candidate)))
		if err == nil {
			return string(data), true
		}
	}
	return "", false
}

// Templates returns the string table of every bundled template for lang,
// keyed by template name.
func Templates(lang Language) map[string]string {
	out := make(map[string]string)
	entries, err := fs.ReadDir(embeddedTemplates, "templates")
	if err != nil {
		return out
	}
	for _, entry := range entries {
		name, _, ok := strings.Cut(entry.Name(), ".")
		if !ok {
			continue
		}
		if _, seen := out[name]; seen {
			continue
		}
		if src, ok := Template(lang, name); ok {
			out[name] = src
		}
	}
	return out
}
