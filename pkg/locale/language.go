package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported base language code.
type Language string

const (
	English  Language = "en"
	Spanish  Language = "es"
	Galician Language = "gl"
)

var (
	supported = []Language{English, Spanish, Galician}
	matcher   = language.NewMatcher([]language.Tag{
		language.English,
		language.Spanish,
		language.Make("gl"),
	})
)

// Supported lists the languages with bundled tables, default first.
func Supported() []Language {
	return append([]Language(nil), supported...)
}

// Resolve maps a document language tag ("gl_ES", "es-419", "en") onto a
// supported language. Unknown or empty tags resolve to English.
func Resolve(tag string) Language {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	if tag == "" {
		return English
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return English
	}
	_, idx, confidence := matcher.Match(parsed)
	if confidence == language.No || idx < 0 || idx >= len(supported) {
		return English
	}
	return supported[idx]
}

// String implements fmt.Stringer.
func (l Language) String() string { return string(l) }
