package locale

import (
	"fmt"
	"time"
)

var monthNames = map[Language][12]string{
	English: {"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	Spanish: {"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "setiembre", "octubre", "noviembre", "diciembre"},
	Galician: {"xaneiro", "febreiro", "marzo", "abril", "maio", "xuño",
		"xullo", "agosto", "setembro", "outubro", "novembro", "decembro"},
}

// FormatDate writes t the way comment bylines show it, e.g.
// "January 2, 2024 at 10:00" or "2 de enero de 2024 a las 10:00".
func FormatDate(lang Language, t time.Time) string {
	months, ok := monthNames[lang]
	if !ok {
		lang = English
		months = monthNames[English]
	}
	month := months[t.Month()-1]
	clock := fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())

	switch lang {
	case Spanish:
		return fmt.Sprintf("%d de %s de %d a las %s", t.Day(), month, t.Year(), clock)
	case Galician:
		return fmt.Sprintf("%d de %s de %d ás %s", t.Day(), month, t.Year(), clock)
	default:
		return fmt.Sprintf("%s %d, %d at %s", month, t.Day(), t.Year(), clock)
	}
}

// DateFormatter returns a formatter for lang that converts dates into loc
// before formatting. A nil loc means UTC. The result plugs into
// engine.WithDateFormatter.
func DateFormatter(lang Language, loc *time.Location) func(time.Time) string {
	if loc == nil {
		loc = time.UTC
	}
	return func(t time.Time) string {
		return FormatDate(lang, t.In(loc))
	}
}
