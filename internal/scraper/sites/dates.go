package sites

import (
	"strings"
	"time"
)

// OutputDateFormat is the date layout used across article records.
const OutputDateFormat = "02.01.2006"

// Go accepts an optional fractional second after the seconds field even when
// the layout omits it, so the datetime layouts below also cover values like
// 2025-11-10T19:24:46.000.
var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
}

// NormalizeDate converts the date formats seen across the supported sites to
// DD.MM.YYYY. Input that matches no layout is dropped, so stray page text
// never ends up in the published field.
func NormalizeDate(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	cleaned := strings.TrimSuffix(trimmed, "Z")
	cleaned = stripTimezone(cleaned)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format(OutputDateFormat)
		}
	}

	return ""
}

// stripTimezone removes a trailing numeric offset such as +08:00 or -08:00.
// The negative form is only an offset when it follows the time portion, so a
// trailing -NN:NN segment is required before cutting.
func stripTimezone(s string) string {
	if i := strings.IndexByte(s, '+'); i >= 0 {
		return s[:i]
	}

	if strings.Count(s, "-") > 2 {
		if i := strings.LastIndexByte(s, '-'); i >= 0 && strings.Contains(s[i:], ":") {
			return s[:i]
		}
	}

	return s
}
