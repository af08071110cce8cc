package dataprocessing

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// minYear and maxYear bound what ParseFuzzyDate accepts. Sheet names and
// filenames contain plenty of short numbers ("Shift 2", "Line 3") that the
// lenient parser would otherwise happily turn into dates.
const (
	minYear = 1990
	maxYear = 2100
)

// ParseFuzzyDate extracts a calendar date from free-form text that may carry
// surrounding non-date tokens ("KPI dashboard 04 January 2024", "Shift A
// 2024-01-03"). It first tries the whole trimmed string, then contiguous
// token windows from longest to shortest. The returned time is truncated to
// date precision in UTC.
func ParseFuzzyDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if t, ok := tryParseDate(s); ok {
		return t, true
	}

	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ',' || r == ';' || r == '_'
	})
	if len(tokens) < 2 {
		return time.Time{}, false
	}

	// Longest windows first so "04 January 2024" wins over the bare "2024".
	for size := len(tokens); size >= 1; size-- {
		for start := 0; start+size <= len(tokens); start++ {
			candidate := strings.Join(tokens[start:start+size], " ")
			if t, ok := tryParseDate(candidate); ok {
				return t, true
			}
		}
	}

	return time.Time{}, false
}

// tryParseDate runs the lenient parser on a single candidate string and
// rejects implausible results.
func tryParseDate(s string) (time.Time, bool) {
	if !containsDigit(s) {
		return time.Time{}, false
	}
	// A bare short number ("3", "42", "120") is never a date on its own.
	if len(s) < 4 && isDigits(s) {
		return time.Time{}, false
	}

	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	if t.Year() < minYear || t.Year() > maxYear {
		return time.Time{}, false
	}
	return DateOnly(t), true
}

// DateOnly drops the time component, normalizing to midnight UTC so that
// date equality checks ignore both clock time and zone.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether two instants fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
