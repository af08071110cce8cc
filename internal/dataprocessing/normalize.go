package dataprocessing

import (
	"regexp"
	"strconv"
	"strings"

	"kpicli/pkg/contracts/domain"
)

// numberPattern matches the first decimal number in a cell, so units and
// other trailing text ("12.5 TPD", "480 min") do not break parsing.
var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// ParseNumeric normalizes a raw cell value to a numeric metric. The first
// decimal-number substring is parsed; anything without one ("N/A", "-",
// empty) becomes the missing-value marker. Applying it to already-clean
// numeric text is a no-op.
func ParseNumeric(s string) domain.Metric {
	match := numberPattern.FindString(strings.TrimSpace(s))
	if match == "" {
		return domain.Missing
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return domain.Missing
	}
	return domain.Num(v)
}
