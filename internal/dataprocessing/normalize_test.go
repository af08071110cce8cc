package dataprocessing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kpicli/pkg/contracts/domain"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		input string
		want  domain.Metric
	}{
		{"12.5 TPD", domain.Num(12.5)},
		{"12.5", domain.Num(12.5)},
		{"500", domain.Num(500)},
		{"  523.4 ", domain.Num(523.4)},
		{"-3.2%", domain.Num(-3.2)},
		{"0.85", domain.Num(0.85)},
		{"approx 480 min", domain.Num(480)},
		{"N/A", domain.Missing},
		{"-", domain.Missing},
		{"", domain.Missing},
		{"none", domain.Missing},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNumeric(tt.input))
		})
	}
}

// Normalization is idempotent: feeding a normalized value back through the
// parser yields the same metric.
func TestParseNumericIdempotent(t *testing.T) {
	for _, input := range []string{"12.5 TPD", "500", "-3.2%", "0.85"} {
		first := ParseNumeric(input)
		require.True(t, first.Valid)

		second := ParseNumeric(fmt.Sprintf("%g", first.Value))
		assert.Equal(t, first, second, "re-normalizing %q changed the value", input)
	}
}
