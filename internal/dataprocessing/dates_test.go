package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFuzzyDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{
			name:  "day-month-year with dashes",
			input: "03-Jan-2024",
			want:  time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "spelled out month",
			input: "04 January 2024",
			want:  time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "iso date",
			input: "2024-03-14",
			want:  time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "date embedded in surrounding tokens",
			input: "KPI dashboard 04 January 2024 final",
			want:  time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "underscore separated filename stem",
			input: "production_2024-03-14",
			want:  time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "plain text",
			input: "Summary",
			ok:    false,
		},
		{
			name:  "short number is not a date",
			input: "Shift 2",
			ok:    false,
		},
		{
			name:  "empty string",
			input: "",
			ok:    false,
		},
		{
			name:  "whitespace only",
			input: "   ",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFuzzyDate(tt.input)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want), "want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseFuzzyDateDropsTimeComponent(t *testing.T) {
	got, ok := ParseFuzzyDate("2024-01-03 14:22:05")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), got)
}

func TestSameDate(t *testing.T) {
	morning := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 5, 1, 22, 30, 0, 0, time.UTC)
	nextDay := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDate(morning, evening))
	assert.False(t, SameDate(morning, nextDay))
}
