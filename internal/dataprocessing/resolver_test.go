package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// newTestWorkbook builds a workbook whose sheets carry the given names, in
// order.
func newTestWorkbook(t *testing.T, sheetNames ...string) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	require.NotEmpty(t, sheetNames)

	f.SetSheetName(f.GetSheetName(0), sheetNames[0])
	for _, name := range sheetNames[1:] {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
	}
	return f
}

func TestResolveSheet(t *testing.T) {
	f := newTestWorkbook(t, "03-Jan-2024", "04 January 2024", "notes")
	defer f.Close()

	tests := []struct {
		name   string
		target time.Time
		want   string
		ok     bool
	}{
		{
			name:   "dashed sheet name",
			target: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			want:   "03-Jan-2024",
			ok:     true,
		},
		{
			name:   "spelled out sheet name",
			target: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
			want:   "04 January 2024",
			ok:     true,
		},
		{
			name:   "no sheet for date",
			target: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveSheet(f, tt.target)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveSheetIgnoresTimeComponent(t *testing.T) {
	f := newTestWorkbook(t, "04 January 2024")
	defer f.Close()

	target := time.Date(2024, 1, 4, 18, 45, 0, 0, time.UTC)
	got, ok := ResolveSheet(f, target)
	require.True(t, ok)
	assert.Equal(t, "04 January 2024", got)
}

func TestResolveSheetFirstMatchWins(t *testing.T) {
	// Two sheets parse to the same date; workbook order decides.
	f := newTestWorkbook(t, "2024-01-03", "03-Jan-2024")
	defer f.Close()

	got, ok := ResolveSheet(f, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "2024-01-03", got)
}

func TestSheetDates(t *testing.T) {
	f := newTestWorkbook(t, "03-Jan-2024", "notes", "04 January 2024")
	defer f.Close()

	dates := SheetDates(f)
	require.Len(t, dates, 2)
	assert.Equal(t, "03-Jan-2024", dates[0].SheetName)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), dates[0].Date)
	assert.Equal(t, "04 January 2024", dates[1].SheetName)
	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), dates[1].Date)
}

func TestSheetDatesNoneParsable(t *testing.T) {
	f := newTestWorkbook(t, "Summary", "Overview")
	defer f.Close()

	assert.Empty(t, SheetDates(f))
}
