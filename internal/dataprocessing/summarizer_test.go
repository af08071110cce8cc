package dataprocessing

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kpicli/pkg/contracts/domain"
)

func item(particulars string, standard, actual domain.Metric) domain.LineItem {
	return domain.LineItem{Particulars: particulars, Standard: standard, Actual: actual}
}

// fullDayRecord builds a record carrying a production target row plus a
// throughput row and an OEE row for every equipment line.
func fullDayRecord(date time.Time) domain.DailyRecord {
	items := []domain.LineItem{
		item(ProductionTargetLabel, domain.Num(500), domain.Num(523.4)),
	}
	for _, label := range EquipmentLabels {
		// Throughput row first: same label, tonnage-scale standard.
		items = append(items, item(label, domain.Num(60), domain.Num(58)))
		items = append(items, item(label, domain.Num(0.85), domain.Num(0.76)))
	}
	return domain.DailyRecord{Date: date, Source: "day.csv", Items: items}
}

func TestSummarize(t *testing.T) {
	date := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	summary, err := NewSummarizer(slog.Default()).Summarize(fullDayRecord(date))
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.True(t, summary.Complete())
	assert.Equal(t, domain.Num(523.4), summary.ProductionActual)
	assert.Equal(t, domain.Num(500), summary.ProductionStandard)

	require.True(t, summary.VariancePercent.Valid)
	assert.InDelta(t, 4.68, summary.VariancePercent.Value, 0.001)

	require.Len(t, summary.OEEPercent, len(EquipmentLabels))
	for _, label := range EquipmentLabels {
		m := summary.OEEPercent[label]
		require.True(t, m.Valid, "OEE missing for %s", label)
		assert.InDelta(t, 76.0, m.Value, 0.0001)
	}
}

// The OEE row shares its label with the throughput row; only Standard < 1
// identifies it. The throughput row (standard 60) must never be mistaken
// for the OEE fraction.
func TestSummarizeDisambiguatesOEERows(t *testing.T) {
	date := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	rec := domain.DailyRecord{
		Date: date,
		Items: []domain.LineItem{
			item(ProductionTargetLabel, domain.Num(500), domain.Num(500)),
			item("Pellet-I", domain.Num(60), domain.Num(58)),
			item("Pellet-I", domain.Num(0.85), domain.Num(0.9)),
		},
	}

	summary, err := NewSummarizer(slog.Default()).Summarize(rec)
	// Other equipment lines are absent, so the summary is incomplete, but
	// the Pellet-I metric itself must come from the fraction row.
	assert.ErrorIs(t, err, ErrIncompleteSummary)
	require.True(t, summary.OEEPercent["Pellet-I"].Valid)
	assert.InDelta(t, 90.0, summary.OEEPercent["Pellet-I"].Value, 0.0001)
	assert.False(t, summary.OEEPercent["Drier"].Valid)
}

func TestSummarizeMissingProductionTarget(t *testing.T) {
	rec := fullDayRecord(time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC))
	rec.Items = rec.Items[1:] // drop the production target row

	summary, err := NewSummarizer(slog.Default()).Summarize(rec)
	assert.ErrorIs(t, err, ErrIncompleteSummary)
	assert.False(t, summary.ProductionActual.Valid)
	assert.False(t, summary.ProductionStandard.Valid)
	assert.False(t, summary.VariancePercent.Valid)
	// OEE metrics are still populated; absence of one metric never blanks
	// the others.
	assert.True(t, summary.OEEPercent["Chipper-I"].Valid)
}

func TestSummarizeUnparsableActual(t *testing.T) {
	rec := fullDayRecord(time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC))
	rec.Items[0].Actual = domain.Missing

	summary, err := NewSummarizer(slog.Default()).Summarize(rec)
	assert.ErrorIs(t, err, ErrIncompleteSummary)
	assert.False(t, summary.ProductionActual.Valid)
	// Variance must not be computed against a substituted default.
	assert.False(t, summary.VariancePercent.Valid)
}

func TestSummarizeEmptyRecord(t *testing.T) {
	summary, err := NewSummarizer(slog.Default()).Summarize(domain.DailyRecord{
		Date: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrIncompleteSummary)
	assert.False(t, summary.Complete())
}
