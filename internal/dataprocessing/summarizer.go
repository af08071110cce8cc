package dataprocessing

import (
	"errors"
	"log/slog"
	"strings"

	"kpicli/pkg/contracts/domain"
)

// ProductionTargetLabel is the Particulars value of the daily throughput row.
const ProductionTargetLabel = "Production target"

// EquipmentLabels are the line items tracked for per-line OEE. The daily
// files reuse these labels for both throughput and OEE rows; the two are
// told apart only by the Standard < 1 rule below.
var EquipmentLabels = []string{"Chipper-I", "Chipper-II", "Drier", "Pellet-I", "Pellet-II"}

// ErrIncompleteSummary reports that at least one headline metric could not
// be computed. The summary still carries whatever was found; callers must
// check each metric's Valid flag rather than assume full population.
var ErrIncompleteSummary = errors.New("daily summary is incomplete")

// Summarizer computes headline metrics from daily records.
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a summarizer. A nil logger falls back to the
// default slog logger.
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger}
}

// Summarize computes the single-day summary for one record: production
// actual vs. standard from the "Production target" row and per-line OEE
// percentages. When any required row is absent or unparsable the summary is
// returned together with ErrIncompleteSummary; metrics are never silently
// defaulted.
func (s *Summarizer) Summarize(rec domain.DailyRecord) (*domain.DailySummary, error) {
	summary := &domain.DailySummary{
		Date:       rec.Date,
		OEEPercent: make(map[string]domain.Metric, len(EquipmentLabels)),
	}

	if item, ok := findItem(rec.Items, ProductionTargetLabel, nil); ok {
		summary.ProductionActual = item.Actual
		summary.ProductionStandard = item.Standard
	} else {
		s.logger.Warn("production target row missing",
			slog.String("date", rec.Date.Format("2006-01-02")),
			slog.String("source", rec.Source))
	}

	if summary.ProductionActual.Valid && summary.ProductionStandard.Valid && summary.ProductionStandard.Value != 0 {
		variance := (summary.ProductionActual.Value - summary.ProductionStandard.Value) /
			summary.ProductionStandard.Value * 100
		summary.VariancePercent = domain.Num(variance)
	}

	for _, label := range EquipmentLabels {
		item, ok := findItem(rec.Items, label, isOEERow)
		if !ok || !item.Actual.Valid {
			summary.OEEPercent[label] = domain.Missing
			continue
		}
		summary.OEEPercent[label] = domain.Num(item.Actual.Value * 100)
	}

	if !summary.Complete() {
		return summary, ErrIncompleteSummary
	}
	return summary, nil
}

// isOEERow is the content-based disambiguation rule inherited from the
// source files: OEE rows share their equipment label with throughput rows
// and are distinguished only by a standard value under 1 (a fraction, not a
// tonnage). Documented convention, not a structural guarantee.
func isOEERow(item domain.LineItem) bool {
	return item.Standard.Valid && item.Standard.Value < 1
}

// findItem returns the first line item whose Particulars equals label
// (case-insensitive, trimmed) and that passes the optional filter.
func findItem(items []domain.LineItem, label string, filter func(domain.LineItem) bool) (domain.LineItem, bool) {
	for _, item := range items {
		if !strings.EqualFold(strings.TrimSpace(item.Particulars), label) {
			continue
		}
		if filter != nil && !filter(item) {
			continue
		}
		return item, true
	}
	return domain.LineItem{}, false
}
