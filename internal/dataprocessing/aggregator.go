package dataprocessing

import (
	"log/slog"
	"time"

	"kpicli/pkg/contracts/domain"
)

// Aggregate concatenates the records in [from, to] row-wise and computes the
// trend series for charting: OEE percentage per equipment line over date,
// and daily production actual vs. standard. Empty filtered sets are a valid
// "no data for range" outcome; the report is returned with empty series and
// the caller decides how to surface it.
func Aggregate(records domain.RecordCollection, from, to time.Time, logger *slog.Logger) *domain.TrendReport {
	if logger == nil {
		logger = slog.Default()
	}

	from, to = DateOnly(from), DateOnly(to)
	window := records.Range(from, to)

	report := &domain.TrendReport{From: from, To: to}

	oee := make(map[string][]domain.TrendPoint, len(EquipmentLabels))
	for _, rec := range window {
		for _, label := range EquipmentLabels {
			item, ok := findItem(rec.Items, label, isOEERow)
			if !ok || !item.Actual.Valid {
				continue
			}
			oee[label] = append(oee[label], domain.TrendPoint{
				Date:  rec.Date,
				Value: item.Actual.Value * 100,
			})
		}

		if item, ok := findItem(rec.Items, ProductionTargetLabel, nil); ok {
			report.Production = append(report.Production, domain.ProductionTrendPoint{
				Date:     rec.Date,
				Actual:   item.Actual,
				Standard: item.Standard,
			})
		}
	}

	// Fixed label order keeps series ordering reproducible across runs.
	for _, label := range EquipmentLabels {
		if points := oee[label]; len(points) > 0 {
			report.OEE = append(report.OEE, domain.OEETrend{Equipment: label, Points: points})
		}
	}

	logger.Info("trend report aggregated",
		slog.String("from", from.Format("2006-01-02")),
		slog.String("to", to.Format("2006-01-02")),
		slog.Int("records", len(window)),
		slog.Int("oee_series", len(report.OEE)),
		slog.Int("production_points", len(report.Production)))

	return report
}

// Empty reports whether a trend report has no plottable data.
func Empty(r *domain.TrendReport) bool {
	return r == nil || (len(r.OEE) == 0 && len(r.Production) == 0)
}
