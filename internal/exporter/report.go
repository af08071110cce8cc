package exporter

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"kpicli/pkg/contracts/domain"
)

// ReportExporter renders domain reports as CSV files under the reports dir.
type ReportExporter struct {
	csv *CSVWriter
}

// NewReportExporter creates a report exporter backed by the given CSV writer.
func NewReportExporter(csv *CSVWriter) *ReportExporter {
	return &ReportExporter{csv: csv}
}

// ReportRecords flattens an analysis report into CSV records matching
// domain.ReportColumns.
func ReportRecords(report *domain.AnalysisReport) [][]string {
	records := make([][]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		records = append(records, []string{
			strconv.Itoa(row.SerialNumber),
			row.Particulars,
			row.Actual,
			row.Remarks,
			row.Date,
		})
	}
	return records
}

// ExportReport writes the analysis report to the reports directory under its
// canonical file name and returns that name.
func (e *ReportExporter) ExportReport(report *domain.AnalysisReport) (string, error) {
	name := report.FileName()
	if err := e.csv.WriteSimpleCSV(name, domain.ReportColumns, ReportRecords(report)); err != nil {
		return "", fmt.Errorf("failed to export analysis report: %w", err)
	}
	return name, nil
}

// WriteReport streams the analysis report as CSV, BOM first. Used for HTTP
// downloads.
func WriteReport(out io.Writer, report *domain.AnalysisReport) error {
	return WriteTo(out, domain.ReportColumns, ReportRecords(report))
}

// trendColumns is the column set of the exported trend CSV, in order.
var trendColumns = []string{"Date", "Series", "Value"}

// TrendRecords flattens a trend report into long-format CSV records: one row
// per (date, series) observation. Equipment OEE series come first in report
// order, then production actual and target.
func TrendRecords(report *domain.TrendReport) [][]string {
	var records [][]string
	for _, trend := range report.OEE {
		for _, p := range trend.Points {
			records = append(records, []string{
				p.Date.Format("2006-01-02"),
				"OEE " + trend.Equipment,
				formatValue(p.Value),
			})
		}
	}
	for _, p := range report.Production {
		if p.Actual.Valid {
			records = append(records, []string{
				p.Date.Format("2006-01-02"),
				"Production Actual",
				formatValue(p.Actual.Value),
			})
		}
		if p.Standard.Valid {
			records = append(records, []string{
				p.Date.Format("2006-01-02"),
				"Production Target",
				formatValue(p.Standard.Value),
			})
		}
	}
	return records
}

// WriteTrends streams the trend report as long-format CSV, BOM first.
func WriteTrends(out io.Writer, report *domain.TrendReport) error {
	return WriteTo(out, trendColumns, TrendRecords(report))
}

// summaryColumns is the column set of the exported daily summary, in order.
var summaryColumns = []string{"Metric", "Value"}

// SummaryRecords flattens a daily summary into (metric, value) records.
// Missing metrics render as empty strings rather than zeros. Equipment OEE
// rows are sorted by label for stable output.
func SummaryRecords(summary *domain.DailySummary) [][]string {
	records := [][]string{
		{"Date", summary.Date.Format("2006-01-02")},
		{"Production Actual", formatMetric(summary.ProductionActual)},
		{"Production Target", formatMetric(summary.ProductionStandard)},
		{"Variance %", formatMetric(summary.VariancePercent)},
	}

	labels := make([]string, 0, len(summary.OEEPercent))
	for label := range summary.OEEPercent {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		records = append(records, []string{"OEE % " + label, formatMetric(summary.OEEPercent[label])})
	}
	return records
}

// WriteSummary streams the daily summary as CSV, BOM first.
func WriteSummary(out io.Writer, summary *domain.DailySummary) error {
	return WriteTo(out, summaryColumns, SummaryRecords(summary))
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatMetric(m domain.Metric) string {
	if !m.Valid {
		return ""
	}
	return formatValue(m.Value)
}
