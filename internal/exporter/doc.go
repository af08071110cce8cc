// Package exporter renders assembled reports and trend series as CSV.
//
// CSVWriter is the low-level writer: headers, optional append, UTF-8 BOM
// for Excel compatibility, and a streaming variant for large outputs.
// ReportExporter sits on top and knows the shapes of the domain types:
// analysis reports, daily summaries, and trend series.
package exporter
