// Package dataprocessing implements the KPI extraction pipelines: resolving
// date-named workbook sheets, reading KPI cells at the fixed plant layout
// offsets, assembling the tidy analysis report, loading directories of daily
// production CSVs, and computing single-day summaries and date-range trend
// series.
//
// Every function here is a pure computation over its inputs plus the fixed
// layout and label tables; nothing holds state between calls.
package dataprocessing
