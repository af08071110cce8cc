// Package http exposes the KPI reporting pipelines over a chi-based JSON
// API: report generation and download for uploaded workbooks, daily
// summaries and trend series over the production CSV directory, plus
// health and metrics endpoints.
package http
