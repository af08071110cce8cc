// Package services orchestrates the processing pipelines behind the HTTP
// and CLI surfaces: report generation over uploaded workbooks, and daily
// summaries and trends over the production CSV directory.
package services
