// Package files handles on-disk discovery and management of input files:
// uploaded Excel workbooks in the uploads directory and daily production
// CSVs in the data directory.
package files
