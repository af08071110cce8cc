package services

import (
	"errors"

	"kpicli/internal/dataprocessing"
)

// Sentinel errors surfaced by the services. Pipeline-level sentinels are
// re-exported so transport code depends on one package.
var (
	// ErrWorkbookNotFound means the named workbook exists in neither the
	// uploads nor the data directory.
	ErrWorkbookNotFound = errors.New("workbook not found")

	// ErrNoRecords means no daily record carries the requested date.
	ErrNoRecords = errors.New("no records for the requested date")

	// ErrNoDataForRange means the range filter left nothing to aggregate.
	ErrNoDataForRange = errors.New("no data for the requested range")

	ErrNoSheetForDate    = dataprocessing.ErrNoSheetForDate
	ErrNoRowsExtracted   = dataprocessing.ErrNoRowsExtracted
	ErrIncompleteSummary = dataprocessing.ErrIncompleteSummary
)
