package dataprocessing

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"kpicli/pkg/contracts/domain"
)

// Sentinel errors distinguishing the three pipeline outcomes. "No matching
// sheet", "no rows extracted" and "success" are separate conditions and are
// surfaced differently at the request boundary.
var (
	ErrNoSheetForDate  = errors.New("no sheet found for the requested date")
	ErrNoRowsExtracted = errors.New("no KPI cells could be extracted from the sheet")
)

// OpenWorkbook opens an uploaded or on-disk workbook from a reader. Each
// request gets its own handle; grids are never shared across requests.
func OpenWorkbook(r io.Reader) (*excelize.File, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return f, nil
}

// GenerateReport runs the full single-workbook pipeline: resolve the
// date-named sheet, extract the fixed-offset KPI cells, and assemble the
// tidy report.
func GenerateReport(f *excelize.File, date time.Time, layout Layout, logger *slog.Logger) (*domain.AnalysisReport, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sheetName, ok := ResolveSheet(f, date)
	if !ok {
		logger.Info("no sheet matches requested date",
			slog.String("date", DateOnly(date).Format("2006-01-02")))
		return nil, ErrNoSheetForDate
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	cells := layout.Extract(layout.SkipHeader(rows), logger)
	if len(cells) == 0 {
		logger.Warn("extraction produced no rows",
			slog.String("sheet_name", sheetName),
			slog.Int("sheet_rows", len(rows)))
		return nil, ErrNoRowsExtracted
	}

	logger.Info("analysis report assembled",
		slog.String("sheet_name", sheetName),
		slog.Int("row_count", len(cells)))

	return Assemble(cells, sheetName, date), nil
}
