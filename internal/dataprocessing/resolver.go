package dataprocessing

import (
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"kpicli/pkg/contracts/domain"
)

// ResolveSheet scans the workbook's sheet names in declared order and returns
// the first sheet whose name fuzzy-parses to the target calendar date. Sheet
// names that do not parse as dates are skipped silently; they simply never
// match. The second return value is false when no sheet matches, which
// callers surface as a "no report for this date" condition rather than an
// error.
func ResolveSheet(f *excelize.File, target time.Time) (string, bool) {
	target = DateOnly(target)
	for _, name := range f.GetSheetList() {
		parsed, ok := ParseFuzzyDate(name)
		if !ok {
			continue
		}
		if parsed.Equal(target) {
			return name, true
		}
	}
	return "", false
}

// SheetDates returns every sheet whose name parses as a date, in workbook
// order. This backs the date-picker surface: the UI offers exactly these
// dates for report generation.
func SheetDates(f *excelize.File) []domain.SheetDate {
	var dates []domain.SheetDate
	for _, name := range f.GetSheetList() {
		parsed, ok := ParseFuzzyDate(name)
		if !ok {
			slog.Debug("sheet name is not a date, excluded from lookup",
				slog.String("sheet_name", name))
			continue
		}
		dates = append(dates, domain.SheetDate{SheetName: name, Date: parsed})
	}
	return dates
}
