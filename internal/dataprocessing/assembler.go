package dataprocessing

import (
	"time"

	"kpicli/pkg/contracts/domain"
)

// Assemble turns extracted cells into the final tidy report. Serial numbers
// run 1..N in extraction order. The per-cell KPI label feeds the remark but
// is not a column of the output.
func Assemble(cells []domain.ExtractedCell, sheetName string, date time.Time) *domain.AnalysisReport {
	report := &domain.AnalysisReport{
		Date:        DateOnly(date),
		SheetName:   sheetName,
		Rows:        make([]domain.ReportRow, 0, len(cells)),
		GeneratedAt: time.Now(),
	}

	dateStr := report.Date.Format("2006-01-02")
	for i, cell := range cells {
		report.Rows = append(report.Rows, domain.ReportRow{
			SerialNumber: i + 1,
			Particulars:  cell.Machine,
			Actual:       cell.Actual,
			Remarks:      cell.Remark,
			Date:         dateStr,
		})
	}

	return report
}
