package domain

import (
	"time"
)

// ExtractedCell represents one (machine, KPI) cell read from a daily sheet.
// This is the intermediate form produced by the extractor before report
// assembly; the KPI label is carried for remark construction but is not a
// column of the final report.
type ExtractedCell struct {
	Machine  string `json:"machine" validate:"required"`
	KPI      string `json:"kpi" validate:"required"`
	Actual   string `json:"actual"`
	Shortage string `json:"shortage,omitempty"` // populated for Operation Time only
	Remark   string `json:"remark"`
}

// ReportRow represents a single row of the assembled analysis report.
type ReportRow struct {
	SerialNumber int    `json:"serial_number" validate:"min=1"`
	Particulars  string `json:"particulars" validate:"required"`
	Actual       string `json:"actual"`
	Remarks      string `json:"remarks"`
	Date         string `json:"date" validate:"required"` // YYYY-MM-DD
}

// AnalysisReport represents the complete KPI analysis report for one date.
type AnalysisReport struct {
	Date        time.Time   `json:"date" validate:"required"`
	SheetName   string      `json:"sheet_name" validate:"required"`
	Rows        []ReportRow `json:"rows" validate:"required,dive"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// ReportColumns is the exact column set of the exported report, in order.
var ReportColumns = []string{"Serial Number", "Particulars", "Actual", "Remarks", "Date"}

// FileName returns the download file name for the report, with the report
// date embedded as YYYYMMDD.
func (r *AnalysisReport) FileName() string {
	return "analysis_report_" + r.Date.Format("20060102") + ".csv"
}

// SheetDate represents a workbook sheet whose name parsed as a calendar date.
type SheetDate struct {
	SheetName string    `json:"sheet_name"`
	Date      time.Time `json:"date"`
}
