package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"kpicli/internal/cache"
	"kpicli/internal/config"
	"kpicli/internal/exporter"
	"kpicli/internal/files"
	"kpicli/internal/metrics"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPaths(t *testing.T) *config.Paths {
	t.Helper()
	paths, err := config.NewPaths(t.TempDir(), config.PathsConfig{
		DataDir:    "data",
		UploadsDir: "data/uploads",
		ReportsDir: "data/reports",
		LogsDir:    "logs",
	})
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirectories())
	return paths
}

// writeWorkbook saves a workbook with one date-named dashboard sheet into the
// data directory and returns its file name.
func writeWorkbook(t *testing.T, paths *config.Paths, sheet string) string {
	t.Helper()

	f := excelize.NewFile()
	_, err := f.NewSheet(sheet)
	require.NoError(t, err)
	require.NoError(t, f.DeleteSheet("Sheet1"))

	for i := 1; i <= 3; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, "header"))
	}
	for r := 0; r < 8; r++ {
		for c := 0; c < 12; c++ {
			cell, err := excelize.CoordinatesToCellName(c+1, r+4)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, fmt.Sprintf("v%d_%d", r, c)))
		}
	}

	name := "plant.xlsx"
	require.NoError(t, f.SaveAs(filepath.Join(paths.DataDir, name)))
	require.NoError(t, f.Close())
	return name
}

func newReportService(t *testing.T) (*ReportService, *config.Paths, *metrics.Metrics) {
	t.Helper()
	paths := testPaths(t)
	m := metrics.New()
	exp := exporter.NewReportExporter(exporter.NewCSVWriter(paths))
	svc := NewReportService(files.NewManager(paths), cache.New(), exp, m, discardLogger())
	return svc, paths, m
}

func TestGenerate(t *testing.T) {
	svc, paths, m := newReportService(t)
	name := writeWorkbook(t, paths, "05-Feb-2024")

	date := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	report, err := svc.Generate(context.Background(), name, date)
	require.NoError(t, err)
	require.Len(t, report.Rows, 20)
	assert.Equal(t, "05-Feb-2024", report.SheetName)
	assert.Equal(t, "analysis_report_20240205.csv", report.FileName())

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheMisses))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.ReportsGenerated.WithLabelValues(metrics.OutcomeOK)))
}

func TestGeneratePersistsReportCSV(t *testing.T) {
	svc, paths, _ := newReportService(t)
	name := writeWorkbook(t, paths, "05-Feb-2024")

	date := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	report, err := svc.Generate(context.Background(), name, date)
	require.NoError(t, err)

	data, err := os.ReadFile(paths.GetReportPath(report.FileName()))
	require.NoError(t, err, "fresh generation writes the canonical CSV to the reports dir")
	assert.Contains(t, string(data), "Serial Number,Particulars,Actual,Remarks,Date")
}

func TestGenerateServesSecondRequestFromCache(t *testing.T) {
	svc, paths, m := newReportService(t)
	name := writeWorkbook(t, paths, "05-Feb-2024")

	date := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	first, err := svc.Generate(context.Background(), name, date)
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), name, date)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheHits))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheMisses))
}

func TestGenerateNoSheetForDate(t *testing.T) {
	svc, paths, m := newReportService(t)
	name := writeWorkbook(t, paths, "05-Feb-2024")

	_, err := svc.Generate(context.Background(), name, time.Date(2024, 2, 6, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrNoSheetForDate)
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.ReportsGenerated.WithLabelValues(metrics.OutcomeNoSheet)))
}

func TestGenerateWorkbookNotFound(t *testing.T) {
	svc, _, _ := newReportService(t)

	_, err := svc.Generate(context.Background(), "missing.xlsx", time.Now())
	assert.ErrorIs(t, err, ErrWorkbookNotFound)
}

func TestSheetDates(t *testing.T) {
	svc, paths, _ := newReportService(t)
	name := writeWorkbook(t, paths, "05-Feb-2024")

	dates, err := svc.SheetDates(context.Background(), name)
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Equal(t, "05-Feb-2024", dates[0].SheetName)
	assert.Equal(t, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), dates[0].Date)
}
