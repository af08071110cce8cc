package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"kpicli/internal/cache"
	"kpicli/internal/dataprocessing"
	"kpicli/internal/exporter"
	"kpicli/internal/files"
	"kpicli/internal/metrics"
	"kpicli/pkg/contracts/domain"
)

// ReportService generates KPI analysis reports from Excel workbooks. Results
// are memoized by workbook content and date, so repeated requests for an
// unchanged file are served without reopening it.
type ReportService struct {
	manager  *files.Manager
	cache    *cache.ReportCache
	exporter *exporter.ReportExporter
	metrics  *metrics.Metrics
	layout   dataprocessing.Layout
	logger   *slog.Logger
}

// NewReportService creates a report service with the default KPI layout.
// A nil exporter disables report persistence.
func NewReportService(manager *files.Manager, reportCache *cache.ReportCache, exp *exporter.ReportExporter, m *metrics.Metrics, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		manager:  manager,
		cache:    reportCache,
		exporter: exp,
		metrics:  m,
		layout:   dataprocessing.DefaultLayout(),
		logger:   logger,
	}
}

// SheetDates returns every sheet of the named workbook whose name parses as
// a calendar date, in workbook order.
func (s *ReportService) SheetDates(ctx context.Context, file string) ([]domain.SheetDate, error) {
	content, err := s.readWorkbook(file)
	if err != nil {
		return nil, err
	}

	f, err := dataprocessing.OpenWorkbook(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return dataprocessing.SheetDates(f), nil
}

// Generate produces the analysis report for the named workbook and date,
// consulting the cache first.
func (s *ReportService) Generate(ctx context.Context, file string, date time.Time) (*domain.AnalysisReport, error) {
	content, err := s.readWorkbook(file)
	if err != nil {
		return nil, err
	}

	key := cache.Key(content, date)
	cached := true

	start := time.Now()
	report, err := s.cache.GetOrGenerate(key, func() (*domain.AnalysisReport, error) {
		cached = false
		return s.generate(ctx, content, date)
	})

	if cached {
		s.metrics.CacheHits.Inc()
	} else {
		s.metrics.CacheMisses.Inc()
		s.metrics.ObserveReport(reportOutcome(err), time.Since(start))
	}

	return report, err
}

func (s *ReportService) generate(ctx context.Context, content []byte, date time.Time) (*domain.AnalysisReport, error) {
	f, err := dataprocessing.OpenWorkbook(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	report, err := dataprocessing.GenerateReport(f, date, s.layout, s.logger)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "report generated",
		slog.String("sheet", report.SheetName),
		slog.Time("date", report.Date),
		slog.Int("rows", len(report.Rows)))

	// Persist the canonical CSV alongside the in-memory result. A write
	// failure degrades to an unpersisted report, not a failed request.
	if s.exporter != nil {
		if name, err := s.exporter.ExportReport(report); err != nil {
			s.logger.WarnContext(ctx, "failed to persist report CSV",
				slog.String("error", err.Error()))
		} else {
			s.logger.DebugContext(ctx, "report persisted",
				slog.String("file", name))
		}
	}
	return report, nil
}

func (s *ReportService) readWorkbook(file string) ([]byte, error) {
	path, ok := s.manager.ResolveWorkbook(file)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWorkbookNotFound, file)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook %s: %w", path, err)
	}
	return content, nil
}

func reportOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrNoSheetForDate):
		return metrics.OutcomeNoSheet
	case errors.Is(err, ErrNoRowsExtracted):
		return metrics.OutcomeNoData
	default:
		return metrics.OutcomeError
	}
}
