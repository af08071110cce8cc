package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"kpicli/internal/dataprocessing"
	"kpicli/internal/metrics"
	"kpicli/pkg/contracts/domain"
)

// TrendsService computes daily summaries and range trends over the daily
// production CSV directory. Files are re-read per request; the directory is
// the source of truth and may change between calls.
type TrendsService struct {
	dataDir    string
	summarizer *dataprocessing.Summarizer
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewTrendsService creates a trends service over the given CSV directory.
func NewTrendsService(dataDir string, m *metrics.Metrics, logger *slog.Logger) *TrendsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrendsService{
		dataDir:    dataDir,
		summarizer: dataprocessing.NewSummarizer(logger),
		metrics:    m,
		logger:     logger,
	}
}

// Summary computes the daily summary for the record matching date. When the
// record is present but metrics are missing, the partial summary is returned
// together with ErrIncompleteSummary.
func (s *TrendsService) Summary(ctx context.Context, date time.Time) (*domain.DailySummary, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if !dataprocessing.SameDate(rec.Date, date) {
			continue
		}
		summary, err := s.summarizer.Summarize(rec)
		s.metrics.ObserveSummary(summaryOutcome(err))
		return summary, err
	}

	s.metrics.ObserveSummary(metrics.OutcomeNoData)
	return nil, fmt.Errorf("%w: %s", ErrNoRecords, date.Format("2006-01-02"))
}

func summaryOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrIncompleteSummary):
		return metrics.OutcomeIncomplete
	default:
		return metrics.OutcomeError
	}
}

// Trends computes the OEE and production series over [from, to].
func (s *TrendsService) Trends(ctx context.Context, from, to time.Time) (*domain.TrendReport, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	report := dataprocessing.Aggregate(records, from, to, s.logger)
	if dataprocessing.Empty(report) {
		return nil, fmt.Errorf("%w: %s to %s", ErrNoDataForRange,
			from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	return report, nil
}

// Dates returns the distinct record dates, ascending. Surfaces drive their
// date pickers from this.
func (s *TrendsService) Dates(ctx context.Context) ([]time.Time, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var dates []time.Time
	for _, rec := range records {
		if n := len(dates); n > 0 && dataprocessing.SameDate(dates[n-1], rec.Date) {
			continue
		}
		dates = append(dates, rec.Date)
	}
	return dates, nil
}

func (s *TrendsService) load(ctx context.Context) (domain.RecordCollection, error) {
	records, skipped, err := dataprocessing.LoadDirectory(s.dataDir, s.logger)
	if err != nil {
		return nil, err
	}

	s.metrics.FilesLoaded.Add(float64(len(records)))
	s.metrics.FilesSkipped.Add(float64(skipped))
	s.logger.DebugContext(ctx, "daily records loaded",
		slog.String("dir", s.dataDir),
		slog.Int("count", len(records)),
		slog.Int("skipped", skipped))
	return records, nil
}
