// Command trends computes daily summaries and date-range trends over a
// directory of daily production CSV files.
//
// Usage:
//
//	trends -dir data [-date 2024-03-14]            # single-day summary
//	trends -dir data -from 2024-03-01 -to 2024-03-31 [-out trends.csv]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"kpicli/internal/config"
	"kpicli/internal/exporter"
	"kpicli/internal/infrastructure"
	"kpicli/internal/metrics"
	"kpicli/internal/services"
	"kpicli/internal/validation"
)

func main() {
	dir := flag.String("dir", "data", "directory containing daily CSV files")
	dateStr := flag.String("date", "", "summary date (YYYY-MM-DD)")
	fromStr := flag.String("from", "", "range start (YYYY-MM-DD)")
	toStr := flag.String("to", "", "range end (YYYY-MM-DD)")
	out := flag.String("out", "-", "output CSV path (\"-\" for stdout)")
	flag.Parse()

	logger := newLogger()
	// Tag the whole run with one trace ID so its log lines correlate.
	ctx := infrastructure.EnsureTraceID(context.Background())

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputDirectory(*dir, "*.csv"); err != nil {
		logger.Error("Input directory validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	svc := services.NewTrendsService(*dir, metrics.New(), logger)

	switch {
	case *dateStr != "":
		runSummary(ctx, svc, logger, *dateStr, *out)
	case *fromStr != "" && *toStr != "":
		runTrends(ctx, svc, logger, *fromStr, *toStr, *out)
	default:
		fmt.Fprintln(os.Stderr, "usage: trends -dir <dir> -date <YYYY-MM-DD> | -from <YYYY-MM-DD> -to <YYYY-MM-DD>")
		os.Exit(2)
	}
}

func runSummary(ctx context.Context, svc *services.TrendsService, logger *slog.Logger, dateStr, out string) {
	date := parseDate(logger, "date", dateStr)

	summary, err := svc.Summary(ctx, date)
	if err != nil && !errors.Is(err, services.ErrIncompleteSummary) {
		logger.Error("Summary failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if errors.Is(err, services.ErrIncompleteSummary) {
		logger.Warn("Summary is incomplete; missing metrics are left blank")
	}

	if err := writeOut(out, func(f *os.File) error {
		return exporter.WriteSummary(f, summary)
	}); err != nil {
		logger.Error("Failed to write summary CSV", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runTrends(ctx context.Context, svc *services.TrendsService, logger *slog.Logger, fromStr, toStr, out string) {
	from := parseDate(logger, "from", fromStr)
	to := parseDate(logger, "to", toStr)

	report, err := svc.Trends(ctx, from, to)
	if err != nil {
		logger.Error("Trend aggregation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := writeOut(out, func(f *os.File) error {
		return exporter.WriteTrends(f, report)
	}); err != nil {
		logger.Error("Failed to write trend CSV", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func writeOut(out string, write func(*os.File) error) error {
	if out == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}

func parseDate(logger *slog.Logger, name, value string) time.Time {
	date, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		logger.Error("Invalid date, expected YYYY-MM-DD",
			slog.String("flag", name),
			slog.String("value", value))
		os.Exit(1)
	}
	return date
}

func newLogger() *slog.Logger {
	cfg := config.Default().Logging
	cfg.Output = "console"
	return infrastructure.MustInitializeLogger(cfg)
}
