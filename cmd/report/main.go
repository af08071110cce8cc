// Command report extracts the KPI analysis report for one date from an
// Excel production workbook and writes it as CSV.
//
// Usage:
//
//	report -file plant.xlsx -date 2024-02-05 [-out report.csv] [-list]
//	report -dir data -date 2024-02-05          # latest workbook in the dir
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"kpicli/internal/config"
	"kpicli/internal/dataprocessing"
	"kpicli/internal/exporter"
	"kpicli/internal/files"
	"kpicli/internal/infrastructure"
	"kpicli/internal/validation"
)

func main() {
	file := flag.String("file", "", "path to the Excel workbook")
	dir := flag.String("dir", "data", "directory searched for the latest workbook when -file is omitted")
	dateStr := flag.String("date", "", "report date (YYYY-MM-DD)")
	out := flag.String("out", "", "output CSV path (defaults to analysis_report_YYYYMMDD.csv next to the workbook; \"-\" for stdout)")
	list := flag.Bool("list", false, "list the workbook's parsable sheet dates and exit")
	flag.Parse()

	logger := newLogger()

	if *file == "" {
		workbooks, err := files.NewDiscovery("").FindWorkbooks(*dir)
		if err != nil {
			logger.Error("Failed to search for workbooks",
				slog.String("dir", *dir),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		latest, ok := files.GetLatestFile(workbooks)
		if !ok {
			fmt.Fprintf(os.Stderr, "no workbook found in %s; pass one with -file\n", *dir)
			os.Exit(2)
		}
		*file = latest.Path
		logger.Info("Using latest workbook",
			slog.String("file", latest.Path))
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateWorkbookFile(*file); err != nil {
		logger.Error("Workbook validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		logger.Error("Failed to open workbook", slog.String("error", err.Error()))
		os.Exit(1)
	}
	workbook, err := dataprocessing.OpenWorkbook(f)
	f.Close()
	if err != nil {
		logger.Error("Failed to read workbook", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer workbook.Close()

	if *list {
		for _, sd := range dataprocessing.SheetDates(workbook) {
			fmt.Printf("%s\t%s\n", sd.Date.Format("2006-01-02"), sd.SheetName)
		}
		return
	}

	if *dateStr == "" {
		fmt.Fprintln(os.Stderr, "usage: report -file <workbook.xlsx> -date <YYYY-MM-DD> [-out <file.csv>] [-list]")
		os.Exit(2)
	}
	date, err := time.ParseInLocation("2006-01-02", *dateStr, time.UTC)
	if err != nil {
		logger.Error("Invalid date, expected YYYY-MM-DD", slog.String("date", *dateStr))
		os.Exit(1)
	}

	report, err := dataprocessing.GenerateReport(workbook, date, dataprocessing.DefaultLayout(), logger)
	if err != nil {
		logger.Error("Report generation failed",
			slog.String("file", *file),
			slog.String("date", *dateStr),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *out == "-" {
		if err := exporter.WriteReport(os.Stdout, report); err != nil {
			logger.Error("Failed to write CSV", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	target := *out
	if target == "" {
		target = report.FileName()
	}
	outFile, err := os.Create(target)
	if err != nil {
		logger.Error("Failed to create output file", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer outFile.Close()

	if err := exporter.WriteReport(outFile, report); err != nil {
		logger.Error("Failed to write CSV", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Report written",
		slog.String("sheet", report.SheetName),
		slog.Int("rows", len(report.Rows)),
		slog.String("output", target))
}

func newLogger() *slog.Logger {
	cfg := config.Default().Logging
	cfg.Output = "console"
	return infrastructure.MustInitializeLogger(cfg)
}
