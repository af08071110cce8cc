package dataprocessing

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	apperrors "kpicli/internal/errors"
	"kpicli/internal/files"
	"kpicli/pkg/contracts/domain"
)

// dateHeaderPattern matches the labeled date in a file's first line, e.g.
// "Date: 12/03/2024, Shift: A". The value runs to the next comma or
// semicolon so trailing fields don't leak into the parse.
var dateHeaderPattern = regexp.MustCompile(`(?i)date\s*[:=]\s*([^,;]+)`)

// LoadDirectory scans a directory of daily production CSVs and returns one
// DailyRecord per loadable file, sorted ascending by date, along with the
// number of files skipped. Files whose date cannot be resolved from the
// header line or the filename are skipped with a warning. A missing
// directory is reported and yields an empty collection, not an error.
func LoadDirectory(dir string, logger *slog.Logger) (domain.RecordCollection, int, error) {
	if logger == nil {
		logger = slog.Default()
	}

	found, err := files.NewDiscovery("").FindCSVFiles(dir)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("data directory does not exist",
			slog.String("directory", dir))
		return domain.RecordCollection{}, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	var records domain.RecordCollection
	skipped := 0
	for _, f := range found {
		record, err := LoadDailyCSV(f.Path, logger)
		if err != nil {
			skipped++
			logger.Warn("daily file skipped",
				slog.String("file", f.Name),
				slog.String("reason", err.Error()))
			continue
		}
		records = append(records, *record)
	}

	// Stable: files resolving to the same date keep their discovery order.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	logger.Info("daily records loaded",
		slog.String("directory", dir),
		slog.Int("record_count", len(records)),
		slog.Int("skipped", skipped))

	return records, skipped, nil
}

// LoadDailyCSV loads one production CSV. The file's date comes from the
// labeled pattern in its first line, falling back to a fuzzy parse of the
// filename; with neither, the file contributes no record.
func LoadDailyCSV(path string, logger *slog.Logger) (*domain.DailyRecord, error) {
	if logger == nil {
		logger = slog.Default()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	firstLine, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read date header: %w", err)
	}

	name := filepath.Base(path)
	date, ok := dateFromHeader(firstLine)
	if !ok {
		date, ok = ParseFuzzyDate(strings.TrimSuffix(name, filepath.Ext(name)))
		if !ok {
			return nil, fmt.Errorf("no date in header line or filename")
		}
		logger.Debug("date resolved from filename",
			slog.String("file", name),
			slog.String("date", date.Format("2006-01-02")))
	}

	items, err := readLineItems(reader, date, name)
	if err != nil {
		return nil, err
	}

	return &domain.DailyRecord{Date: date, Source: name, Items: items}, nil
}

// dateFromHeader extracts and fuzzy-parses the labeled date of a header line.
func dateFromHeader(line string) (time.Time, bool) {
	m := dateHeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, false
	}
	return ParseFuzzyDate(m[1])
}

// readLineItems reads the tabular remainder of a daily file. Column names
// are trimmed before matching; Standard and Actual go through numeric
// normalization, everything else stays as text. Every item is tagged with
// the resolved date.
func readLineItems(r io.Reader, date time.Time, source string) ([]domain.LineItem, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read tabular data", err).
			WithContext("file", source)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := make(map[string]int)
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["particulars"]; !ok {
		return nil, fmt.Errorf("no Particulars column in %s", source)
	}

	field := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var items []domain.LineItem
	for _, row := range rows[1:] {
		particulars := field(row, "particulars")
		if particulars == "" {
			continue
		}
		items = append(items, domain.LineItem{
			Particulars:       particulars,
			Standard:          ParseNumeric(field(row, "standard")),
			Actual:            ParseNumeric(field(row, "actual")),
			Remark:            field(row, "remark"),
			ResponsiblePerson: field(row, "responsible person"),
			Date:              date,
		})
	}

	return items, nil
}
