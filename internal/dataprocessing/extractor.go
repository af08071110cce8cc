package dataprocessing

import (
	"fmt"
	"log/slog"

	"kpicli/pkg/contracts/domain"
)

// Position binds a semantic label to a fixed row or column offset within the
// post-skip grid. The daily sheets share one hard-coded layout; keeping it as
// an explicit ordered table localizes any future layout change.
type Position struct {
	Label  string
	Offset int
}

// Layout describes the fixed structure of a daily KPI sheet. Iteration order
// is machine-major, KPI-minor and determines serial numbering, so the tables
// are ordered slices rather than maps.
type Layout struct {
	// SkipRows is the number of header rows above the KPI grid.
	SkipRows int
	// Machines maps machine names to row offsets within the post-skip grid.
	Machines []Position
	// KPIs maps KPI names to column offsets.
	KPIs []Position
	// ShortageColumn is the fixed column holding the shortage figure read
	// alongside Operation Time. It is a special-cased constant, not derived
	// from the KPI table.
	ShortageColumn int
	// ShortageKPI names the single KPI whose remark carries the shortage.
	ShortageKPI string
}

// DefaultLayout returns the layout of the plant's daily dashboard sheets.
func DefaultLayout() Layout {
	return Layout{
		SkipRows: 3,
		Machines: []Position{
			{Label: "Chipper I", Offset: 1},
			{Label: "Chipper II", Offset: 2},
			{Label: "Drier", Offset: 4},
			{Label: "Pellet I", Offset: 6},
			{Label: "Pellet II", Offset: 7},
		},
		KPIs: []Position{
			{Label: "Operation Time", Offset: 3},
			{Label: "Production Rate", Offset: 7},
			{Label: "Quality", Offset: 10},
			{Label: "OEE", Offset: 11},
		},
		ShortageColumn: 4,
		ShortageKPI:    "Operation Time",
	}
}

// Extract reads one cell per (machine, KPI) pair from the post-skip grid and
// builds the remark text for each. A pair whose offsets fall outside the
// grid is skipped with a warning and extraction continues; the caller decides
// what zero successful pairs means.
func (l Layout) Extract(grid [][]string, logger *slog.Logger) []domain.ExtractedCell {
	if logger == nil {
		logger = slog.Default()
	}

	var cells []domain.ExtractedCell

	for _, machine := range l.Machines {
		for _, kpi := range l.KPIs {
			value, ok := cellAt(grid, machine.Offset, kpi.Offset)
			if !ok {
				logger.Warn("cell outside sheet bounds, pair skipped",
					slog.String("machine", machine.Label),
					slog.String("kpi", kpi.Label),
					slog.Int("row", machine.Offset),
					slog.Int("col", kpi.Offset))
				continue
			}

			cell := domain.ExtractedCell{
				Machine: machine.Label,
				KPI:     kpi.Label,
				Actual:  value,
				Remark:  fmt.Sprintf("%s for %s is %s.", kpi.Label, machine.Label, value),
			}

			if kpi.Label == l.ShortageKPI {
				shortage, ok := cellAt(grid, machine.Offset, l.ShortageColumn)
				if !ok {
					logger.Warn("shortage cell outside sheet bounds, pair skipped",
						slog.String("machine", machine.Label),
						slog.Int("row", machine.Offset),
						slog.Int("col", l.ShortageColumn))
					continue
				}
				cell.Shortage = shortage
				cell.Remark += fmt.Sprintf(" Shortage: %s.", shortage)
			}

			cells = append(cells, cell)
		}
	}

	return cells
}

// SkipHeader drops the layout's header rows from a raw sheet grid.
func (l Layout) SkipHeader(rows [][]string) [][]string {
	if len(rows) <= l.SkipRows {
		return nil
	}
	return rows[l.SkipRows:]
}

// cellAt returns the value at (row, col), or ok=false when the offset
// exceeds the grid's actual dimensions.
func cellAt(grid [][]string, row, col int) (string, bool) {
	if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
		return "", false
	}
	return grid[row][col], true
}
