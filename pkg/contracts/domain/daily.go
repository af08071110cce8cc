package domain

import (
	"time"
)

// Metric represents a numeric value that may be missing. Values that fail
// numeric normalization (e.g. "N/A") carry Valid=false and must not be
// substituted with a default by downstream consumers.
type Metric struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Num constructs a present Metric.
func Num(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// Missing is the missing-value marker for unparsable numeric cells.
var Missing = Metric{}

// LineItem represents one labeled row of a daily production CSV: a
// particulars label with its standard and actual values.
type LineItem struct {
	Particulars       string    `json:"particulars" validate:"required"`
	Standard          Metric    `json:"standard"`
	Actual            Metric    `json:"actual"`
	Remark            string    `json:"remark,omitempty"`
	ResponsiblePerson string    `json:"responsible_person,omitempty"`
	Date              time.Time `json:"date"`
}

// DailyRecord represents one production day loaded from a single CSV file.
type DailyRecord struct {
	Date   time.Time  `json:"date" validate:"required"`
	Source string     `json:"source"` // originating file name
	Items  []LineItem `json:"items" validate:"dive"`
}

// RecordCollection is an ordered-by-date sequence of daily records. Two
// records may share a date; they are kept in discovery order.
type RecordCollection []DailyRecord

// Range returns the records whose date falls within [from, to] inclusive.
func (c RecordCollection) Range(from, to time.Time) RecordCollection {
	var out RecordCollection
	for _, rec := range c {
		if rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// DailySummary represents the headline metrics for a single production day.
// Any metric may be absent; callers must check Valid before use.
type DailySummary struct {
	Date               time.Time         `json:"date"`
	ProductionActual   Metric            `json:"production_actual"`
	ProductionStandard Metric            `json:"production_standard"`
	VariancePercent    Metric            `json:"variance_percent"`
	OEEPercent         map[string]Metric `json:"oee_percent"` // per equipment label
}

// Complete reports whether every headline metric is present.
func (s *DailySummary) Complete() bool {
	if !s.ProductionActual.Valid || !s.ProductionStandard.Valid {
		return false
	}
	for _, m := range s.OEEPercent {
		if !m.Valid {
			return false
		}
	}
	return true
}

// TrendPoint is one observation of a time series.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// OEETrend represents the OEE percentage series for one equipment line.
type OEETrend struct {
	Equipment string       `json:"equipment"`
	Points    []TrendPoint `json:"points"`
}

// ProductionTrendPoint pairs actual and target production for one day.
type ProductionTrendPoint struct {
	Date     time.Time `json:"date"`
	Actual   Metric    `json:"actual"`
	Standard Metric    `json:"standard"`
}

// TrendReport bundles the series computed over a date range.
type TrendReport struct {
	From       time.Time              `json:"from"`
	To         time.Time              `json:"to"`
	OEE        []OEETrend             `json:"oee"`
	Production []ProductionTrendPoint `json:"production"`
}
