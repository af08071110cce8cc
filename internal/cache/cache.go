// Package cache memoizes generated analysis reports by input identity.
// Report generation is a pure function of (file content, selected date), so
// the cache key is a hash of exactly those two inputs; a changed file or a
// different date always misses.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"kpicli/pkg/contracts/domain"
)

// ReportCache memoizes assembled reports. Concurrent requests for the same
// key are collapsed into a single computation via singleflight.
type ReportCache struct {
	mu      sync.RWMutex
	reports map[string]*domain.AnalysisReport
	group   singleflight.Group
}

// New creates an empty report cache.
func New() *ReportCache {
	return &ReportCache{
		reports: make(map[string]*domain.AnalysisReport),
	}
}

// Key derives the cache key from the workbook content and the selected date.
func Key(content []byte, date time.Time) string {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte(date.UTC().Format("2006-01-02")))
	return hex.EncodeToString(h.Sum(nil))
}

// GetOrGenerate returns the cached report for key, or runs generate once and
// caches its result. Errors are never cached; a failed generation is retried
// on the next request.
func (c *ReportCache) GetOrGenerate(key string, generate func() (*domain.AnalysisReport, error)) (*domain.AnalysisReport, error) {
	c.mu.RLock()
	report, ok := c.reports[key]
	c.mu.RUnlock()
	if ok {
		return report, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		report, err := generate()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.reports[key] = report
		c.mu.Unlock()
		return report, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.AnalysisReport), nil
}

// Len reports the number of cached entries.
func (c *ReportCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.reports)
}
