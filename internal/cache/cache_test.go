package cache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kpicli/pkg/contracts/domain"
)

func testReport() *domain.AnalysisReport {
	return &domain.AnalysisReport{
		Date:      time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
		SheetName: "04 January 2024",
	}
}

func TestKey(t *testing.T) {
	date := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	content := []byte("workbook-bytes")

	assert.Equal(t, Key(content, date), Key(content, date))
	assert.NotEqual(t, Key(content, date), Key([]byte("other"), date))
	assert.NotEqual(t, Key(content, date), Key(content, date.AddDate(0, 0, 1)))

	// Clock time does not affect identity.
	assert.Equal(t, Key(content, date), Key(content, date.Add(9*time.Hour)))
}

func TestGetOrGenerate(t *testing.T) {
	c := New()
	calls := 0

	for i := 0; i < 3; i++ {
		report, err := c.GetOrGenerate("k", func() (*domain.AnalysisReport, error) {
			calls++
			return testReport(), nil
		})
		require.NoError(t, err)
		require.NotNil(t, report)
	}

	assert.Equal(t, 1, calls, "identical inputs must skip recomputation")
	assert.Equal(t, 1, c.Len())
}

func TestGetOrGenerateDoesNotCacheErrors(t *testing.T) {
	c := New()
	calls := 0

	_, err := c.GetOrGenerate("k", func() (*domain.AnalysisReport, error) {
		calls++
		return nil, errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())

	report, err := c.GetOrGenerate("k", func() (*domain.AnalysisReport, error) {
		calls++
		return testReport(), nil
	})
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 2, calls)
}

func TestGetOrGenerateConcurrent(t *testing.T) {
	c := New()
	var mu sync.Mutex
	calls := 0

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.GetOrGenerate("k", func() (*domain.AnalysisReport, error) {
				mu.Lock()
				calls++
				mu.Unlock()
				time.Sleep(10 * time.Millisecond)
				return testReport(), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls, "concurrent identical requests must collapse")
}
