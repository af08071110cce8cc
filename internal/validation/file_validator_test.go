package validation

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator() *FileValidator {
	return NewFileValidator(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	return path
}

func TestValidateInputDirectory(t *testing.T) {
	v := newValidator()
	dir := t.TempDir()
	touch(t, dir, "day.csv")

	assert.NoError(t, v.ValidateInputDirectory(dir, "*.csv"))
	assert.NoError(t, v.ValidateInputDirectory(dir, "*.xlsx"), "empty match is not an error")
	assert.Error(t, v.ValidateInputDirectory(filepath.Join(dir, "missing"), ""))

	file := touch(t, dir, "not-a-dir")
	assert.Error(t, v.ValidateInputDirectory(file, ""))
}

func TestValidateOutputDirectory(t *testing.T) {
	v := newValidator()
	dir := filepath.Join(t.TempDir(), "nested", "out")

	require.NoError(t, v.ValidateOutputDirectory(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestValidateWorkbookFile(t *testing.T) {
	v := newValidator()
	dir := t.TempDir()

	book := touch(t, dir, "plant.xlsx")
	assert.NoError(t, v.ValidateWorkbookFile(book))

	csv := touch(t, dir, "day.csv")
	assert.Error(t, v.ValidateWorkbookFile(csv))

	lock := touch(t, dir, "~$plant.xlsx")
	assert.Error(t, v.ValidateWorkbookFile(lock))

	assert.Error(t, v.ValidateWorkbookFile(filepath.Join(dir, "missing.xlsx")))
}

func TestValidateCSVFile(t *testing.T) {
	v := newValidator()
	dir := t.TempDir()

	csv := touch(t, dir, "day.csv")
	assert.NoError(t, v.ValidateCSVFile(csv))

	book := touch(t, dir, "plant.xlsx")
	assert.Error(t, v.ValidateCSVFile(book))
}

func TestValidateUploadName(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name    string
		wantErr bool
	}{
		{"plant.xlsx", false},
		{"legacy.xls", false},
		{"Plant March.XLSX", false},
		{"day.csv", true},
		{"../escape.xlsx", true},
		{"dir/plant.xlsx", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateUploadName(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
