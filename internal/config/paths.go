package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves the application's working directories. Relative configured
// paths are anchored at a single base directory so every executable agrees
// on where data lives.
type Paths struct {
	BaseDir    string
	DataDir    string
	UploadsDir string
	ReportsDir string
	LogsDir    string
}

// NewPaths resolves the configured directories against baseDir. An empty
// baseDir means the current working directory.
func NewPaths(baseDir string, cfg PathsConfig) (*Paths, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		baseDir = wd
	}

	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}

	return &Paths{
		BaseDir:    baseDir,
		DataDir:    resolve(cfg.DataDir),
		UploadsDir: resolve(cfg.UploadsDir),
		ReportsDir: resolve(cfg.ReportsDir),
		LogsDir:    resolve(cfg.LogsDir),
	}, nil
}

// EnsureDirectories creates every required directory that does not exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.UploadsDir, p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetUploadPath returns the full path for an uploaded workbook.
func (p *Paths) GetUploadPath(name string) string {
	return filepath.Join(p.UploadsDir, filepath.Base(name))
}

// GetReportPath returns the full path for a generated report file.
func (p *Paths) GetReportPath(name string) string {
	return filepath.Join(p.ReportsDir, filepath.Base(name))
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
