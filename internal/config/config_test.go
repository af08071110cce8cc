package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "kpicli/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.validate())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.Equal(t, "data", cfg.Paths.DataDir)
	assert.True(t, cfg.Security.RateLimit.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, true},
		{"bad upload limit", func(c *Config) { c.Server.MaxUploadBytes = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateNormalizesLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Output = "weird"
	cfg.Logging.FilePath = ""
	require.NoError(t, cfg.validate())
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.Equal(t, "logs/app.log", cfg.Logging.FilePath)
}

func TestApplyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\npaths:\n  data_dir: /srv/kpi/data\n"), 0644))

	cfg := Default()
	require.NoError(t, applyFile(path, cfg))
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/srv/kpi/data", cfg.Paths.DataDir)
	// Untouched fields keep their prior values.
	assert.Equal(t, "uploads", cfg.Paths.UploadsDir)
}

func TestLoadRejectsMalformedConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [broken\n"), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err = Load()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeConfig, appErr.Type)
	assert.Equal(t, "config.yaml", appErr.Context["path"])
}

func TestNewPaths(t *testing.T) {
	base := t.TempDir()
	paths, err := NewPaths(base, Default().Paths)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "data"), paths.DataDir)
	assert.Equal(t, filepath.Join(base, "reports"), paths.ReportsDir)

	require.NoError(t, paths.EnsureDirectories())
	for _, dir := range []string{paths.DataDir, paths.UploadsDir, paths.ReportsDir, paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestNewPathsAbsoluteOverride(t *testing.T) {
	base := t.TempDir()
	cfg := Default().Paths
	cfg.ReportsDir = "/var/kpi/reports"

	paths, err := NewPaths(base, cfg)
	require.NoError(t, err)
	assert.Equal(t, "/var/kpi/reports", paths.ReportsDir)
}

func TestGetPathHelpersStripDirectories(t *testing.T) {
	paths, err := NewPaths(t.TempDir(), Default().Paths)
	require.NoError(t, err)

	// Path traversal in a client-supplied name must not escape the dir.
	got := paths.GetReportPath("../../etc/passwd")
	assert.Equal(t, filepath.Join(paths.ReportsDir, "passwd"), got)
}
