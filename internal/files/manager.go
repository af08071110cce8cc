package files

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"kpicli/internal/config"
	apperrors "kpicli/internal/errors"
)

// Manager provides file management operations
type Manager struct {
	paths *config.Paths
}

// NewManager creates a new file manager instance
func NewManager(paths *config.Paths) *Manager {
	return &Manager{paths: paths}
}

// FileExists checks if a file exists at the given path
func (m *Manager) FileExists(path string) bool {
	fullPath := m.resolvePath(path)
	_, err := os.Stat(fullPath)
	exists := err == nil

	slog.Debug("FileExists check",
		slog.String("path", path),
		slog.String("full_path", fullPath),
		slog.Bool("exists", exists))

	return exists
}

// SaveUpload streams an uploaded workbook into the uploads directory. The
// name is stripped to its base component, so callers cannot escape the
// uploads dir. Returns the full path written.
func (m *Manager) SaveUpload(name string, src io.Reader) (string, error) {
	fullPath := m.paths.GetUploadPath(name)

	slog.Info("Saving upload",
		slog.String("name", name),
		slog.String("full_path", fullPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write upload content: %w", err)
	}

	return fullPath, dst.Sync()
}

// DeleteFile deletes a file
func (m *Manager) DeleteFile(path string) error {
	fullPath := m.resolvePath(path)

	slog.Info("Deleting file",
		slog.String("path", path),
		slog.String("full_path", fullPath))

	return os.Remove(fullPath)
}

// ReadFile reads the entire content of a file
func (m *Manager) ReadFile(path string) ([]byte, error) {
	fullPath := m.resolvePath(path)

	slog.Debug("Reading file",
		slog.String("path", path),
		slog.String("full_path", fullPath))

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read file", err).
			WithContext("path", fullPath)
	}
	return data, nil
}

// WriteFile writes data to a file
func (m *Manager) WriteFile(path string, data []byte) error {
	fullPath := m.resolvePath(path)

	slog.Info("Writing file",
		slog.String("path", path),
		slog.String("full_path", fullPath),
		slog.Int("size_bytes", len(data)))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return apperrors.NewStorageError("failed to write file", err).
			WithContext("path", fullPath)
	}
	return nil
}

// ListFiles returns all files in a directory (non-recursive)
func (m *Manager) ListFiles(dir string) ([]string, error) {
	fullPath := m.resolvePath(dir)

	slog.Debug("Listing files",
		slog.String("dir", dir),
		slog.String("full_path", fullPath))
	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}

	return files, nil
}

// ListWorkbooks returns the workbooks available for report generation:
// uploaded files first, then those shipped in the data directory. A missing
// directory contributes nothing.
func (m *Manager) ListWorkbooks() ([]FileInfo, error) {
	discovery := NewDiscovery("")

	var all []FileInfo
	for _, dir := range []string{m.paths.UploadsDir, m.paths.DataDir} {
		found, err := discovery.FindWorkbooks(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		all = append(all, found...)
	}

	slog.Debug("workbooks listed", slog.Int("count", len(all)))
	return all, nil
}

// ResolveWorkbook locates an input workbook by name: uploads dir first, then
// the data dir. Absolute paths are used as-is.
func (m *Manager) ResolveWorkbook(name string) (string, bool) {
	if filepath.IsAbs(name) {
		return name, config.FileExists(name)
	}

	uploaded := m.paths.GetUploadPath(name)
	if config.FileExists(uploaded) {
		return uploaded, true
	}

	inData := filepath.Join(m.paths.DataDir, filepath.Base(name))
	return inData, config.FileExists(inData)
}

// resolvePath resolves a path relative to the appropriate base directory
func (m *Manager) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	switch {
	case strings.HasPrefix(path, "uploads/"):
		return m.paths.GetUploadPath(strings.TrimPrefix(path, "uploads/"))
	case strings.HasPrefix(path, "reports/"):
		return m.paths.GetReportPath(strings.TrimPrefix(path, "reports/"))
	case strings.HasPrefix(path, "logs/"):
		return filepath.Join(m.paths.LogsDir, filepath.Base(path))
	default:
		return filepath.Join(m.paths.DataDir, path)
	}
}
