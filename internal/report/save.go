package report

import (
	"fmt"
	"os"
	"path/filepath"

	"quickhash/internal/sanitize"
)

// Save writes the report text atomically to path. The data hits the disk
// before the file appears under its final name, so a crash never leaves a
// truncated report behind.
func Save(path string, text string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".quickhash-report-*.tmp")
	if err != nil {
		return fmt.Errorf("create report temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()
	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write report temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync report temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename report temp file: %w", err)
	}
	return nil
}

// ResolvePath sanitizes name and returns a path in dir. Unless overwrite is
// set, an " (n)" suffix keeps the path clear of existing files.
func ResolvePath(dir, name string, overwrite bool) (string, error) {
	return sanitize.ResolveCollisionPath(dir, name, overwrite)
}
