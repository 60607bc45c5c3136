package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArchiveDir moves dir to archive/<name>-<timestamp> next to it and returns
// the new path
func ArchiveDir(dir string) (string, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("output directory does not exist: %s", dir)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat output directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", dir)
	}

	dir = filepath.Clean(dir)
	archiveDir := filepath.Join(filepath.Dir(dir), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	name := filepath.Base(dir)
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s", name, time.Now().Format("20060102-150405")))

	// Two archives within the same second
	if _, err := os.Stat(archivePath); err == nil {
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s", name, time.Now().Format("20060102-150405.000000")))
	}

	if err := os.Rename(dir, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive output directory: %w", err)
	}

	return archivePath, nil
}
