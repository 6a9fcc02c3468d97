package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const timestampLayout = "20060102-150405"

// ArchiveFile moves an existing output file into an "archive" directory next
// to it, suffixed with a timestamp, so a new run can write a fresh one.
// It returns the archive path, or "" when there was nothing to archive.
func ArchiveFile(path string) (string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("refusing to archive directory: %s", path)
	}

	archiveDir := filepath.Join(filepath.Dir(path), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := uniqueArchivePath(archiveDir, filepath.Base(path), time.Now())

	if err := os.Rename(path, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", path, err)
	}

	return archivePath, nil
}

// uniqueArchivePath builds <dir>/<name>-<timestamp><ext>, adding a counter
// when two archives land in the same second
func uniqueArchivePath(dir, filename string, now time.Time) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	stamp := now.Format(timestampLayout)

	candidate := filepath.Join(dir, fmt.Sprintf("%s-%s%s", base, stamp, ext))
	for i := 1; ; i++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s-%s_%d%s", base, stamp, i, ext))
	}
}
