// Package archive moves a previous export out of the way so the next
// export starts from an empty directory.
package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNothingToArchive is returned when the export directory does not exist
var ErrNothingToArchive = errors.New("nothing to archive")

// Dir moves dir into an "archive" directory next to it, named after dir
// and the current time, and returns the new location.
func Dir(dir string) (string, error) {
	return dirAt(dir, time.Now())
}

func dirAt(dir string, now time.Time) (string, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s does not exist", ErrNothingToArchive, dir)
	}
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", dir)
	}

	archiveDir := filepath.Join(filepath.Dir(dir), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	base := fmt.Sprintf("%s-%s", filepath.Base(dir), now.Format("20060102-150405"))
	target := filepath.Join(archiveDir, base)
	for n := 2; ; n++ {
		if _, err := os.Stat(target); errors.Is(err, os.ErrNotExist) {
			break
		}
		target = filepath.Join(archiveDir, fmt.Sprintf("%s-%d", base, n))
	}

	if err := os.Rename(dir, target); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", dir, err)
	}
	return target, nil
}
