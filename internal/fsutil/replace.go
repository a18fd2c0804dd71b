// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fsutil provides write-then-rename file replacement so that a
// destination is either left untouched or fully replaced, never truncated.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const defaultMode fs.FileMode = 0o644

// Replace creates a temp file next to destPath, lets write fill it by path,
// then renames it over destPath. The temp file takes the mode of an existing
// destination, or 0644 for a new one. If write or any later step fails, the
// temp file is removed and destPath is not touched.
func Replace(destPath string, write func(tmpPath string) error) error {
	mode := defaultMode
	if info, err := os.Stat(destPath); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", destPath, err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), "."+filepath.Base(destPath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := write(tmpPath); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting mode on temp file: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
