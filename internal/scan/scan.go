// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan validates input directories and discovers the files in them
// that carry a given extension. Discovery is non-recursive and matches the
// extension case-insensitively; results are sorted so that repeated runs
// over the same directory process files in the same order.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

var (
	// ErrNotExist reports that a directory path does not exist.
	ErrNotExist = errors.New("does not exist")
	// ErrNotDir reports that a path exists but is not a directory.
	ErrNotDir = errors.New("is not a directory")
)

// ValidateDir checks that path exists on fsys and is a directory.
func ValidateDir(fsys afero.Fs, path string) error {
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("the path '%s' %w", path, ErrNotExist)
		}
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("'%s' %w", path, ErrNotDir)
	}
	return nil
}

// Find returns the regular files directly inside dir whose extension equals
// ext, ignoring case. Hidden files are skipped. ext may be given with or
// without the leading dot.
// The returned paths are joined with dir and sorted lexically.
func Find(fsys afero.Fs, dir, ext string) ([]string, error) {
	if err := ValidateDir(fsys, dir); err != nil {
		return nil, err
	}

	// BasePathFs only accepts names under an absolute base.
	base, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	pattern := "*." + caseFoldPattern(strings.TrimPrefix(ext, "."))
	root := afero.NewIOFS(afero.NewBasePathFs(fsys, base))

	matches, err := doublestar.Glob(root, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("scanning %s for %s: %w", dir, pattern, err)
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		// Hidden files such as AppleDouble "._scan.png" are not documents.
		if strings.HasPrefix(path.Base(m), ".") {
			continue
		}
		paths = append(paths, filepath.Join(dir, filepath.FromSlash(m)))
	}
	sort.Strings(paths)
	return paths, nil
}

// caseFoldPattern turns "png" into "[pP][nN][gG]". Glob metacharacters in
// ext are escaped so they only ever match literally.
func caseFoldPattern(ext string) string {
	var b strings.Builder
	for _, r := range ext {
		lower, upper := unicode.ToLower(r), unicode.ToUpper(r)
		switch {
		case lower != upper:
			fmt.Fprintf(&b, "[%c%c]", lower, upper)
		case strings.ContainsRune(`*?[]{}\`, r):
			b.WriteRune('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
