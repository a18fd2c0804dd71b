// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge appends the pages of child PDFs onto parent PDFs that share
// the same file name. Matching is by exact basename, extension included.
// A parent is replaced only after its merged copy is fully written.
package merge

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/otiai10/copy"
	"github.com/spf13/afero"

	"github.com/pdiddy/deskkit/internal/fsutil"
	"github.com/pdiddy/deskkit/internal/scan"
	"github.com/pdiddy/deskkit/pkg/types"
)

const (
	pdfExt    = "pdf"
	backupExt = ".bak"
)

var (
	ErrNoChildFiles      = errors.New("no PDF files found in child directory")
	ErrNoParentFiles     = errors.New("no PDF files found in parent directory")
	ErrDuplicateBasename = errors.New("duplicate file name in parent directory")
)

// Backend concatenates and inspects PDF documents on disk.
type Backend interface {
	// Merge writes parent's pages followed by child's pages to out.
	Merge(parent, child, out string) error
	PageCount(path string) (int, error)
}

// Result summarizes a merge run.
type Result struct {
	ChildFiles  int
	ParentFiles int
	Merged      int
	Unmatched   []string
	Failed      []string
	// Statuses holds the outcome for every child, keyed by basename.
	Statuses map[string]types.MergeStatus
}

// Index maps each parent file's basename to its path. Two parents with the
// same basename are an error, since a child could not be paired with one of
// them unambiguously.
func Index(parentPaths []string) (map[string]string, error) {
	index := make(map[string]string, len(parentPaths))
	for _, p := range parentPaths {
		name := filepath.Base(p)
		if prev, ok := index[name]; ok {
			return nil, fmt.Errorf("%w: %s (%s and %s)", ErrDuplicateBasename, name, prev, p)
		}
		index[name] = p
	}
	return index, nil
}

// Pair matches child paths against a parent index. Children keep their
// input order; unmatched holds basenames with no parent.
func Pair(childPaths []string, index map[string]string) (pairs []types.DocumentPair, unmatched []string) {
	for _, c := range childPaths {
		name := filepath.Base(c)
		parent, ok := index[name]
		if !ok {
			unmatched = append(unmatched, name)
			continue
		}
		pairs = append(pairs, types.DocumentPair{Name: name, ChildPath: c, ParentPath: parent})
	}
	return pairs, unmatched
}

// Merger runs pairwise merges against a Backend.
type Merger struct {
	backend Backend
	fsys    afero.Fs
	backup  bool
	log     *log.Logger
}

// New creates a Merger. When backup is set each parent is copied to
// <parent>.bak before it is replaced. A nil logger discards output.
func New(backend Backend, backup bool, logger *log.Logger) *Merger {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Merger{backend: backend, fsys: afero.NewOsFs(), backup: backup, log: logger}
}

// MergePair appends the child onto the parent in place. Failures are logged
// and reported as MergeFailed; the parent is untouched in that case.
func (m *Merger) MergePair(pair types.DocumentPair) types.MergeStatus {
	m.log.Info("match found", "file", pair.Name)

	if err := m.mergePair(pair); err != nil {
		m.log.Error("failed to merge", "file", pair.Name, "err", err)
		return types.MergeFailed
	}

	m.log.Info("merged", "file", pair.Name)
	return types.MergeDone
}

func (m *Merger) mergePair(pair types.DocumentPair) error {
	parentPages, err := m.backend.PageCount(pair.ParentPath)
	if err != nil {
		return fmt.Errorf("reading parent: %w", err)
	}
	childPages, err := m.backend.PageCount(pair.ChildPath)
	if err != nil {
		return fmt.Errorf("reading child: %w", err)
	}

	if m.backup {
		backup := pair.ParentPath + backupExt
		if err := copy.Copy(pair.ParentPath, backup, copy.Options{PreserveTimes: true}); err != nil {
			return fmt.Errorf("backing up parent to %s: %w", backup, err)
		}
		m.log.Debug("backed up parent", "path", backup)
	}

	return fsutil.Replace(pair.ParentPath, func(tmp string) error {
		if err := m.backend.Merge(pair.ParentPath, pair.ChildPath, tmp); err != nil {
			return err
		}
		got, err := m.backend.PageCount(tmp)
		if err != nil {
			return fmt.Errorf("reading merged output: %w", err)
		}
		if want := parentPages + childPages; got != want {
			return fmt.Errorf("merged output has %d pages, want %d", got, want)
		}
		return nil
	})
}

// Run pairs the PDFs of childDir with those of parentDir and merges every
// match. ErrNoChildFiles and ErrNoParentFiles report an empty side; other
// errors mean the directories could not be read or indexed.
func (m *Merger) Run(childDir, parentDir string) (Result, error) {
	var result Result

	children, err := scan.Find(m.fsys, childDir, pdfExt)
	if err != nil {
		return result, fmt.Errorf("scanning child directory: %w", err)
	}
	parents, err := scan.Find(m.fsys, parentDir, pdfExt)
	if err != nil {
		return result, fmt.Errorf("scanning parent directory: %w", err)
	}
	result.ChildFiles = len(children)
	result.ParentFiles = len(parents)

	if len(children) == 0 {
		return result, fmt.Errorf("%w: %s", ErrNoChildFiles, childDir)
	}
	if len(parents) == 0 {
		return result, fmt.Errorf("%w: %s", ErrNoParentFiles, parentDir)
	}

	m.log.Info("found PDF files", "child", len(children), "parent", len(parents))

	index, err := Index(parents)
	if err != nil {
		return result, err
	}

	result.Statuses = make(map[string]types.MergeStatus, len(children))
	pairs, unmatched := Pair(children, index)
	for _, name := range unmatched {
		m.log.Warn("no match found", "file", name)
		result.Statuses[name] = types.MergeUnmatched
	}
	result.Unmatched = unmatched

	for _, pair := range pairs {
		status := m.MergePair(pair)
		result.Statuses[pair.Name] = status
		switch status {
		case types.MergeDone:
			result.Merged++
		case types.MergeFailed:
			result.Failed = append(result.Failed, pair.Name)
		}
	}
	return result, nil
}
