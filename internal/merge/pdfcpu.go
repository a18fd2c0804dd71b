// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFCPUBackend merges and counts pages with pdfcpu.
type PDFCPUBackend struct {
	conf *model.Configuration
}

// NewPDFCPUBackend returns a backend using pdfcpu's default configuration.
// pdfcpu's on-disk config directory is disabled so that merging never
// writes outside the directories being processed.
func NewPDFCPUBackend() *PDFCPUBackend {
	api.DisableConfigDir()
	return &PDFCPUBackend{conf: model.NewDefaultConfiguration()}
}

// Merge writes parent's pages followed by child's pages to out.
func (b *PDFCPUBackend) Merge(parent, child, out string) error {
	if err := api.MergeCreateFile([]string{parent, child}, out, false, b.conf); err != nil {
		return fmt.Errorf("merging %s into %s: %w", child, parent, err)
	}
	return nil
}

// PageCount returns the number of pages in the PDF at path.
func (b *PDFCPUBackend) PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return n, nil
}
