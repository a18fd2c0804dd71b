// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a directory of scanned images into PDFs, one
// single-page document per image. Each image is cleaned up by the imaging
// pipeline before it is placed on the page. A file that cannot be decoded
// or written is logged and skipped; the batch always runs to the end.
package convert

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/deskkit/internal/imaging"
	"github.com/pdiddy/deskkit/pkg/types"
)

const (
	// DefaultOutputDir is the subdirectory of the input directory that
	// receives the PDFs.
	DefaultOutputDir = "output"
	// DefaultDPI is the resolution at which pages are emitted.
	DefaultDPI = 100.0
)

// PageWriter writes an image as a one-page document at outPath.
type PageWriter interface {
	WritePage(img image.Image, dpi float64, outPath string) error
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Failed    int
}

// Total returns the number of images processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any image failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Converter enhances images and writes them as PDF pages into one output
// directory.
type Converter struct {
	writer PageWriter
	outDir string
	dpi    float64
	log    *log.Logger
}

// New returns a Converter writing into outDir at DefaultDPI. A nil logger
// discards output.
func New(w PageWriter, outDir string, logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Converter{writer: w, outDir: outDir, dpi: DefaultDPI, log: logger}
}

// OutputPath returns the PDF path for src inside outDir: same base name,
// ".pdf" extension.
func OutputPath(outDir, src string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(outDir, base+".pdf")
}

// PrepareOutputDir creates <inputDir>/<sub> when it does not exist yet and
// reports whether it had to be created.
func PrepareOutputDir(inputDir, sub string) (dir string, created bool, err error) {
	if sub == "" {
		sub = DefaultOutputDir
	}
	dir = filepath.Join(inputDir, sub)
	if _, err := os.Stat(dir); err == nil {
		return dir, false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", false, fmt.Errorf("checking output directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return dir, true, nil
}

// ConvertFile converts one image. Failures are logged and reported through
// the returned status; no partial output is left behind.
func (c *Converter) ConvertFile(src string) types.ConversionStatus {
	name := filepath.Base(src)
	out := OutputPath(c.outDir, src)

	img, err := decode(src)
	if err != nil {
		c.log.Error("failed to process image", "file", name, "err", err)
		return types.ConversionFailed
	}

	page := imaging.Enhance(img)

	if err := c.writer.WritePage(page, c.dpi, out); err != nil {
		c.log.Error("failed to convert to PDF", "file", name, "err", err)
		return types.ConversionFailed
	}

	c.log.Info("converted", "file", name, "pdf", filepath.Base(out))
	return types.ConversionDone
}

// ConvertBatch converts srcs in order and returns the tally.
func (c *Converter) ConvertBatch(srcs []string) BatchResult {
	var result BatchResult
	for i, src := range srcs {
		c.log.Info(fmt.Sprintf("processing %d/%d", i+1, len(srcs)), "file", filepath.Base(src))
		switch c.ConvertFile(src) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	return result
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}
