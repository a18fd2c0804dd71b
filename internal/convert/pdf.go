// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/jung-kurt/gofpdf"

	"github.com/pdiddy/deskkit/internal/fsutil"
)

const pageImageName = "page"

// PDFPageWriter writes an image as a single-page PDF with gofpdf. The page is
// sized so that one image pixel covers 1/dpi inch, and the image fills the
// page edge to edge.
type PDFPageWriter struct{}

// NewPDFPageWriter returns the gofpdf-backed page writer.
func NewPDFPageWriter() *PDFPageWriter {
	return &PDFPageWriter{}
}

// WritePage encodes img losslessly, places it on a page of matching size and
// replaces outPath with the result.
func (w *PDFPageWriter) WritePage(img image.Image, dpi float64, outPath string) error {
	b := img.Bounds()
	if b.Empty() {
		return errors.New("image has no pixels")
	}
	if dpi <= 0 {
		return fmt.Errorf("invalid resolution %v dpi", dpi)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encoding page image: %w", err)
	}

	width := float64(b.Dx()) * 72 / dpi
	height := float64(b.Dy()) * 72 / dpi

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(pageImageName, opts, &buf)
	pdf.ImageOptions(pageImageName, 0, 0, width, height, false, opts, 0, "")
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building page: %w", err)
	}

	return fsutil.Replace(outPath, func(tmpPath string) error {
		if err := pdf.OutputFileAndClose(tmpPath); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		return nil
	})
}
