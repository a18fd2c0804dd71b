//go:build mage

package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"github.com/magefile/mage/mg"
)

// sampleDir holds generated fixtures for trying the subcommands by hand.
const sampleDir = "sample"

// Sample namespaces the fixture generators.
type Sample mg.Namespace

// All generates every fixture set under sample/.
func (Sample) All() {
	mg.Deps(Sample.Scans, Sample.PDFs, Sample.Sheet)
}

// Scans writes a few noisy PNG "scans" into sample/scans for deskkit convert.
func (Sample) Scans() error {
	dir := filepath.Join(sampleDir, "scans")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	for i, name := range []string{"receipt.png", "letter.PNG", "form.png"} {
		if err := writeScan(filepath.Join(dir, name), 300+i*50, 400, uint8(150+i*20)); err != nil {
			return err
		}
	}
	fmt.Println("Wrote", dir)
	return nil
}

// PDFs writes sample/parent and sample/child for deskkit merge. a.pdf has a
// match in both directories; b.pdf exists only as a child.
func (Sample) PDFs() error {
	files := []struct {
		dir   string
		name  string
		pages int
	}{
		{dir: "parent", name: "a.pdf", pages: 2},
		{dir: "child", name: "a.pdf", pages: 3},
		{dir: "child", name: "b.pdf", pages: 1},
	}
	for _, f := range files {
		dir := filepath.Join(sampleDir, f.dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		if err := writePDF(filepath.Join(dir, f.name), f.dir, f.pages); err != nil {
			return err
		}
	}
	fmt.Println("Wrote", filepath.Join(sampleDir, "parent"), "and", filepath.Join(sampleDir, "child"))
	return nil
}

// Sheet writes sample/bills.yaml for deskkit split --sheet.
func (Sample) Sheet() error {
	if err := os.MkdirAll(sampleDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", sampleDir, err)
	}
	const sheet = `people: [Alice, Bob]
bills:
  - name: Rent
    amount: 1000
    contributors: [Alice]
  - name: Wifi
    amount: 60
    contributors: [Alice, Bob]
`
	path := filepath.Join(sampleDir, "bills.yaml")
	if err := os.WriteFile(path, []byte(sheet), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Println("Wrote", path)
	return nil
}

// writeScan draws a light page with dark "text" bands.
func writeScan(path string, w, h int, paper uint8) error {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: paper, G: paper, B: paper - 10, A: 255}
			if (y/12)%3 == 0 && x > 20 && x < w-20 && (x*7+y*3)%11 != 0 {
				c = color.RGBA{R: 60, G: 60, B: 70, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

func writePDF(path, label string, pages int) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "B", 24)
	for i := 1; i <= pages; i++ {
		pdf.AddPage()
		pdf.Cell(0, 20, fmt.Sprintf("%s %s page %d", label, filepath.Base(path), i))
	}
	return pdf.OutputFileAndClose(path)
}
