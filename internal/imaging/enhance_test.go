// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grayFrom builds an origin-anchored gray image from rows of pixel values.
func grayFrom(rows ...[]uint8) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		copy(g.Pix[y*g.Stride:], row)
	}
	return g
}

func uniform(w, h int, v uint8) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for i := range g.Pix {
		g.Pix[i] = v
	}
	return g
}

func TestGrayscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.Set(5, 5, color.RGBA{R: 255, A: 255})
	src.Set(6, 5, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	g := Grayscale(src)

	assert.Equal(t, image.Rect(0, 0, 2, 1), g.Bounds())
	assert.Equal(t, uint8(76), g.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(255), g.GrayAt(1, 0).Y)
}

func TestGrayscaleIgnoresAlpha(t *testing.T) {
	tests := []struct {
		name string
		c    color.NRGBA
		want uint8
	}{
		{name: "transparent white", c: color.NRGBA{R: 255, G: 255, B: 255, A: 0}, want: 255},
		{name: "half transparent red", c: color.NRGBA{R: 255, A: 128}, want: 76},
		{name: "opaque black", c: color.NRGBA{A: 255}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
			src.SetNRGBA(0, 0, tt.c)
			assert.Equal(t, tt.want, Grayscale(src).GrayAt(0, 0).Y)
		})
	}
}

func TestGrayscaleOfGrayCopiesSubImage(t *testing.T) {
	g := grayFrom([]uint8{1, 2, 3}, []uint8{4, 5, 6})
	sub := g.SubImage(image.Rect(1, 0, 3, 2)).(*image.Gray)

	out := Grayscale(sub)
	assert.Equal(t, image.Rect(0, 0, 2, 2), out.Bounds())
	assert.Equal(t, []uint8{2, 3, 5, 6}, out.Pix)
}

func TestBrightness(t *testing.T) {
	g := grayFrom([]uint8{0, 50, 100})
	out := Brightness(g, 4)
	assert.Equal(t, []uint8{0, 200, 255}, out.Pix)
	assert.Equal(t, []uint8{0, 50, 100}, g.Pix, "input must not be modified")
}

func TestContrast(t *testing.T) {
	g := grayFrom([]uint8{0, 100})
	out := Contrast(g, 2)
	// mean 50: 50 + 2*(0-50) clamps to 0, 50 + 2*(100-50) = 150
	assert.Equal(t, []uint8{0, 150}, out.Pix)
}

func TestSharpnessUniformImageUnchanged(t *testing.T) {
	g := uniform(4, 4, 90)
	assert.Equal(t, g.Pix, Sharpness(g, 4).Pix)
}

func TestSharpen(t *testing.T) {
	g := grayFrom(
		[]uint8{0, 0, 0},
		[]uint8{0, 10, 0},
		[]uint8{0, 0, 0},
	)
	out := Sharpen(g)
	assert.Equal(t, uint8(20), out.GrayAt(1, 1).Y)
	assert.Equal(t, uint8(0), out.GrayAt(0, 0).Y)

	flat := uniform(5, 5, 77)
	assert.Equal(t, flat.Pix, Sharpen(flat).Pix)
}

func TestConvolveCopiesTinyImages(t *testing.T) {
	g := grayFrom([]uint8{1, 2}, []uint8{3, 4})
	out := convolve(g, sharpenKernel)
	assert.Equal(t, g.Pix, out.Pix)
}

func TestEnhance(t *testing.T) {
	tests := []struct {
		name string
		v    uint8
		want uint8
	}{
		{name: "white stays white", v: 255, want: 255},
		{name: "black stays black", v: 0, want: 0},
		{name: "mid gray saturates", v: 128, want: 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewRGBA(image.Rect(0, 0, 6, 4))
			for y := 0; y < 4; y++ {
				for x := 0; x < 6; x++ {
					src.Set(x, y, color.RGBA{R: tt.v, G: tt.v, B: tt.v, A: 255})
				}
			}
			out := Enhance(src)
			require.Equal(t, image.Rect(0, 0, 6, 4), out.Bounds())
			for _, p := range out.Pix {
				assert.Equal(t, tt.want, p)
			}
		})
	}
}

func TestEnhanceEmptyImage(t *testing.T) {
	out := Enhance(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	assert.Equal(t, 0, out.Bounds().Dx())
}
