// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imaging applies the fixed scan-cleanup pipeline used before an image
// is written as a PDF page: grayscale, contrast, brightness, sharpness, and a
// final sharpening convolution. The enhancement factors are constants; the
// output is always an 8-bit single-channel image anchored at the origin.
package imaging

import (
	"image"
	"image/color"
)

const (
	// ContrastFactor scales each pixel's distance from the mean gray level.
	ContrastFactor = 2.0
	// BrightnessFactor scales pixel intensity against black.
	BrightnessFactor = 4.0
	// SharpnessFactor scales each pixel's distance from its smoothed value.
	SharpnessFactor = 4.0
)

// kernel is a 3x3 convolution applied with a divisor. Weights are row-major.
type kernel struct {
	weights [9]float64
	scale   float64
}

var (
	smoothKernel  = kernel{weights: [9]float64{1, 1, 1, 1, 5, 1, 1, 1, 1}, scale: 13}
	sharpenKernel = kernel{weights: [9]float64{-2, -2, -2, -2, 32, -2, -2, -2, -2}, scale: 16}
)

// Enhance runs the full pipeline on img and returns a new grayscale image.
// img is not modified.
func Enhance(img image.Image) *image.Gray {
	g := Grayscale(img)
	g = Contrast(g, ContrastFactor)
	g = Brightness(g, BrightnessFactor)
	g = Sharpness(g, SharpnessFactor)
	return Sharpen(g)
}

// Grayscale converts img to luma using the ITU-R 601 weights and rebases it
// at the origin. Alpha is ignored: luma comes from the straight,
// non-premultiplied color, so a transparent white pixel stays white.
func Grayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < b.Dy(); y++ {
			copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()], g.Pix[g.PixOffset(b.Min.X, b.Min.Y+y):])
		}
		return out
	}
	for y := 0; y < b.Dy(); y++ {
		row := out.Pix[y*out.Stride:]
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			row[x] = luma(c.R, c.G, c.B)
		}
	}
	return out
}

// luma is the 601 weighting in 16-bit fixed point, rounded.
func luma(r, g, b uint8) uint8 {
	return uint8((19595*uint32(r) + 38470*uint32(g) + 7471*uint32(b) + 1<<15) >> 16)
}

// Contrast blends g against a flat image of its rounded mean gray level.
func Contrast(g *image.Gray, factor float64) *image.Gray {
	mean := uint8(meanLevel(g) + 0.5)
	return blendWith(g, factor, func(int, int) uint8 { return mean })
}

// Brightness blends g against black, which scales every pixel by factor.
func Brightness(g *image.Gray, factor float64) *image.Gray {
	return blendWith(g, factor, func(int, int) uint8 { return 0 })
}

// Sharpness blends g against its smoothed copy.
func Sharpness(g *image.Gray, factor float64) *image.Gray {
	smooth := convolve(g, smoothKernel)
	return blendWith(g, factor, func(x, y int) uint8 {
		return smooth.Pix[y*smooth.Stride+x]
	})
}

// Sharpen applies the fixed sharpening kernel.
func Sharpen(g *image.Gray) *image.Gray {
	return convolve(g, sharpenKernel)
}

// blendWith computes degenerate + factor*(pixel - degenerate) for each pixel,
// truncating toward zero and clamping to [0,255].
func blendWith(g *image.Gray, factor float64, degenerate func(x, y int) uint8) *image.Gray {
	b := g.Bounds()
	out := image.NewGray(b)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			d := float64(degenerate(x, y))
			v := d + factor*(float64(g.Pix[y*g.Stride+x])-d)
			out.Pix[y*out.Stride+x] = clampTrunc(v)
		}
	}
	return out
}

// convolve applies k to the interior of g. Edge rows and columns are copied
// unchanged, as is the whole image when it is narrower or shorter than the
// kernel.
func convolve(g *image.Gray, k kernel) *image.Gray {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(b)
	for y := 0; y < h; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+w], g.Pix[y*g.Stride:y*g.Stride+w])
	}
	if w < 3 || h < 3 {
		return out
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			var sum float64
			i := 0
			for dy := -1; dy <= 1; dy++ {
				row := (y + dy) * g.Stride
				for dx := -1; dx <= 1; dx++ {
					sum += k.weights[i] * float64(g.Pix[row+x+dx])
					i++
				}
			}
			out.Pix[y*out.Stride+x] = clampRound(sum / k.scale)
		}
	}
	return out
}

func meanLevel(g *image.Gray) float64 {
	b := g.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0
	}
	var total int
	for y := 0; y < b.Dy(); y++ {
		for _, p := range g.Pix[y*g.Stride : y*g.Stride+b.Dx()] {
			total += int(p)
		}
	}
	return float64(total) / float64(n)
}

func clampTrunc(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

func clampRound(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}
