// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
	"image"
	"strings"

	// Registered image decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat reports an input extension with no registered decoder.
var ErrUnsupportedFormat = errors.New("no image decoder available")

// formats maps a lowercase file extension to the format name its decoder
// registers with the image package.
var formats = map[string]string{
	"png":  "png",
	"jpg":  "jpeg",
	"jpeg": "jpeg",
	"gif":  "gif",
	"bmp":  "bmp",
	"tif":  "tiff",
	"tiff": "tiff",
	"webp": "webp",
}

// CheckFormat verifies that images with extension ext can be decoded. It is
// run once at startup, before any directory is scanned.
func CheckFormat(ext string) error {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	name, ok := formats[ext]
	if !ok {
		return fmt.Errorf("%q: %w", ext, ErrUnsupportedFormat)
	}
	if !decoderRegistered(name) {
		return fmt.Errorf("%q (format %s): %w", ext, name, ErrUnsupportedFormat)
	}
	return nil
}

// decoderRegistered reports whether the image package recognizes the
// signature of format name. Probing with the bare signature makes the
// registered decoder fail on its own error after sniffing succeeds.
func decoderRegistered(name string) bool {
	_, format, _ := image.DecodeConfig(strings.NewReader(signatures[name]))
	return format == name
}

// signatures holds the leading bytes each decoder registers for sniffing.
var signatures = map[string]string{
	"png":  "\x89PNG\r\n\x1a\n",
	"jpeg": "\xff\xd8",
	"gif":  "GIF89a",
	"bmp":  "BM????\x00\x00\x00\x00",
	"tiff": "II*\x00",
	"webp": "RIFF????WEBPVP8",
}
