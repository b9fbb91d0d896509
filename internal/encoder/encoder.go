// Package encoder writes decoded placeholders to image files.
package encoder

import (
	"image"
)

// Encoder encodes a placeholder image to a specific file format.
type Encoder interface {
	// Format returns the output format name (e.g. "png", "jpeg").
	Format() string

	// Encode converts the image to bytes. Quality (1-100) is ignored by
	// lossless formats.
	Encode(img image.Image, quality int) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string
}
