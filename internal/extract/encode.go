package extract

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
)

const (
	// minOutputBytes guards against silently emitting a degenerate
	// raster (a 1x1 clamped cell encodes to well under this).
	minOutputBytes = 128

	// maxOutputBytes caps a single card image at 50MB.
	maxOutputBytes = 50 << 20
)

var (
	ErrOutputEmpty    = errors.New("extracted card image is empty or degenerate")
	ErrOutputTooLarge = errors.New("extracted card image exceeds size limit")
)

// EncodePNG serializes a card surface to PNG bytes and validates the
// result size. A failed bound check returns no bytes at all, never a
// partial image.
func EncodePNG(img *image.RGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode card image: %w", err)
	}
	if buf.Len() < minOutputBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrOutputEmpty, buf.Len())
	}
	if buf.Len() > maxOutputBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrOutputTooLarge, buf.Len())
	}
	return buf.Bytes(), nil
}
