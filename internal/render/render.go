// Package render produces page rasters for the extraction pipeline.
// PDF pages go through go-fitz at an explicit DPI; raster sources go
// through the stdlib and x/image decoders. Rendering a page is not
// reentrant per document, so each document serializes its renders;
// the returned surfaces are immutable and safe for concurrent reads.
package render

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"os"
	"sync"

	"github.com/gen2brain/go-fitz"

	// Raster page sources can arrive in any of these formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// PageProvider renders one page of a source sequence to a raw pixel
// surface at the requested DPI.
type PageProvider interface {
	RenderPage(ctx context.Context, pageIndex int, dpi float64) (*image.RGBA, error)
	Close() error
}

// Document wraps a fitz document as a PageProvider.
type Document struct {
	mu   sync.Mutex
	doc  *fitz.Document
	path string
}

// OpenDocument opens a PDF (or anything else MuPDF understands).
func OpenDocument(path string) (*Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %s: %w", path, err)
	}
	return &Document{doc: doc, path: path}, nil
}

// NumPages returns the page count of the document.
func (d *Document) NumPages() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.NumPage()
}

// RenderPage rasterizes a zero-indexed page at the given DPI. Renders
// against the same document are serialized; concurrent callers block.
func (d *Document) RenderPage(ctx context.Context, pageIndex int, dpi float64) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	img, err := d.doc.ImageDPI(pageIndex, dpi)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d of %s: %w", pageIndex, d.path, err)
	}
	return img, nil
}

func (d *Document) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Close()
}

// DecodeImageFile decodes a raster page source into an RGBA surface.
func DecodeImageFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return toRGBA(src), nil
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
