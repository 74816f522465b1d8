package render

import (
	"context"
	"fmt"
	"image"
	"sync"
)

// SourceKind distinguishes vector page sources from raster ones.
type SourceKind int

const (
	SourcePDF SourceKind = iota
	SourceImage
)

// PageSource names where one page of the sequence comes from: a page
// of a PDF file, or a standalone raster image.
type PageSource struct {
	Kind    SourceKind
	Path    string
	PDFPage int // zero-indexed, SourcePDF only
}

// Sources is a PageProvider over an ordered, possibly mixed list of
// page sources. PDF documents are opened lazily and shared across
// pages of the same file.
type Sources struct {
	pages []PageSource

	mu   sync.Mutex
	docs map[string]*Document
}

func NewSources(pages []PageSource) *Sources {
	return &Sources{pages: pages, docs: make(map[string]*Document)}
}

func (s *Sources) Len() int {
	return len(s.pages)
}

func (s *Sources) document(path string) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[path]; ok {
		return doc, nil
	}
	doc, err := OpenDocument(path)
	if err != nil {
		return nil, err
	}
	s.docs[path] = doc
	return doc, nil
}

// RenderPage produces the surface for the pageIndex-th page of the
// sequence. Raster sources decode at their native resolution; the DPI
// only drives PDF rasterization.
func (s *Sources) RenderPage(ctx context.Context, pageIndex int, dpi float64) (*image.RGBA, error) {
	if pageIndex < 0 || pageIndex >= len(s.pages) {
		return nil, fmt.Errorf("page index %d out of range (have %d pages)", pageIndex, len(s.pages))
	}
	src := s.pages[pageIndex]
	switch src.Kind {
	case SourceImage:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return DecodeImageFile(src.Path)
	default:
		doc, err := s.document(src.Path)
		if err != nil {
			return nil, err
		}
		return doc.RenderPage(ctx, src.PDFPage, dpi)
	}
}

// Close releases every document opened so far.
func (s *Sources) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for path, doc := range s.docs {
		if err := doc.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close %s: %w", path, err)
		}
		delete(s.docs, path)
	}
	return firstErr
}
