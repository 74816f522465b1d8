// Package importer builds the ordered page sequence the card math
// runs over. PDF files are probed with pdfcpu for per-page geometry
// without rendering anything; raster images contribute one page each.
package importer

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/sheetslice/sheetslice/internal/render"
	"github.com/sheetslice/sheetslice/pkg/logger"
	"github.com/sheetslice/sheetslice/pkg/models"
)

var rasterExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// Result pairs the page descriptors with the sources that can render
// them; Pages[i] is rendered by Sources[i].
type Result struct {
	Pages   []models.PageDescriptor
	Sources []render.PageSource
}

// DropSkipped removes pages flagged as skipped, keeping descriptors
// and sources aligned and reindexing the survivors.
func (r *Result) DropSkipped() {
	pages := r.Pages[:0]
	sources := r.Sources[:0]
	for i, p := range r.Pages {
		if p.Skip {
			continue
		}
		p.Index = len(pages)
		pages = append(pages, p)
		sources = append(sources, r.Sources[i])
	}
	r.Pages = pages
	r.Sources = sources
}

// ImportPath expands a file or directory into an ordered page
// sequence. Directories are walked in lexical order; page order within
// a PDF is document order. Duplex mode assigns alternating front/back
// faces; other modes leave faces unspecified.
func ImportPath(path string, mode models.LayoutMode, log *logger.Logger) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input %s: %w", path, err)
	}

	var files []string
	if info.IsDir() {
		err := filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return fmt.Errorf("error accessing path %s: %w", p, err)
			}
			if fi.IsDir() {
				log.Debug("scanning directory: %s", p)
				return nil
			}
			ext := strings.ToLower(filepath.Ext(p))
			if ext == ".pdf" || rasterExtensions[ext] {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(files)
	} else {
		files = []string{path}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no PDF or image files found in %s", path)
	}

	var pages []models.PageDescriptor
	var sources []render.PageSource
	for _, file := range files {
		if strings.ToLower(filepath.Ext(file)) == ".pdf" {
			p, s, err := importPDF(file, len(pages), log)
			if err != nil {
				return nil, err
			}
			pages = append(pages, p...)
			sources = append(sources, s...)
			continue
		}
		p, s, err := importImage(file, len(pages), log)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
		sources = append(sources, s)
	}

	AssignFaces(pages, mode)
	return &Result{Pages: pages, Sources: sources}, nil
}

func importPDF(path string, startIndex int, log *logger.Logger) ([]models.PageDescriptor, []render.PageSource, error) {
	dims, err := api.PageDimsFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read page dimensions of %s: %w", path, err)
	}
	log.Debug("imported %s: %d pages", path, len(dims))

	pages := make([]models.PageDescriptor, 0, len(dims))
	sources := make([]render.PageSource, 0, len(dims))
	for i, dim := range dims {
		pages = append(pages, models.PageDescriptor{
			Index:  startIndex + i,
			Width:  dim.Width,
			Height: dim.Height,
		})
		sources = append(sources, render.PageSource{
			Kind:    render.SourcePDF,
			Path:    path,
			PDFPage: i,
		})
	}
	return pages, sources, nil
}

func importImage(path string, index int, log *logger.Logger) (models.PageDescriptor, render.PageSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.PageDescriptor{}, render.PageSource{}, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return models.PageDescriptor{}, render.PageSource{}, fmt.Errorf("failed to read image header of %s: %w", path, err)
	}
	log.Debug("imported %s: %dx%d", path, cfg.Width, cfg.Height)

	return models.PageDescriptor{
			Index:  index,
			Width:  float64(cfg.Width),
			Height: float64(cfg.Height),
		}, render.PageSource{
			Kind: render.SourceImage,
			Path: path,
		}, nil
}

// AssignFaces applies the default face policy for the layout mode:
// duplex alternates front/back in display order, everything else
// leaves the face unspecified for the addressing math to derive.
func AssignFaces(pages []models.PageDescriptor, mode models.LayoutMode) {
	if mode.Kind != models.LayoutDuplex {
		return
	}
	for i := range pages {
		if pages[i].Face != models.FaceUnknown {
			continue
		}
		if i%2 == 0 {
			pages[i].Face = models.FaceFront
		} else {
			pages[i].Face = models.FaceBack
		}
	}
}
