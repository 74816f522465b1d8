// Package geometry holds the pixel math shared by the preview and
// export paths: page-to-card crop rectangles, the extraction DPI, and
// raster rotation. All positions are computed in float64 and truncated
// to pixels the same way regardless of source, so a vector PDF and a
// raster scan of the same sheet produce identical rectangles.
package geometry

import (
	"image"
	"math"

	"github.com/sheetslice/sheetslice/pkg/models"
)

const (
	// ExtractionDPI is the fixed reference resolution all crop and
	// position pixel values are defined at.
	ExtractionDPI = 300

	// PointsPerInch converts PDF user-space units.
	PointsPerInch = 72
)

// RenderScale is the zoom factor that brings a PDF page from points to
// pixels at the extraction DPI.
func RenderScale() float64 {
	return float64(ExtractionDPI) / PointsPerInch
}

// CardRect computes the source rectangle of the card at (row, col)
// within a rendered page surface, after the page-level crop margins.
// In gutter-fold mode with a non-zero gutter the split axis loses the
// gutter band between the two halves; every other configuration is a
// plain uniform subdivision. The result is clamped inside the surface
// and never degenerates below 1x1.
func CardRect(surfaceW, surfaceH int, s models.Settings, row, col int) image.Rectangle {
	left := float64(s.Margins.Left)
	top := float64(s.Margins.Top)
	croppedW := float64(surfaceW - s.Margins.Left - s.Margins.Right)
	croppedH := float64(surfaceH - s.Margins.Top - s.Margins.Bottom)

	var x, y, w, h float64

	if s.Mode.Kind == models.LayoutGutterFold && s.GutterWidth > 0 {
		gutter := float64(s.GutterWidth)
		if s.Mode.Orientation == models.GutterVertical {
			halfCols := s.Grid.Columns / 2
			halfSpan := (croppedW - gutter) / 2
			w = halfSpan / float64(halfCols)
			h = croppedH / float64(s.Grid.Rows)
			if col < halfCols {
				x = left + float64(col)*w
			} else {
				x = left + halfSpan + gutter + float64(col-halfCols)*w
			}
			y = top + float64(row)*h
		} else {
			halfRows := s.Grid.Rows / 2
			halfSpan := (croppedH - gutter) / 2
			w = croppedW / float64(s.Grid.Columns)
			h = halfSpan / float64(halfRows)
			x = left + float64(col)*w
			if row < halfRows {
				y = top + float64(row)*h
			} else {
				y = top + halfSpan + gutter + float64(row-halfRows)*h
			}
		}
	} else {
		w = croppedW / float64(s.Grid.Columns)
		h = croppedH / float64(s.Grid.Rows)
		x = left + float64(col)*w
		y = top + float64(row)*h
	}

	return clampRect(int(math.Floor(x)), int(math.Floor(y)), int(math.Floor(w)), int(math.Floor(h)), surfaceW, surfaceH)
}

// clampRect forces the rectangle inside [0,surfaceW)x[0,surfaceH) with
// at least one pixel of extent. A badly configured margin or gutter
// shrinks the cell rather than faulting.
func clampRect(x, y, w, h, surfaceW, surfaceH int) image.Rectangle {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x > surfaceW-1 {
		x = surfaceW - 1
	}
	if y > surfaceH-1 {
		y = surfaceH - 1
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if x+w > surfaceW {
		w = surfaceW - x
	}
	if y+h > surfaceH {
		h = surfaceH - y
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return image.Rect(x, y, x+w, y+h)
}

// InnerCrop applies a secondary per-card crop to an already extracted
// card rectangle. If the crop would leave no pixels the crop is
// skipped and the original bounds are returned. The raw edge
// coordinates are compared before building the rectangle: image.Rect
// swaps an inverted min/max pair, which would turn an over-deep crop
// into a positive-width garbage band.
func InnerCrop(bounds image.Rectangle, crop models.CropMargins) image.Rectangle {
	x0 := bounds.Min.X + crop.Left
	y0 := bounds.Min.Y + crop.Top
	x1 := bounds.Max.X - crop.Right
	y1 := bounds.Max.Y - crop.Bottom
	if x0 >= x1 || y0 >= y1 {
		return bounds
	}
	return image.Rect(x0, y0, x1, y1)
}
