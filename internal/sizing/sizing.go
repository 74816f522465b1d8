// Package sizing computes final card dimensions and image placement
// for preview and export pages. Everything here is pure arithmetic;
// DrawPlaced realizes a placement onto a canvas.
package sizing

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/sheetslice/sheetslice/internal/geometry"
)

// CardGeometry is the resolved output size of a card, including bleed
// and scale. It is recomputed on demand, never stored.
type CardGeometry struct {
	WidthInches  float64
	HeightInches float64
	ScaleFactor  float64
	BleedInches  float64
}

// PixelWidth returns the card width in pixels at the extraction DPI.
func (g CardGeometry) PixelWidth() int {
	return int(math.Round(g.WidthInches * geometry.ExtractionDPI))
}

// PixelHeight returns the card height in pixels at the extraction DPI.
func (g CardGeometry) PixelHeight() int {
	return int(math.Round(g.HeightInches * geometry.ExtractionDPI))
}

// Card derives the output geometry from a base card size, a bleed
// margin added on every edge, and a scale percentage.
func Card(baseWidthIn, baseHeightIn, bleedIn, scalePercent float64) CardGeometry {
	factor := scalePercent / 100
	return CardGeometry{
		WidthInches:  (baseWidthIn + 2*bleedIn) * factor,
		HeightInches: (baseHeightIn + 2*bleedIn) * factor,
		ScaleFactor:  factor,
		BleedInches:  bleedIn,
	}
}

// PlaceMode selects how an image is sized into its target rectangle.
type PlaceMode int

const (
	// PlaceActualSize draws at native size, centered. The image may
	// overflow the target; that is the point of "actual size".
	PlaceActualSize PlaceMode = iota
	// PlaceFitToCard scales to fit entirely inside the target,
	// preserving aspect ratio and letterboxing the slack.
	PlaceFitToCard
	// PlaceFillCard scales to fully cover the target, preserving
	// aspect ratio; the overflow on the non-binding axis is cropped
	// by centering.
	PlaceFillCard
)

// Placement is the draw size and offset of an image within a target
// rectangle, in the same units as the inputs. Offsets may be negative
// when the drawn image overflows the target.
type Placement struct {
	DrawWidth  float64
	DrawHeight float64
	OffsetX    float64
	OffsetY    float64
}

// Place computes where and how large to draw an image of the given
// size within a target rectangle.
func Place(imageW, imageH, targetW, targetH float64, mode PlaceMode) Placement {
	drawW, drawH := imageW, imageH

	switch mode {
	case PlaceFitToCard:
		scale := math.Min(targetW/imageW, targetH/imageH)
		drawW, drawH = imageW*scale, imageH*scale
	case PlaceFillCard:
		scale := math.Max(targetW/imageW, targetH/imageH)
		drawW, drawH = imageW*scale, imageH*scale
	}

	return Placement{
		DrawWidth:  drawW,
		DrawHeight: drawH,
		OffsetX:    (targetW - drawW) / 2,
		OffsetY:    (targetH - drawH) / 2,
	}
}

// DrawPlaced scales src into dst according to a placement expressed in
// inches. Fit/fill use Catmull-Rom resampling; out-of-bounds regions
// are clipped by the destination bounds.
func DrawPlaced(dst *image.RGBA, src image.Image, pl Placement) {
	x0 := int(math.Round(pl.OffsetX * geometry.ExtractionDPI))
	y0 := int(math.Round(pl.OffsetY * geometry.ExtractionDPI))
	w := int(math.Round(pl.DrawWidth * geometry.ExtractionDPI))
	h := int(math.Round(pl.DrawHeight * geometry.ExtractionDPI))
	target := image.Rect(x0, y0, x0+w, y0+h).Add(dst.Bounds().Min)

	xdraw.CatmullRom.Scale(dst, target, src, src.Bounds(), xdraw.Over, nil)
}
