package sizing_test

import (
	"image"
	"image/color"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sheetslice/sheetslice/internal/sizing"
)

var _ = Describe("Card", func() {
	It("adds bleed on every edge before scaling", func() {
		geom := sizing.Card(2.5, 3.5, 0.125, 100)
		Expect(geom.WidthInches).To(BeNumerically("~", 2.75, 1e-9))
		Expect(geom.HeightInches).To(BeNumerically("~", 3.75, 1e-9))
		Expect(geom.ScaleFactor).To(Equal(1.0))
		Expect(geom.BleedInches).To(Equal(0.125))
	})

	It("scales the bled size by the percentage", func() {
		geom := sizing.Card(2.5, 3.5, 0.125, 80)
		Expect(geom.WidthInches).To(BeNumerically("~", 2.2, 1e-9))
		Expect(geom.HeightInches).To(BeNumerically("~", 3.0, 1e-9))
	})

	It("converts to pixels at the extraction DPI", func() {
		geom := sizing.Card(2.5, 3.5, 0.125, 100)
		Expect(geom.PixelWidth()).To(Equal(825))
		Expect(geom.PixelHeight()).To(Equal(1125))
	})

	It("handles zero bleed", func() {
		geom := sizing.Card(2.5, 3.5, 0, 100)
		Expect(geom.WidthInches).To(Equal(2.5))
		Expect(geom.HeightInches).To(Equal(3.5))
	})
})

var _ = Describe("Place", func() {
	Context("actual size", func() {
		It("centers without scaling", func() {
			pl := sizing.Place(1, 2, 3, 4, sizing.PlaceActualSize)
			Expect(pl.DrawWidth).To(Equal(1.0))
			Expect(pl.DrawHeight).To(Equal(2.0))
			Expect(pl.OffsetX).To(Equal(1.0))
			Expect(pl.OffsetY).To(Equal(1.0))
		})

		It("allows negative offsets when the image overflows the target", func() {
			pl := sizing.Place(3, 4, 2, 2, sizing.PlaceActualSize)
			Expect(pl.DrawWidth).To(Equal(3.0))
			Expect(pl.OffsetX).To(Equal(-0.5))
			Expect(pl.OffsetY).To(Equal(-1.0))
		})
	})

	Context("fit to card", func() {
		It("letterboxes the non-binding axis", func() {
			pl := sizing.Place(4, 2, 2, 2, sizing.PlaceFitToCard)
			Expect(pl.DrawWidth).To(Equal(2.0))
			Expect(pl.DrawHeight).To(Equal(1.0))
			Expect(pl.OffsetX).To(Equal(0.0))
			Expect(pl.OffsetY).To(Equal(0.5))
		})

		It("never exceeds the target bounds", func() {
			pl := sizing.Place(2.6, 3.7, 2.75, 3.75, sizing.PlaceFitToCard)
			Expect(pl.DrawWidth).To(BeNumerically("<=", 2.75+1e-9))
			Expect(pl.DrawHeight).To(BeNumerically("<=", 3.75+1e-9))
			Expect(pl.OffsetX).To(BeNumerically(">=", 0))
			Expect(pl.OffsetY).To(BeNumerically(">=", 0))
		})

		It("preserves the aspect ratio", func() {
			pl := sizing.Place(300, 400, 2.75, 3.75, sizing.PlaceFitToCard)
			Expect(pl.DrawWidth / pl.DrawHeight).To(BeNumerically("~", 0.75, 1e-9))
		})
	})

	Context("fill card", func() {
		It("covers the target and crops the overflow by centering", func() {
			pl := sizing.Place(4, 2, 2, 2, sizing.PlaceFillCard)
			Expect(pl.DrawWidth).To(Equal(4.0))
			Expect(pl.DrawHeight).To(Equal(2.0))
			Expect(pl.OffsetX).To(Equal(-1.0))
			Expect(pl.OffsetY).To(Equal(0.0))
		})

		It("always covers both axes", func() {
			pl := sizing.Place(2.6, 3.9, 2.75, 3.75, sizing.PlaceFillCard)
			Expect(pl.DrawWidth).To(BeNumerically(">=", 2.75-1e-9))
			Expect(pl.DrawHeight).To(BeNumerically(">=", 3.75-1e-9))
		})
	})
})

var _ = Describe("DrawPlaced", func() {
	It("draws the scaled image inside the placement rectangle", func() {
		src := image.NewRGBA(image.Rect(0, 0, 100, 100))
		red := color.RGBA{R: 255, A: 255}
		for y := 0; y < 100; y++ {
			for x := 0; x < 100; x++ {
				src.SetRGBA(x, y, red)
			}
		}

		// 1x1in target at 300 DPI with a 0.5x0.5in centered draw
		dst := image.NewRGBA(image.Rect(0, 0, 300, 300))
		pl := sizing.Place(1, 1, 1, 1, sizing.PlaceFitToCard)
		pl.DrawWidth, pl.DrawHeight = 0.5, 0.5
		pl.OffsetX, pl.OffsetY = 0.25, 0.25
		sizing.DrawPlaced(dst, src, pl)

		Expect(dst.RGBAAt(150, 150)).To(Equal(red))
		Expect(dst.RGBAAt(10, 10).A).To(Equal(uint8(0)))
	})
})
