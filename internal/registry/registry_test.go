package registry_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sheetslice/sheetslice/internal/registry"
	"github.com/sheetslice/sheetslice/pkg/models"
)

var _ = Describe("SkipSet", func() {
	var skips *registry.SkipSet
	grid := models.Grid{Rows: 2, Columns: 4}
	gutter := models.GutterFold(models.GutterVertical)

	BeforeEach(func() {
		skips = registry.NewSkipSet()
	})

	It("defaults every cell to not skipped", func() {
		Expect(skips.IsSkipped(0, 0, 0, models.FaceUnknown)).To(BeFalse())
		Expect(skips.IsSkipped(3, 1, 2, models.FaceFront)).To(BeFalse())
	})

	Context("wildcard face matching", func() {
		It("matches either face for an entry stored without one", func() {
			skips.Toggle(0, 1, 1, models.FaceUnknown)
			Expect(skips.IsSkipped(0, 1, 1, models.FaceFront)).To(BeTrue())
			Expect(skips.IsSkipped(0, 1, 1, models.FaceBack)).To(BeTrue())
			Expect(skips.IsSkipped(0, 1, 1, models.FaceUnknown)).To(BeTrue())
		})

		It("matches a faceless query against a faced entry", func() {
			skips.Toggle(0, 1, 1, models.FaceBack)
			Expect(skips.IsSkipped(0, 1, 1, models.FaceUnknown)).To(BeTrue())
			Expect(skips.IsSkipped(0, 1, 1, models.FaceBack)).To(BeTrue())
			Expect(skips.IsSkipped(0, 1, 1, models.FaceFront)).To(BeFalse())
		})

		It("never matches across cells", func() {
			skips.Toggle(0, 1, 1, models.FaceUnknown)
			Expect(skips.IsSkipped(0, 1, 2, models.FaceUnknown)).To(BeFalse())
			Expect(skips.IsSkipped(1, 1, 1, models.FaceUnknown)).To(BeFalse())
		})
	})

	Context("pairing propagation", func() {
		It("mirrors a gutter-fold toggle onto the paired cell", func() {
			skips.ToggleWithPairing(0, 0, 0, models.FaceFront, grid, gutter)
			Expect(skips.IsSkipped(0, 0, 0, models.FaceFront)).To(BeTrue())
			Expect(skips.IsSkipped(0, 0, 3, models.FaceBack)).To(BeTrue())
			Expect(skips.IsSkipped(0, 0, 3, models.FaceFront)).To(BeFalse())
		})

		It("does not pair outside gutter-fold mode", func() {
			skips.ToggleWithPairing(0, 0, 0, models.FaceFront, grid, models.Simplex())
			Expect(skips.IsSkipped(0, 0, 0, models.FaceFront)).To(BeTrue())
			Expect(skips.IsSkipped(0, 0, 3, models.FaceUnknown)).To(BeFalse())
		})

		It("returns to the original state when applied twice", func() {
			skips.ToggleWithPairing(0, 1, 2, models.FaceUnknown, grid, gutter)
			skips.ToggleWithPairing(0, 1, 2, models.FaceUnknown, grid, gutter)
			Expect(skips.Len()).To(Equal(0))
		})

		It("pairs horizontal folds across rows", func() {
			horizontal := models.GutterFold(models.GutterHorizontal)
			tall := models.Grid{Rows: 4, Columns: 2}
			skips.ToggleWithPairing(1, 0, 1, models.FaceFront, tall, horizontal)
			Expect(skips.IsSkipped(1, 3, 1, models.FaceBack)).To(BeTrue())
		})
	})

	Context("row and column toggles", func() {
		It("skips a full row with its paired cells", func() {
			horizontal := models.GutterFold(models.GutterHorizontal)
			tall := models.Grid{Rows: 4, Columns: 2}
			skips.ToggleRowWithPairing(0, 0, models.FaceFront, tall, horizontal)
			for col := 0; col < tall.Columns; col++ {
				Expect(skips.IsSkipped(0, 0, col, models.FaceFront)).To(BeTrue())
				Expect(skips.IsSkipped(0, 3, col, models.FaceBack)).To(BeTrue())
			}
		})

		It("keeps a row toggle effective when pairs land in the same row", func() {
			// Vertical fold: every cell's pair is in the same row. A
			// naive toggle-each-with-pairing would cancel itself out.
			skips.ToggleRowWithPairing(0, 0, models.FaceUnknown, grid, gutter)
			for col := 0; col < grid.Columns; col++ {
				Expect(skips.IsSkipped(0, 0, col, models.FaceUnknown)).To(BeTrue(), "col %d", col)
			}
		})

		It("skips a full column with pairing", func() {
			skips.ToggleColumnWithPairing(0, 1, models.FaceFront, grid, gutter)
			for row := 0; row < grid.Rows; row++ {
				Expect(skips.IsSkipped(0, row, 1, models.FaceFront)).To(BeTrue())
				Expect(skips.IsSkipped(0, row, 2, models.FaceBack)).To(BeTrue())
			}
		})
	})

	It("clears to empty in one call", func() {
		skips.Toggle(0, 0, 0, models.FaceUnknown)
		skips.ToggleWithPairing(1, 1, 1, models.FaceFront, grid, gutter)
		skips.Clear()
		Expect(skips.Len()).To(Equal(0))
		Expect(skips.IsSkipped(0, 0, 0, models.FaceUnknown)).To(BeFalse())
	})
})

var _ = Describe("OverrideSet", func() {
	var overrides *registry.OverrideSet

	BeforeEach(func() {
		overrides = registry.NewOverrideSet()
	})

	It("returns FaceUnknown for cells without an override", func() {
		Expect(overrides.Get(0, 0, 0)).To(Equal(models.FaceUnknown))
	})

	It("keeps at most one override per cell", func() {
		overrides.Set(0, 1, 1, models.FaceFront)
		overrides.Set(0, 1, 1, models.FaceBack)
		Expect(overrides.Get(0, 1, 1)).To(Equal(models.FaceBack))
		Expect(overrides.Len()).To(Equal(1))
	})

	It("clears an override when set to FaceUnknown", func() {
		overrides.Set(0, 1, 1, models.FaceFront)
		overrides.Set(0, 1, 1, models.FaceUnknown)
		Expect(overrides.Len()).To(Equal(0))
	})

	Context("Toggle", func() {
		It("sets when absent and clears when repeated", func() {
			overrides.Toggle(0, 0, 0, models.FaceBack)
			Expect(overrides.Get(0, 0, 0)).To(Equal(models.FaceBack))
			overrides.Toggle(0, 0, 0, models.FaceBack)
			Expect(overrides.Get(0, 0, 0)).To(Equal(models.FaceUnknown))
		})

		It("replaces an override for the other face", func() {
			overrides.Toggle(0, 0, 0, models.FaceBack)
			overrides.Toggle(0, 0, 0, models.FaceFront)
			Expect(overrides.Get(0, 0, 0)).To(Equal(models.FaceFront))
		})
	})

	It("clears all overrides in one call", func() {
		overrides.Set(0, 0, 0, models.FaceFront)
		overrides.Set(1, 1, 1, models.FaceBack)
		overrides.Clear()
		Expect(overrides.Len()).To(Equal(0))
	})
})
