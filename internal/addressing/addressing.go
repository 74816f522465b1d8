// Package addressing maps flat card indices to page positions and
// front/back identities under the simplex, duplex and gutter-fold
// sheet layouts. Everything here is pure arithmetic over validated
// inputs: invalid indices resolve to the Unknown sentinel, never to an
// error.
package addressing

import (
	"github.com/sheetslice/sheetslice/pkg/models"
)

// Position locates a card on its page.
type Position struct {
	PageIndex  int
	Row        int
	Column     int
	CardOnPage int
}

// Locate splits a flat card index into page/row/column coordinates.
// It does not check the page range; Identify does.
func Locate(cardIndex int, grid models.Grid) Position {
	cpp := grid.CardsPerPage()
	onPage := cardIndex % cpp
	return Position{
		PageIndex:  cardIndex / cpp,
		Row:        onPage / grid.Columns,
		Column:     onPage % grid.Columns,
		CardOnPage: onPage,
	}
}

// TotalCardCount returns the number of logical cards in the sequence.
// In duplex mode back pages duplicate fronts, so only front pages
// contribute; every other mode counts every page.
func TotalCardCount(mode models.LayoutMode, pages []models.PageDescriptor, grid models.Grid) int {
	cpp := grid.CardsPerPage()
	if cpp <= 0 {
		return 0
	}
	if mode.Kind == models.LayoutDuplex {
		fronts := 0
		for _, p := range pages {
			// Undeclared pages count as fronts, matching Identify.
			if p.Face != models.FaceBack {
				fronts++
			}
		}
		return fronts * cpp
	}
	return len(pages) * cpp
}

// Identify computes the face and logical id of the card at cardIndex.
// Out-of-range indices yield models.UnknownCard.
func Identify(cardIndex int, pages []models.PageDescriptor, grid models.Grid, mode models.LayoutMode) models.CardIdentity {
	cpp := grid.CardsPerPage()
	if cardIndex < 0 || cpp <= 0 {
		return models.UnknownCard
	}
	pos := Locate(cardIndex, grid)
	if pos.PageIndex >= len(pages) {
		return models.UnknownCard
	}

	switch mode.Kind {
	case models.LayoutDuplex:
		return identifyDuplex(cardIndex, pos, pages, grid, mode.FlipEdge)
	case models.LayoutGutterFold:
		return identifyGutterFold(pos, grid, mode.Orientation)
	default:
		face := pages[pos.PageIndex].Face
		if face == models.FaceUnknown {
			face = models.FaceFront
		}
		return models.CardIdentity{Face: face, LogicalID: cardIndex + 1}
	}
}

// IdentifyAs computes the identity the cell would have if its page
// declared the given face, regardless of what the page actually
// declares. Callers use it to honor per-cell face overrides: the
// overridden face selects the branch the logical id is derived from.
func IdentifyAs(cardIndex int, pages []models.PageDescriptor, grid models.Grid, mode models.LayoutMode, face models.Face) models.CardIdentity {
	id := Identify(cardIndex, pages, grid, mode)
	if id.Face == models.FaceUnknown || face == models.FaceUnknown || id.Face == face {
		return id
	}
	if mode.Kind != models.LayoutDuplex {
		// Simplex ids are position-flat and gutter-fold ids are
		// derived from the cell's half, so an override only
		// relabels the face.
		id.Face = face
		return id
	}
	pos := Locate(cardIndex, grid)
	relabeled := make([]models.PageDescriptor, len(pages))
	copy(relabeled, pages)
	relabeled[pos.PageIndex].Face = face
	return identifyDuplex(cardIndex, pos, relabeled, grid, mode.FlipEdge)
}

// flipRows reports whether the duplex mirror runs across rows (true)
// or columns (false). A portrait sheet flipped on its short edge
// mirrors rows; flipped on its long edge it mirrors columns. Landscape
// sheets are the reverse. Without known dimensions the long edge is
// assumed to be the vertical one.
func flipRows(edge models.FlipEdge, pageWidth, pageHeight float64) bool {
	if pageWidth > 0 && pageHeight > 0 {
		portrait := pageHeight > pageWidth
		if portrait {
			return edge == models.FlipShortEdge
		}
		return edge == models.FlipLongEdge
	}
	return edge == models.FlipLongEdge
}

// FlipCell mirrors a cell across the duplex flip axis.
func FlipCell(row, col int, grid models.Grid, mirrorRows bool) (int, int) {
	if mirrorRows {
		return grid.Rows - 1 - row, col
	}
	return row, grid.Columns - 1 - col
}

func flipCardOnPage(cardOnPage int, grid models.Grid, mirrorRows bool) int {
	row, col := FlipCell(cardOnPage/grid.Columns, cardOnPage%grid.Columns, grid, mirrorRows)
	return row*grid.Columns + col
}

func identifyDuplex(cardIndex int, pos Position, pages []models.PageDescriptor, grid models.Grid, edge models.FlipEdge) models.CardIdentity {
	page := pages[pos.PageIndex]
	cpp := grid.CardsPerPage()

	if page.Face != models.FaceBack {
		// Undeclared pages count as fronts in duplex mode.
		ordinal := 0
		for _, p := range pages[:pos.PageIndex] {
			if p.Face != models.FaceBack {
				ordinal++
			}
		}
		return models.CardIdentity{
			Face:      models.FaceFront,
			LogicalID: ordinal*cpp + pos.CardOnPage + 1,
		}
	}

	totalFront, totalBack, backOrdinal := 0, 0, 0
	for i, p := range pages {
		if p.Face == models.FaceBack {
			totalBack++
			if i < pos.PageIndex {
				backOrdinal++
			}
		} else {
			totalFront++
		}
	}

	mirrorRows := flipRows(edge, page.Width, page.Height)

	if totalBack == 1 && totalFront > 1 {
		// One shared back sheet: its cells tile across every front
		// sheet's cards. A cell that survives the mirror round-trip
		// pairs with the matching front card; anything else keeps an
		// independent back-only id.
		targetFrontCard := pos.CardOnPage % (totalFront * cpp)
		frontPage := targetFrontCard / cpp
		targetOnPage := targetFrontCard % cpp
		if flipCardOnPage(targetOnPage, grid, mirrorRows) == pos.CardOnPage {
			return models.CardIdentity{
				Face:      models.FaceBack,
				LogicalID: frontPage*cpp + targetOnPage + 1,
			}
		}
		return models.CardIdentity{Face: models.FaceBack, LogicalID: pos.CardOnPage + 1}
	}

	if totalFront == 0 {
		return models.CardIdentity{
			Face:      models.FaceBack,
			LogicalID: backOrdinal*cpp + pos.CardOnPage + 1,
		}
	}

	// Proportional page mapping covers uneven front/back counts.
	frontPage := backOrdinal * totalFront / totalBack
	logicalOnPage := flipCardOnPage(pos.CardOnPage, grid, mirrorRows)
	return models.CardIdentity{
		Face:      models.FaceBack,
		LogicalID: frontPage*cpp + logicalOnPage + 1,
	}
}

// BackHalf reports whether a gutter-fold cell lies in the back half of
// its page.
func BackHalf(row, col int, grid models.Grid, orientation models.GutterOrientation) bool {
	if orientation == models.GutterHorizontal {
		return row >= grid.Rows/2
	}
	return col >= grid.Columns/2
}

// PairedCell mirrors a gutter-fold cell across the fold line onto its
// opposite half. Both the skip pairing and the identity math go
// through this one transform.
func PairedCell(row, col int, grid models.Grid, orientation models.GutterOrientation) (int, int) {
	if orientation == models.GutterHorizontal {
		return grid.Rows - 1 - row, col
	}
	return row, grid.Columns - 1 - col
}

func identifyGutterFold(pos Position, grid models.Grid, orientation models.GutterOrientation) models.CardIdentity {
	perHalf := grid.CardsPerPage() / 2
	face := models.FaceFront
	row, col := pos.Row, pos.Column
	if BackHalf(row, col, grid, orientation) {
		face = models.FaceBack
		row, col = PairedCell(row, col, grid, orientation)
	}

	var withinHalf int
	if orientation == models.GutterHorizontal {
		withinHalf = row*grid.Columns + col
	} else {
		withinHalf = row*(grid.Columns/2) + col
	}
	return models.CardIdentity{
		Face:      face,
		LogicalID: pos.PageIndex*perHalf + withinHalf + 1,
	}
}
