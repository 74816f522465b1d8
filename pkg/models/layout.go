package models

import "fmt"

// LayoutKind selects the sheet-layout algorithm.
type LayoutKind int

const (
	LayoutSimplex LayoutKind = iota
	LayoutDuplex
	LayoutGutterFold
)

func (k LayoutKind) String() string {
	switch k {
	case LayoutSimplex:
		return "simplex"
	case LayoutDuplex:
		return "duplex"
	case LayoutGutterFold:
		return "gutter-fold"
	default:
		return fmt.Sprintf("layout(%d)", int(k))
	}
}

// FlipEdge is the physical edge a duplex sheet is flipped on when
// printed double-sided.
type FlipEdge int

const (
	FlipShortEdge FlipEdge = iota
	FlipLongEdge
)

func (e FlipEdge) String() string {
	if e == FlipLongEdge {
		return "long"
	}
	return "short"
}

// GutterOrientation is the direction of the fold line on a
// gutter-fold sheet. Vertical splits columns, horizontal splits rows.
type GutterOrientation int

const (
	GutterVertical GutterOrientation = iota
	GutterHorizontal
)

func (o GutterOrientation) String() string {
	if o == GutterHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// LayoutMode is a closed variant: Kind selects the algorithm, and only
// the field belonging to that kind is meaningful.
type LayoutMode struct {
	Kind        LayoutKind
	FlipEdge    FlipEdge          // duplex only
	Orientation GutterOrientation // gutter-fold only
}

func Simplex() LayoutMode {
	return LayoutMode{Kind: LayoutSimplex}
}

func Duplex(edge FlipEdge) LayoutMode {
	return LayoutMode{Kind: LayoutDuplex, FlipEdge: edge}
}

func GutterFold(orientation GutterOrientation) LayoutMode {
	return LayoutMode{Kind: LayoutGutterFold, Orientation: orientation}
}

func (m LayoutMode) String() string {
	switch m.Kind {
	case LayoutDuplex:
		return fmt.Sprintf("duplex(%s-edge)", m.FlipEdge)
	case LayoutGutterFold:
		return fmt.Sprintf("gutter-fold(%s)", m.Orientation)
	default:
		return m.Kind.String()
	}
}

// Grid is the card arrangement on a single page.
type Grid struct {
	Rows    int
	Columns int
}

func (g Grid) CardsPerPage() int {
	return g.Rows * g.Columns
}

// SplitAxisCount returns the grid count along the gutter-fold split
// axis: columns for a vertical gutter, rows for a horizontal one.
func (g Grid) SplitAxisCount(o GutterOrientation) int {
	if o == GutterHorizontal {
		return g.Rows
	}
	return g.Columns
}

// CropMargins are page-edge margins in pixels at the extraction DPI,
// applied to the whole page before grid subdivision.
type CropMargins struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// Rotation holds per-face rotation in degrees; only 0, 90, 180 and 270
// are valid.
type Rotation struct {
	Front int
	Back  int
}

// ForFace returns the rotation for the given face. Unknown faces
// rotate like fronts.
func (r Rotation) ForFace(f Face) int {
	if f == FaceBack {
		return r.Back
	}
	return r.Front
}
