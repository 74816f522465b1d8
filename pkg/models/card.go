package models

// Face identifies which side of a card an image belongs to.
type Face int

const (
	// FaceUnknown doubles as "unspecified" for pages whose side has not
	// been declared and as the sentinel for out-of-range card lookups.
	FaceUnknown Face = iota
	FaceFront
	FaceBack
)

func (f Face) String() string {
	switch f {
	case FaceFront:
		return "front"
	case FaceBack:
		return "back"
	default:
		return "unknown"
	}
}

// Opposite returns the other side of a card. Unknown stays unknown.
func (f Face) Opposite() Face {
	switch f {
	case FaceFront:
		return FaceBack
	case FaceBack:
		return FaceFront
	default:
		return FaceUnknown
	}
}

// PageDescriptor describes one sheet page in display order. Width and
// Height are in points for PDF sources and pixels for raster sources;
// only their ratio matters to the duplex flip-axis decision, so the
// unit never leaks into the card math.
type PageDescriptor struct {
	Index  int
	Face   Face
	Skip   bool
	Width  float64
	Height float64
}

// CardIdentity pairs a front card with its back. Two cards with the
// same LogicalID and opposite faces are the same physical card.
type CardIdentity struct {
	Face      Face
	LogicalID int
}

// UnknownCard is returned for any card index that does not resolve to
// a real cell on a real page.
var UnknownCard = CardIdentity{Face: FaceUnknown, LogicalID: 0}
