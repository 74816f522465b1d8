package models

import "fmt"

// Settings is the fully resolved extraction configuration. It is
// validated once, at the boundary, and the addressing and extraction
// code trusts it from then on.
type Settings struct {
	Mode        LayoutMode
	Grid        Grid
	Margins     CropMargins
	GutterWidth int
	Rotation    Rotation
	CardCrop    CropMargins
}

func validRotation(deg int) bool {
	switch deg {
	case 0, 90, 180, 270:
		return true
	}
	return false
}

// Validate rejects configurations the card math cannot give sensible
// answers for. All downstream code assumes a validated Settings.
func (s Settings) Validate() error {
	if s.Grid.Rows < 1 || s.Grid.Columns < 1 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", s.Grid.Rows, s.Grid.Columns)
	}
	if s.GutterWidth < 0 {
		return fmt.Errorf("gutter width must be non-negative, got %d", s.GutterWidth)
	}
	if s.Mode.Kind == LayoutGutterFold {
		axis := s.Grid.SplitAxisCount(s.Mode.Orientation)
		if axis%2 != 0 {
			return fmt.Errorf("gutter-fold %s layout needs an even number of %s, got %d",
				s.Mode.Orientation, splitAxisName(s.Mode.Orientation), axis)
		}
	}
	if !validRotation(s.Rotation.Front) || !validRotation(s.Rotation.Back) {
		return fmt.Errorf("rotation must be one of 0/90/180/270, got front=%d back=%d",
			s.Rotation.Front, s.Rotation.Back)
	}
	return nil
}

func splitAxisName(o GutterOrientation) string {
	if o == GutterHorizontal {
		return "rows"
	}
	return "columns"
}
