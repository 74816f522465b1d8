// Package registry tracks per-cell skip flags and manual face
// overrides. Lookups are pure membership tests; mutation helpers keep
// gutter-fold front/back pairs synchronized by mirroring every toggle
// onto the paired cell.
package registry

import (
	"github.com/sheetslice/sheetslice/internal/addressing"
	"github.com/sheetslice/sheetslice/pkg/models"
)

// CellKey addresses a single grid cell on a single page. A FaceUnknown
// key matches either face of the cell.
type CellKey struct {
	Page int
	Row  int
	Col  int
	Face models.Face
}

// SkipSet is the set of cells excluded from extraction.
type SkipSet struct {
	entries map[CellKey]struct{}
}

func NewSkipSet() *SkipSet {
	return &SkipSet{entries: make(map[CellKey]struct{})}
}

// IsSkipped reports whether the cell is skipped for the given face.
// Entries stored without a face act as wildcards, and a FaceUnknown
// query matches entries for either face.
func (s *SkipSet) IsSkipped(page, row, col int, face models.Face) bool {
	if _, ok := s.entries[CellKey{page, row, col, models.FaceUnknown}]; ok {
		return true
	}
	if face == models.FaceUnknown {
		_, front := s.entries[CellKey{page, row, col, models.FaceFront}]
		_, back := s.entries[CellKey{page, row, col, models.FaceBack}]
		return front || back
	}
	_, ok := s.entries[CellKey{page, row, col, face}]
	return ok
}

func (s *SkipSet) toggle(key CellKey) {
	if _, ok := s.entries[key]; ok {
		delete(s.entries, key)
	} else {
		s.entries[key] = struct{}{}
	}
}

// Toggle flips the skip state of one cell, without pairing.
func (s *SkipSet) Toggle(page, row, col int, face models.Face) {
	s.toggle(CellKey{page, row, col, face})
}

// ToggleWithPairing flips the skip state of the cell and, in
// gutter-fold mode, of its mirror on the opposite half so that front
// and back stay in sync. The paired entry carries the opposite face
// when one was given.
func (s *SkipSet) ToggleWithPairing(page, row, col int, face models.Face, grid models.Grid, mode models.LayoutMode) {
	s.toggle(CellKey{page, row, col, face})
	if mode.Kind != models.LayoutGutterFold {
		return
	}
	pr, pc := addressing.PairedCell(row, col, grid, mode.Orientation)
	if pr == row && pc == col {
		return
	}
	s.toggle(CellKey{page, pr, pc, face.Opposite()})
}

// ToggleRowWithPairing toggles every cell in a row, each with pairing
// propagation. Cells whose pair lands back inside the same row are
// visited once, so a row toggle is never a no-op.
func (s *SkipSet) ToggleRowWithPairing(page, row int, face models.Face, grid models.Grid, mode models.LayoutMode) {
	s.toggleLine(page, face, grid, mode, func(i int) (int, int) { return row, i }, grid.Columns)
}

// ToggleColumnWithPairing toggles every cell in a column, each with
// pairing propagation.
func (s *SkipSet) ToggleColumnWithPairing(page, col int, face models.Face, grid models.Grid, mode models.LayoutMode) {
	s.toggleLine(page, face, grid, mode, func(i int) (int, int) { return i, col }, grid.Rows)
}

func (s *SkipSet) toggleLine(page int, face models.Face, grid models.Grid, mode models.LayoutMode, cell func(int) (int, int), n int) {
	type pos struct{ row, col int }
	seen := make(map[pos]bool, n*2)
	for i := 0; i < n; i++ {
		row, col := cell(i)
		if seen[pos{row, col}] {
			continue
		}
		seen[pos{row, col}] = true
		s.toggle(CellKey{page, row, col, face})
		if mode.Kind != models.LayoutGutterFold {
			continue
		}
		pr, pc := addressing.PairedCell(row, col, grid, mode.Orientation)
		if seen[pos{pr, pc}] {
			continue
		}
		seen[pos{pr, pc}] = true
		s.toggle(CellKey{page, pr, pc, face.Opposite()})
	}
}

// Clear resets the set to empty.
func (s *SkipSet) Clear() {
	s.entries = make(map[CellKey]struct{})
}

// Len returns the number of stored entries.
func (s *SkipSet) Len() int {
	return len(s.entries)
}

// cellPos keys overrides by position only; at most one override exists
// per cell.
type cellPos struct {
	Page int
	Row  int
	Col  int
}

// OverrideSet maps cells to a manually assigned face that takes
// precedence over the layout-derived one.
type OverrideSet struct {
	entries map[cellPos]models.Face
}

func NewOverrideSet() *OverrideSet {
	return &OverrideSet{entries: make(map[cellPos]models.Face)}
}

// Get returns the override for the cell, or FaceUnknown when none is
// set.
func (o *OverrideSet) Get(page, row, col int) models.Face {
	return o.entries[cellPos{page, row, col}]
}

// Set records an override, replacing any existing one for the cell.
func (o *OverrideSet) Set(page, row, col int, face models.Face) {
	if face == models.FaceUnknown {
		delete(o.entries, cellPos{page, row, col})
		return
	}
	o.entries[cellPos{page, row, col}] = face
}

// Toggle sets the override, or clears it when the cell already carries
// the same face.
func (o *OverrideSet) Toggle(page, row, col int, face models.Face) {
	key := cellPos{page, row, col}
	if o.entries[key] == face {
		delete(o.entries, key)
		return
	}
	o.Set(page, row, col, face)
}

// Clear resets the set to empty.
func (o *OverrideSet) Clear() {
	o.entries = make(map[cellPos]models.Face)
}

// Len returns the number of stored overrides.
func (o *OverrideSet) Len() int {
	return len(o.entries)
}
