package domain

import (
	"errors"
	"fmt"
)

// The topmost row on a Pips board is always row 1, and the leftmost column
// is always column 1.
const (
	TopmostRow     = 1
	LeftmostColumn = 1
)

// ErrSpaceOffGrid indicates a space above the topmost row or left of the
// leftmost column.
var ErrSpaceOffGrid = errors.New("space coordinates start at row 1, column 1")

// Space is the row and column coordinates for one space on a Pips board.
type Space struct {
	R int // Row number
	C int // Column number
}

// NewSpace returns a space after checking that it sits at or below the
// origin row and at or right of the origin column.
func NewSpace(r, c int) (Space, error) {
	if r < TopmostRow {
		return Space{}, fmt.Errorf("%w: row %d", ErrSpaceOffGrid, r)
	}
	if c < LeftmostColumn {
		return Space{}, fmt.Errorf("%w: column %d", ErrSpaceOffGrid, c)
	}
	return Space{R: r, C: c}, nil
}

// NewSpaceUnchecked returns a space without bounds checking. It is meant for
// intermediate arithmetic results whose validity is decided by a later
// membership test, not by the bounds themselves.
func NewSpaceUnchecked(r, c int) Space {
	return Space{R: r, C: c}
}

// ShiftBy returns the space offset by the given row and column deltas. The
// result is unchecked for the same reason as NewSpaceUnchecked.
func (s Space) ShiftBy(deltaR, deltaC int) Space {
	return Space{R: s.R + deltaR, C: s.C + deltaC}
}

// Neighbors returns the four grid-adjacent spaces, unchecked.
func (s Space) Neighbors() [4]Space {
	return [4]Space{
		s.ShiftBy(+1, 0),
		s.ShiftBy(-1, 0),
		s.ShiftBy(0, +1),
		s.ShiftBy(0, -1),
	}
}

// Less orders spaces row-major: by row first, then by column.
func (s Space) Less(o Space) bool {
	if s.R != o.R {
		return s.R < o.R
	}
	return s.C < o.C
}

func (s Space) String() string {
	return fmt.Sprintf("%d,%d", s.R, s.C)
}
