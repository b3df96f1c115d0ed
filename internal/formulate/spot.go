package formulate

import (
	"errors"
	"fmt"
	"sort"

	"svw.info/pips/internal/domain"
)

// ErrNotAdjacent indicates a spot built from two spaces that are not
// grid neighbors.
var ErrNotAdjacent = errors.New("spot must be made up of two adjacent spaces")

// Spot is a canonically ordered pair of adjacent board spaces where one
// domino could be placed. The first space always sorts before the second,
// so each physical location is exactly one Spot.
type Spot struct {
	first, second domain.Space
}

// NewSpot builds a spot from two spaces at Manhattan distance one.
func NewSpot(a, b domain.Space) (Spot, error) {
	dr, dc := b.R-a.R, b.C-a.C
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	if dr+dc != 1 {
		return Spot{}, fmt.Errorf("%w: %s and %s", ErrNotAdjacent, a, b)
	}
	if b.Less(a) {
		a, b = b, a
	}
	return Spot{first: a, second: b}, nil
}

// First is the spot's row-major smaller space.
func (s Spot) First() domain.Space { return s.first }

// Second is the spot's row-major larger space.
func (s Spot) Second() domain.Space { return s.second }

// IsHorizontal reports whether the two spaces share a row.
func (s Spot) IsHorizontal() bool { return s.first.R == s.second.R }

// Less orders spots by their space pairs.
func (s Spot) Less(o Spot) bool {
	if s.first != o.first {
		return s.first.Less(o.first)
	}
	return s.second.Less(o.second)
}

func (s Spot) String() string {
	return fmt.Sprintf("%s:%s", s.first, s.second)
}

// SortedSpots enumerates every spot on the puzzle's board by scanning each
// space's four neighbors, deduplicating, and sorting for determinism.
func SortedSpots(p *domain.Puzzle) []Spot {
	seen := make(map[Spot]struct{})
	for _, space := range p.SortedSpaces() {
		for _, neighbor := range space.Neighbors() {
			if !p.ContainsSpace(neighbor) {
				continue
			}
			spot, err := NewSpot(space, neighbor)
			if err != nil {
				continue // unreachable: neighbors are adjacent by construction
			}
			seen[spot] = struct{}{}
		}
	}
	spots := make([]Spot, 0, len(seen))
	for s := range seen {
		spots = append(spots, s)
	}
	sort.Slice(spots, func(i, j int) bool { return spots[i].Less(spots[j]) })
	return spots
}
