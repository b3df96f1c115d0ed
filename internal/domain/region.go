package domain

import (
	"errors"
	"sort"
)

var (
	// ErrEmptyRegion indicates a region built from zero spaces.
	ErrEmptyRegion = errors.New("region must contain at least one space")
	// ErrDuplicateSpaces indicates literal duplicates in a region's input.
	ErrDuplicateSpaces = errors.New("spaces inside a region must be unique")
	// ErrDisconnectedRegion indicates spaces that do not form one
	// 4-connected group.
	ErrDisconnectedRegion = errors.New("spaces in a region must all be connected")
)

// Region is a sorted, immutable set of one or more connected board spaces.
type Region struct {
	spaces []Space
}

// NewRegion builds a region from the given spaces. It fails on empty input,
// on duplicate spaces, and when the spaces are not 4-connected.
func NewRegion(spaces []Space) (Region, error) {
	if len(spaces) == 0 {
		return Region{}, ErrEmptyRegion
	}
	sorted := make([]Space, len(spaces))
	copy(sorted, spaces)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return Region{}, ErrDuplicateSpaces
		}
	}
	r := Region{spaces: sorted}
	if !r.connected() {
		return Region{}, ErrDisconnectedRegion
	}
	return r, nil
}

// connected runs a breadth-first search over 4-neighbor adjacency from the
// first space and reports whether every space was reached.
func (r Region) connected() bool {
	visited := make(map[Space]bool, len(r.spaces))
	frontier := []Space{r.spaces[0]}
	visited[r.spaces[0]] = true
	for len(frontier) > 0 {
		space := frontier[0]
		frontier = frontier[1:]
		for _, n := range space.Neighbors() {
			if r.Contains(n) && !visited[n] {
				visited[n] = true
				frontier = append(frontier, n)
			}
		}
	}
	return len(visited) == len(r.spaces)
}

// Spaces returns the region's spaces in sorted order. The returned slice is
// a copy and may be modified freely.
func (r Region) Spaces() []Space {
	out := make([]Space, len(r.spaces))
	copy(out, r.spaces)
	return out
}

// Len is the number of spaces in the region.
func (r Region) Len() int { return len(r.spaces) }

// Contains reports whether the space belongs to the region.
func (r Region) Contains(s Space) bool {
	i := sort.Search(len(r.spaces), func(i int) bool { return !r.spaces[i].Less(s) })
	return i < len(r.spaces) && r.spaces[i] == s
}

// OverlapsWith reports whether the two regions have any space in common.
func (r Region) OverlapsWith(o Region) bool {
	for _, s := range r.spaces {
		if o.Contains(s) {
			return true
		}
	}
	return false
}

// Equal compares regions by their sorted space sequences.
func (r Region) Equal(o Region) bool {
	if len(r.spaces) != len(o.spaces) {
		return false
	}
	for i := range r.spaces {
		if r.spaces[i] != o.spaces[i] {
			return false
		}
	}
	return true
}

// Less orders regions lexicographically over their sorted space sequences.
func (r Region) Less(o Region) bool {
	for i := 0; i < len(r.spaces) && i < len(o.spaces); i++ {
		if r.spaces[i] != o.spaces[i] {
			return r.spaces[i].Less(o.spaces[i])
		}
	}
	return len(r.spaces) < len(o.spaces)
}
