package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrSpaceTaken indicates a space added to a board twice.
	ErrSpaceTaken = errors.New("that space is already on the board")
	// ErrOverlappingRegions indicates two condition regions sharing a space.
	ErrOverlappingRegions = errors.New("condition regions on the board may not overlap")
	// ErrNoSpaces indicates a board layout with no playable cells.
	ErrNoSpaces = errors.New("board layout contains no spaces")
	// ErrBadConditionLine indicates a malformed region condition line.
	ErrBadConditionLine = errors.New("region condition line must be one character and one condition")
	// ErrDuplicateConditionChar indicates two conditions for one region.
	ErrDuplicateConditionChar = errors.New("multiple conditions for one region character")
	// ErrUnknownRegionChar indicates a condition for a character that never
	// appears in the layout.
	ErrUnknownRegionChar = errors.New("region has a condition but no board spaces")
	// ErrUnknownRegion indicates a condition lookup for a region that is not
	// on the board.
	ErrUnknownRegion = errors.New("region is not on the board")
	// ErrMissingBlankLine indicates puzzle or board text without the blank
	// line that separates its blocks.
	ErrMissingBlankLine = errors.New("expected a blank line between sections")
)

type regionCondition struct {
	region    Region
	condition Condition
}

// Board is the set of playable spaces for a Pips puzzle together with its
// condition regions. Build one with ParseBoard, or with NewBoard plus
// AddSpace and AddRegionWithCondition.
type Board struct {
	spaces  map[Space]struct{}
	regions []regionCondition // kept sorted by region
}

// NewBoard returns an empty board with no spaces or regions.
func NewBoard() *Board {
	return &Board{spaces: make(map[Space]struct{})}
}

// AddSpace adds one new space to the board.
func (b *Board) AddSpace(s Space) error {
	if _, ok := b.spaces[s]; ok {
		return fmt.Errorf("%w: %s", ErrSpaceTaken, s)
	}
	b.spaces[s] = struct{}{}
	return nil
}

// AddRegionWithCondition attaches a condition region to the board. Regions
// may not overlap; the parser cannot produce overlapping regions, but boards
// assembled directly can, so the invariant is checked here.
func (b *Board) AddRegionWithCondition(r Region, c Condition) error {
	for _, rc := range b.regions {
		if r.OverlapsWith(rc.region) {
			return ErrOverlappingRegions
		}
	}
	b.regions = append(b.regions, regionCondition{region: r, condition: c})
	sort.Slice(b.regions, func(i, j int) bool {
		return b.regions[i].region.Less(b.regions[j].region)
	})
	return nil
}

// splitAtLastBlankLine splits text at the final blank-line boundary after
// trimming trailing whitespace.
func splitAtLastBlankLine(text string) (string, string, error) {
	trimmed := strings.TrimRight(text, " \t\r\n")
	i := strings.LastIndex(trimmed, "\n\n")
	if i < 0 {
		return "", "", ErrMissingBlankLine
	}
	return trimmed[:i], trimmed[i+2:], nil
}

// parseBoardLayout walks an ASCII board layout and maps each non-whitespace
// character to a 1-indexed space. Leading whitespace is significant for
// column alignment, so lines are not trimmed. After the walk the coordinates
// are shifted so the occupied bounding box starts at the origin.
func parseBoardLayout(layout string) (map[Space]byte, error) {
	spaces := make(map[Space]byte)
	for i, line := range strings.Split(layout, "\n") {
		line = strings.TrimSuffix(line, "\r")
		for j := 0; j < len(line); j++ {
			ch := line[j]
			if ch == ' ' || ch == '\t' {
				continue
			}
			spaces[Space{R: TopmostRow + i, C: LeftmostColumn + j}] = ch
		}
	}
	if len(spaces) == 0 {
		return nil, ErrNoSpaces
	}

	rMin, cMin := int(^uint(0)>>1), int(^uint(0)>>1)
	for s := range spaces {
		if s.R < rMin {
			rMin = s.R
		}
		if s.C < cMin {
			cMin = s.C
		}
	}
	if rMin != TopmostRow || cMin != LeftmostColumn {
		shifted := make(map[Space]byte, len(spaces))
		for s, ch := range spaces {
			shifted[s.ShiftBy(TopmostRow-rMin, LeftmostColumn-cMin)] = ch
		}
		spaces = shifted
	}
	return spaces, nil
}

// parseRegionConditions reads one "<char> <condition>" pair per line.
func parseRegionConditions(text string) (map[byte]Condition, error) {
	conditions := make(map[byte]Condition)
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrBadConditionLine, line)
		}
		if len(fields[0]) != 1 {
			return nil, fmt.Errorf("%w: region identifier %q", ErrBadConditionLine, fields[0])
		}
		ch := fields[0][0]
		if _, ok := conditions[ch]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateConditionChar, string(ch))
		}
		c, err := ParseCondition(fields[1])
		if err != nil {
			return nil, err
		}
		conditions[ch] = c
	}
	return conditions, nil
}

// ParseBoard builds a board from text holding a layout block and a region
// condition block separated by a blank line.
func ParseBoard(text string) (*Board, error) {
	layoutText, conditionsText, err := splitAtLastBlankLine(text)
	if err != nil {
		return nil, fmt.Errorf("board text: %w", err)
	}

	spaces, err := parseBoardLayout(layoutText)
	if err != nil {
		return nil, err
	}
	conditions, err := parseRegionConditions(conditionsText)
	if err != nil {
		return nil, err
	}

	chars := make(map[byte]bool, len(spaces))
	for _, ch := range spaces {
		chars[ch] = true
	}
	for ch := range conditions {
		if !chars[ch] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRegionChar, string(ch))
		}
	}

	board := NewBoard()
	for s := range spaces {
		if err := board.AddSpace(s); err != nil {
			return nil, err
		}
	}
	// Deterministic assembly order keeps error reporting stable.
	var orderedChars []byte
	for ch := range conditions {
		orderedChars = append(orderedChars, ch)
	}
	sort.Slice(orderedChars, func(i, j int) bool { return orderedChars[i] < orderedChars[j] })
	for _, ch := range orderedChars {
		var members []Space
		for s, spaceChar := range spaces {
			if spaceChar == ch {
				members = append(members, s)
			}
		}
		region, err := NewRegion(members)
		if err != nil {
			return nil, fmt.Errorf("region %q: %w", string(ch), err)
		}
		if err := board.AddRegionWithCondition(region, conditions[ch]); err != nil {
			return nil, err
		}
	}
	return board, nil
}

// NumSpaces is the total number of spaces on the board.
func (b *Board) NumSpaces() int { return len(b.spaces) }

// NumRegions is the total number of condition regions on the board.
func (b *Board) NumRegions() int { return len(b.regions) }

// SortedSpaces returns the board's spaces in row-major order.
func (b *Board) SortedSpaces() []Space {
	out := make([]Space, 0, len(b.spaces))
	for s := range b.spaces {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// SortedRegions returns the board's regions in their canonical order.
func (b *Board) SortedRegions() []Region {
	out := make([]Region, len(b.regions))
	for i, rc := range b.regions {
		out[i] = rc.region
	}
	return out
}

// ContainsSpace reports whether the space is playable on this board.
func (b *Board) ContainsSpace(s Space) bool {
	_, ok := b.spaces[s]
	return ok
}

// ContainsRegion reports whether the region is one of the board's condition
// regions.
func (b *Board) ContainsRegion(r Region) bool {
	for _, rc := range b.regions {
		if rc.region.Equal(r) {
			return true
		}
	}
	return false
}

// Condition returns the condition attached to one of the board's regions.
func (b *Board) Condition(r Region) (Condition, error) {
	for _, rc := range b.regions {
		if rc.region.Equal(r) {
			return rc.condition, nil
		}
	}
	return Condition{}, ErrUnknownRegion
}

func (b *Board) String() string {
	return fmt.Sprintf("<Board with %d spaces and %d regions>", b.NumSpaces(), b.NumRegions())
}
