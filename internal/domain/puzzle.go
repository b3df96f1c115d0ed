package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateDomino indicates a puzzle with two equal dominoes.
	ErrDuplicateDomino = errors.New("puzzle contains at least one duplicate domino")
	// ErrSpaceCountMismatch indicates a board whose space count differs from
	// the total number of domino halves.
	ErrSpaceCountMismatch = errors.New("board space count does not match domino halves")
)

// Puzzle is a full Pips puzzle: a game board plus an ordered domino list.
type Puzzle struct {
	board    *Board
	dominoes []Domino
}

// NewPuzzle validates that the dominoes are pairwise distinct and that they
// cover the board's spaces exactly.
func NewPuzzle(board *Board, dominoes []Domino) (*Puzzle, error) {
	for i := range dominoes {
		for j := i + 1; j < len(dominoes); j++ {
			if dominoes[i].Equal(dominoes[j]) {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateDomino, dominoes[i])
			}
		}
	}
	needed := 0
	for _, d := range dominoes {
		needed += d.Len()
	}
	if needed != board.NumSpaces() {
		return nil, fmt.Errorf("%w: board has %d spaces, dominoes need %d",
			ErrSpaceCountMismatch, board.NumSpaces(), needed)
	}
	owned := make([]Domino, len(dominoes))
	copy(owned, dominoes)
	return &Puzzle{board: board, dominoes: owned}, nil
}

// ParsePuzzle builds a puzzle from text holding board text and a domino list
// separated by a blank line.
func ParsePuzzle(text string) (*Puzzle, error) {
	boardText, dominoesText, err := splitAtLastBlankLine(text)
	if err != nil {
		return nil, fmt.Errorf("puzzle text: %w", err)
	}
	board, err := ParseBoard(boardText)
	if err != nil {
		return nil, err
	}
	dominoes, err := ParseDominoes(dominoesText)
	if err != nil {
		return nil, err
	}
	return NewPuzzle(board, dominoes)
}

// NumSpaces is the total number of spaces on the board.
func (p *Puzzle) NumSpaces() int { return p.board.NumSpaces() }

// NumRegions is the total number of condition regions on the board.
func (p *Puzzle) NumRegions() int { return p.board.NumRegions() }

// NumDominoes is the number of domino pieces for the puzzle.
func (p *Puzzle) NumDominoes() int { return len(p.dominoes) }

// SortedSpaces returns the board's spaces in row-major order.
func (p *Puzzle) SortedSpaces() []Space { return p.board.SortedSpaces() }

// SortedRegions returns the board's regions in their canonical order.
func (p *Puzzle) SortedRegions() []Region { return p.board.SortedRegions() }

// Condition returns the condition attached to one of the board's regions.
func (p *Puzzle) Condition(r Region) (Condition, error) { return p.board.Condition(r) }

// ContainsSpace reports whether the space is playable on the board.
func (p *Puzzle) ContainsSpace(s Space) bool { return p.board.ContainsSpace(s) }

// Dominoes returns the puzzle's dominoes in their original input order,
// which downstream variable naming follows.
func (p *Puzzle) Dominoes() []Domino {
	out := make([]Domino, len(p.dominoes))
	copy(out, p.dominoes)
	return out
}

func (p *Puzzle) String() string {
	return fmt.Sprintf("<Puzzle with %d spaces, %d regions, and %d dominoes>",
		p.NumSpaces(), p.NumRegions(), p.NumDominoes())
}
