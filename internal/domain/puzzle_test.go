package domain

import (
	"errors"
	"testing"
)

const samplePuzzle = "AAB\nCDD\n\nA 5\nB =\nC <3\nD =/=\n\n12 34 05"

func TestParsePuzzle(t *testing.T) {
	p, err := ParsePuzzle(samplePuzzle)
	if err != nil {
		t.Fatalf("ParsePuzzle failed: %v", err)
	}
	if p.NumSpaces() != 6 || p.NumRegions() != 4 || p.NumDominoes() != 3 {
		t.Fatalf("got %d spaces, %d regions, %d dominoes", p.NumSpaces(), p.NumRegions(), p.NumDominoes())
	}
	ds := p.Dominoes()
	if ds[0].String() != "1|2" || ds[1].String() != "3|4" || ds[2].String() != "0|5" {
		t.Errorf("Dominoes() = %v", ds)
	}
}

func TestParsePuzzleRejectsDuplicateDominoes(t *testing.T) {
	// 3|4 and 4|3 are the same piece regardless of display order.
	if _, err := ParsePuzzle("AB\nAB\n\nA 5\nB 6\n\n34 43"); !errors.Is(err, ErrDuplicateDomino) {
		t.Fatalf("err = %v, want ErrDuplicateDomino", err)
	}
}

func TestParsePuzzleRejectsCountMismatch(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"too few dominoes", "AAB\nCDD\n\nA 5\nB =\nC <3\nD =/=\n\n12 34"},
		{"too many dominoes", "AB\n\nA 5\nB 6\n\n12 34"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParsePuzzle(tc.text); !errors.Is(err, ErrSpaceCountMismatch) {
				t.Fatalf("err = %v, want ErrSpaceCountMismatch", err)
			}
		})
	}
}

func TestParsePuzzleNeedsDominoSection(t *testing.T) {
	if _, err := ParsePuzzle("AB"); !errors.Is(err, ErrMissingBlankLine) {
		t.Fatalf("err = %v, want ErrMissingBlankLine", err)
	}
}

func TestNewPuzzleOwnsDominoSlice(t *testing.T) {
	b, err := ParseBoard("AB\n\nA 5\nB 6")
	if err != nil {
		t.Fatalf("ParseBoard failed: %v", err)
	}
	input := []Domino{mustDomino(t, 2, 3)}
	p, err := NewPuzzle(b, input)
	if err != nil {
		t.Fatalf("NewPuzzle failed: %v", err)
	}
	input[0] = mustDomino(t, 6, 6)
	if got := p.Dominoes()[0].String(); got != "2|3" {
		t.Fatalf("puzzle dominoes aliased caller slice: %s", got)
	}
}

func mustDomino(t *testing.T, a, b int) Domino {
	t.Helper()
	d, err := NewDomino(a, b)
	if err != nil {
		t.Fatal(err)
	}
	return d
}
