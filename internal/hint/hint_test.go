package hint

import (
	"context"
	"strings"
	"testing"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/solver"
)

func TestHintNamesAConcretePlacement(t *testing.T) {
	p, err := domain.ParsePuzzle("AB\n\nA 3\nB 4\n\n34")
	if err != nil {
		t.Fatalf("ParsePuzzle failed: %v", err)
	}
	h := NewSolutionHinter(solver.NewBacktracking())
	got, found, err := h.Hint(context.Background(), p)
	if err != nil {
		t.Fatalf("Hint failed: %v", err)
	}
	if !found {
		t.Fatal("a solvable puzzle must yield a hint")
	}
	if got.Placement.Domino.String() != "3|4" {
		t.Errorf("hint domino = %s", got.Placement.Domino)
	}
	if !strings.HasPrefix(got.Message, "Place [3|4]") {
		t.Errorf("hint message = %q", got.Message)
	}
}

func TestHintOnInfeasiblePuzzle(t *testing.T) {
	p, err := domain.ParsePuzzle("AB\n\nA 3\nB 5\n\n34")
	if err != nil {
		t.Fatalf("ParsePuzzle failed: %v", err)
	}
	h := NewSolutionHinter(solver.NewBacktracking())
	_, found, err := h.Hint(context.Background(), p)
	if err != nil {
		t.Fatalf("Hint failed: %v", err)
	}
	if found {
		t.Fatal("an infeasible puzzle must yield no hint")
	}
}
