package verifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/formulate"
	"svw.info/pips/internal/program"
	"svw.info/pips/internal/solver"
)

func solved(t *testing.T, text string) (*formulate.Formulation, program.Assignment) {
	t.Helper()
	p, err := domain.ParsePuzzle(text)
	if err != nil {
		t.Fatalf("ParsePuzzle failed: %v", err)
	}
	f, err := formulate.Formulate(p)
	if err != nil {
		t.Fatalf("Formulate failed: %v", err)
	}
	a, _, err := solver.NewBacktracking().Solve(context.Background(), f.Program)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	return f, a
}

func TestVerifyAcceptsSolverOutput(t *testing.T) {
	f, a := solved(t, "AA\nBB\n\nA =\nB =/=\n\n33 25")
	ok, violations, err := New().Verify(context.Background(), f, a)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !ok {
		t.Fatalf("valid solution rejected: %v", violations)
	}
}

func TestVerifyFlagsUnplacedDomino(t *testing.T) {
	f, a := solved(t, "AB\n\nA 3\nB 4\n\n34")
	for i := range a {
		a[i] = 0
	}
	ok, violations, err := New().Verify(context.Background(), f, a)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if ok {
		t.Fatal("empty assignment must not verify")
	}
	var sawUse, sawCover bool
	for _, v := range violations {
		if strings.Contains(v, "placed 0 times") {
			sawUse = true
		}
		if strings.Contains(v, "covered 0 times") {
			sawCover = true
		}
	}
	if !sawUse || !sawCover {
		t.Fatalf("violations = %v, want use and coverage reports", violations)
	}
}

func TestVerifyFlagsBrokenCondition(t *testing.T) {
	f, a := solved(t, "AB\n\nA 3\nB 4\n\n34")
	// Swap the orientation: the reversed placement breaks both sums.
	forward, _ := f.Program.Lookup("placement__3|4__1,1:1,2")
	reversed, _ := f.Program.Lookup("placement__4|3__1,1:1,2")
	a[forward.ID()], a[reversed.ID()] = a[reversed.ID()], a[forward.ID()]

	ok, violations, err := New().Verify(context.Background(), f, a)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if ok {
		t.Fatal("reversed placement must not verify")
	}
	if len(violations) == 0 || !strings.Contains(violations[0], "sums to") {
		t.Fatalf("violations = %v, want a sum report", violations)
	}
}

func TestVerifyRejectsNonBinaryValues(t *testing.T) {
	f, a := solved(t, "AB\n\nA 3\nB 4\n\n34")
	a[0] = 2
	_, _, err := New().Verify(context.Background(), f, a)
	if !errors.Is(err, program.ErrNotBinary) {
		t.Fatalf("err = %v, want ErrNotBinary", err)
	}
}
