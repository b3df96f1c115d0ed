package solver

import (
	"context"
	"errors"
	"testing"
	"time"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/formulate"
	"svw.info/pips/internal/ports"
	"svw.info/pips/internal/program"
)

func formulated(t *testing.T, text string) *formulate.Formulation {
	t.Helper()
	p, err := domain.ParsePuzzle(text)
	if err != nil {
		t.Fatalf("ParsePuzzle failed: %v", err)
	}
	f, err := formulate.Formulate(p)
	if err != nil {
		t.Fatalf("Formulate failed: %v", err)
	}
	return f
}

func TestBacktrackingSolvesPuzzles(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"single asymmetric", "AB\n\nA 3\nB 4\n\n34"},
		{"single symmetric", "AB\n\nA 2\nB 2\n\n22"},
		{"equal and distinct rows", "AA\nBB\n\nA =\nB =/=\n\n33 25"},
		{"strict inequalities", "AB\nAB\n\nA >5\nB <8\n\n34 52"},
		{"with free spaces", "AA#\n###\n\nA 4\n\n13 05 26"},
	}
	s := NewBacktracking()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := formulated(t, tc.text)
			a, st, err := s.Solve(context.Background(), f.Program)
			if err != nil {
				t.Fatalf("Solve failed: %v", err)
			}
			if st.Nodes == 0 {
				t.Error("stats should count search nodes")
			}
			for _, c := range f.Program.Constraints() {
				if !c.Satisfied(a) {
					t.Errorf("constraint %s violated", c.Name)
				}
			}
		})
	}
}

func TestBacktrackingReportsInfeasible(t *testing.T) {
	// The only domino sums to 7, the region conditions demand 3 and 5.
	f := formulated(t, "AB\n\nA 3\nB 5\n\n34")
	_, _, err := NewBacktracking().Solve(context.Background(), f.Program)
	if !errors.Is(err, ports.ErrInfeasible) {
		t.Fatalf("err = %v, want ErrInfeasible", err)
	}
}

func TestBacktrackingHonorsCancellation(t *testing.T) {
	// A wide program with two almost-compatible cardinality constraints
	// keeps the search busy long enough to notice cancellation.
	p := program.New()
	vars := make([]program.Var, 26)
	for i := range vars {
		v, err := p.NewBinaryVar(string(rune('a' + i)))
		if err != nil {
			t.Fatal(err)
		}
		vars[i] = v
	}
	sum := program.NewLinExpr()
	for _, v := range vars {
		sum.Add(v)
	}
	if err := p.AddConstraint("half", sum, program.SenseEqual, 13); err != nil {
		t.Fatal(err)
	}
	other := program.NewLinExpr()
	for _, v := range vars {
		other.AddTerm(v, 2)
	}
	if err := p.AddConstraint("odd", other, program.SenseEqual, 27); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	_, _, err := NewBacktracking().Solve(ctx, p)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("cancellation took too long to observe")
	}
}
