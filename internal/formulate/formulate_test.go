package formulate

import (
	"strings"
	"testing"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/program"
)

func mustFormulate(t *testing.T, text string) *Formulation {
	t.Helper()
	p, err := domain.ParsePuzzle(text)
	if err != nil {
		t.Fatalf("ParsePuzzle failed: %v", err)
	}
	f, err := Formulate(p)
	if err != nil {
		t.Fatalf("Formulate failed: %v", err)
	}
	return f
}

func TestFormulateAsymmetricDominoTwoOrientations(t *testing.T) {
	f := mustFormulate(t, "AB\n\nA 3\nB 4\n\n34")

	if len(f.Spots) != 1 {
		t.Fatalf("got %d spots, want 1", len(f.Spots))
	}
	// One spot, but two placement variables: 3|4 and its reverse.
	if f.Program.NumVars() != 2 {
		t.Fatalf("NumVars() = %d, want 2", f.Program.NumVars())
	}
	if _, ok := f.Program.Lookup("placement__3|4__1,1:1,2"); !ok {
		t.Error("missing forward placement variable")
	}
	if _, ok := f.Program.Lookup("placement__4|3__1,1:1,2"); !ok {
		t.Error("missing reversed placement variable")
	}
}

func TestFormulateSymmetricDominoOneOrientation(t *testing.T) {
	f := mustFormulate(t, "AB\n\nA 2\nB 2\n\n22")
	if f.Program.NumVars() != 1 {
		t.Fatalf("NumVars() = %d, want 1", f.Program.NumVars())
	}
	if _, ok := f.Program.Lookup("placement__2|2__1,1:1,2"); !ok {
		t.Error("missing placement variable")
	}
}

func TestFormulateConstraintNames(t *testing.T) {
	f := mustFormulate(t, "AB\n\nA 3\nB 4\n\n34")
	names := make(map[string]bool)
	for _, c := range f.Program.Constraints() {
		names[c.Name] = true
	}
	for _, want := range []string{
		"use_domino__3|4",
		"cant_overlap__1,1",
		"cant_overlap__1,2",
		"number_condition__Rg1,1",
		"number_condition__Rg1,2",
	} {
		if !names[want] {
			t.Errorf("missing constraint %q (have %v)", want, names)
		}
	}
	if f.Program.NumConstraints() != 5 {
		t.Errorf("NumConstraints() = %d, want 5", f.Program.NumConstraints())
	}
}

func TestFormulateRegionConstraintKinds(t *testing.T) {
	f := mustFormulate(t, "AA\nBB\n\nA =\nB =/=\n\n33 25")
	var equal, notEqual int
	for _, c := range f.Program.Constraints() {
		switch {
		case strings.HasPrefix(c.Name, "equal_condition__"):
			equal++
			if c.Sense != program.SenseEqual || c.Bound != 0 {
				t.Errorf("%s: sense %v bound %d, want == 0", c.Name, c.Sense, c.Bound)
			}
		case strings.HasPrefix(c.Name, "not_equal_condition__"):
			notEqual++
			if c.Sense != program.SenseLessOrEqual || c.Bound != 1 {
				t.Errorf("%s: sense %v bound %d, want <= 1", c.Name, c.Sense, c.Bound)
			}
		}
	}
	// A two-space all-equal region chains one pairwise constraint; the
	// all-distinct region gets one constraint per dots value in play.
	if equal != 1 {
		t.Errorf("equal_condition count = %d, want 1", equal)
	}
	if notEqual != len(f.Dots) {
		t.Errorf("not_equal_condition count = %d, want %d", notEqual, len(f.Dots))
	}
}

func TestFormulateStrictInequalityBounds(t *testing.T) {
	f := mustFormulate(t, "AB\nAB\n\nA >5\nB <8\n\n34 52")
	var sawGreater, sawLess bool
	for _, c := range f.Program.Constraints() {
		switch {
		case strings.HasPrefix(c.Name, "greater_than_condition__"):
			sawGreater = true
			if c.Sense != program.SenseGreaterOrEqual || c.Bound != 6 {
				t.Errorf("%s: sense %v bound %d, want >= 6", c.Name, c.Sense, c.Bound)
			}
		case strings.HasPrefix(c.Name, "less_than_condition__"):
			sawLess = true
			if c.Sense != program.SenseLessOrEqual || c.Bound != 7 {
				t.Errorf("%s: sense %v bound %d, want <= 7", c.Name, c.Sense, c.Bound)
			}
		}
	}
	if !sawGreater || !sawLess {
		t.Fatalf("missing strict inequality constraints (greater=%v, less=%v)", sawGreater, sawLess)
	}
}

func TestFormulateDotNumberEvaluates(t *testing.T) {
	f := mustFormulate(t, "AB\n\nA 3\nB 4\n\n34")
	forward, ok := f.Program.Lookup("placement__3|4__1,1:1,2")
	if !ok {
		t.Fatal("missing forward placement variable")
	}
	a := make(program.Assignment, f.Program.NumVars())
	a[forward.ID()] = 1

	expr, ok := f.DotNumber(domain.Space{R: 1, C: 1})
	if !ok {
		t.Fatal("missing dot number expression for 1,1")
	}
	if got := expr.Evaluate(a); got != 3 {
		t.Errorf("dots at 1,1 = %d, want 3", got)
	}
	expr, _ = f.DotNumber(domain.Space{R: 1, C: 2})
	if got := expr.Evaluate(a); got != 4 {
		t.Errorf("dots at 1,2 = %d, want 4", got)
	}
}
