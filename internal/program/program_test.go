package program

import (
	"errors"
	"testing"
)

func TestNewBinaryVarRejectsDuplicateNames(t *testing.T) {
	p := New()
	if _, err := p.NewBinaryVar("x"); err != nil {
		t.Fatalf("NewBinaryVar failed: %v", err)
	}
	if _, err := p.NewBinaryVar("x"); !errors.Is(err, ErrDuplicateVar) {
		t.Fatalf("second NewBinaryVar err = %v, want ErrDuplicateVar", err)
	}
	if p.NumVars() != 1 {
		t.Fatalf("NumVars() = %d, want 1", p.NumVars())
	}
}

func TestAddConstraintRejectsDuplicateNames(t *testing.T) {
	p := New()
	x, _ := p.NewBinaryVar("x")
	expr := NewLinExpr().Add(x)
	if err := p.AddConstraint("c", expr, SenseEqual, 1); err != nil {
		t.Fatalf("AddConstraint failed: %v", err)
	}
	if err := p.AddConstraint("c", expr, SenseEqual, 0); !errors.Is(err, ErrDuplicateConstraint) {
		t.Fatalf("second AddConstraint err = %v, want ErrDuplicateConstraint", err)
	}
}

func TestLookupAndVarName(t *testing.T) {
	p := New()
	x, _ := p.NewBinaryVar("x")
	y, _ := p.NewBinaryVar("y")
	if got := p.VarName(y.ID()); got != "y" {
		t.Errorf("VarName(%d) = %q", y.ID(), got)
	}
	found, ok := p.Lookup("x")
	if !ok || found.ID() != x.ID() {
		t.Errorf("Lookup(\"x\") = %v, %v", found, ok)
	}
	if _, ok := p.Lookup("z"); ok {
		t.Error("Lookup of an unknown name must fail")
	}
}

func TestLinExprEvaluate(t *testing.T) {
	p := New()
	x, _ := p.NewBinaryVar("x")
	y, _ := p.NewBinaryVar("y")
	z, _ := p.NewBinaryVar("z")

	inner := NewLinExpr().Add(y).AddConstant(1)
	expr := NewLinExpr().
		AddTerm(x, 3).
		AddExprTerm(inner, 2). // 2y + 2
		AddExpr(NewLinExpr().AddTerm(z, -1)).
		AddConstant(4)

	a := Assignment{1, 1, 1}
	if got := expr.Evaluate(a); got != 3+2+2-1+4 {
		t.Fatalf("Evaluate = %d, want 10", got)
	}
	a = Assignment{0, 0, 1}
	if got := expr.Evaluate(a); got != 2+4-1 {
		t.Fatalf("Evaluate = %d, want 5", got)
	}
}

func TestConstraintSatisfied(t *testing.T) {
	p := New()
	x, _ := p.NewBinaryVar("x")
	y, _ := p.NewBinaryVar("y")
	expr := NewLinExpr().Add(x).Add(y)

	cases := []struct {
		name  string
		sense Sense
		bound int
		a     Assignment
		want  bool
	}{
		{"eq holds", SenseEqual, 1, Assignment{1, 0}, true},
		{"eq fails", SenseEqual, 1, Assignment{1, 1}, false},
		{"le holds", SenseLessOrEqual, 1, Assignment{0, 1}, true},
		{"le fails", SenseLessOrEqual, 1, Assignment{1, 1}, false},
		{"ge holds", SenseGreaterOrEqual, 2, Assignment{1, 1}, true},
		{"ge fails", SenseGreaterOrEqual, 2, Assignment{1, 0}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Constraint{Name: tc.name, Expr: expr, Sense: tc.sense, Bound: tc.bound}
			if got := c.Satisfied(tc.a); got != tc.want {
				t.Fatalf("Satisfied = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAssignmentBinary(t *testing.T) {
	p := New()
	x, _ := p.NewBinaryVar("x")
	if v, err := (Assignment{1}).Binary(x); err != nil || v != 1 {
		t.Fatalf("Binary = %d, %v", v, err)
	}
	if _, err := (Assignment{2}).Binary(x); !errors.Is(err, ErrNotBinary) {
		t.Fatalf("Binary(2) err = %v, want ErrNotBinary", err)
	}
}
