// Package program holds a binary integer program: named 0/1 variables,
// linear expressions over them, and linear (in)equality constraints. It is
// the solver-independent artifact the formulator produces and a solver
// consumes; there is no objective because Pips is a feasibility problem.
package program

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateVar indicates two variables created with the same name.
	ErrDuplicateVar = errors.New("variable name already in use")
	// ErrDuplicateConstraint indicates two constraints with the same name.
	ErrDuplicateConstraint = errors.New("constraint name already in use")
	// ErrNotBinary indicates a solver-returned value that is neither 0 nor
	// 1; that is a contract violation by the solver, not a program defect.
	ErrNotBinary = errors.New("variable value is not binary")
)

// Var is a reference to one binary variable in a Program.
type Var struct {
	id   int
	name string
}

// ID is the variable's dense index in its program.
func (v Var) ID() int { return v.id }

// Name is the variable's unique name.
func (v Var) Name() string { return v.name }

func (v Var) String() string { return v.name }

// Term is one variable-coefficient pair of a linear expression.
type Term struct {
	Var   int
	Coeff int
}

// LinExpr is a linear expression: a list of terms plus a constant offset.
// The Add methods return the receiver so calls can chain.
type LinExpr struct {
	terms  []Term
	offset int
}

// NewLinExpr returns an empty (zero) expression.
func NewLinExpr() *LinExpr { return &LinExpr{} }

// Add adds the variable with coefficient 1.
func (e *LinExpr) Add(v Var) *LinExpr { return e.AddTerm(v, 1) }

// AddTerm adds the variable with the given coefficient.
func (e *LinExpr) AddTerm(v Var, coeff int) *LinExpr {
	e.terms = append(e.terms, Term{Var: v.id, Coeff: coeff})
	return e
}

// AddConstant adds a constant to the expression.
func (e *LinExpr) AddConstant(c int) *LinExpr {
	e.offset += c
	return e
}

// AddExpr adds another expression term by term.
func (e *LinExpr) AddExpr(o *LinExpr) *LinExpr { return e.AddExprTerm(o, 1) }

// AddExprTerm adds another expression scaled by the given coefficient.
func (e *LinExpr) AddExprTerm(o *LinExpr, coeff int) *LinExpr {
	for _, t := range o.terms {
		e.terms = append(e.terms, Term{Var: t.Var, Coeff: t.Coeff * coeff})
	}
	e.offset += o.offset * coeff
	return e
}

// Terms returns the expression's terms. The slice is shared; callers must
// not modify it.
func (e *LinExpr) Terms() []Term { return e.terms }

// Offset returns the expression's constant offset.
func (e *LinExpr) Offset() int { return e.offset }

// Evaluate computes the expression's value under an assignment.
func (e *LinExpr) Evaluate(a Assignment) int {
	v := e.offset
	for _, t := range e.terms {
		v += t.Coeff * a[t.Var]
	}
	return v
}

// Sense is the relation between a constraint's expression and its bound.
type Sense int

const (
	// SenseEqual constrains expr == bound.
	SenseEqual Sense = iota
	// SenseLessOrEqual constrains expr <= bound.
	SenseLessOrEqual
	// SenseGreaterOrEqual constrains expr >= bound.
	SenseGreaterOrEqual
)

func (s Sense) String() string {
	switch s {
	case SenseEqual:
		return "=="
	case SenseLessOrEqual:
		return "<="
	case SenseGreaterOrEqual:
		return ">="
	}
	return "?"
}

// Constraint relates a linear expression to an integer bound.
type Constraint struct {
	Name  string
	Expr  *LinExpr
	Sense Sense
	Bound int
}

// Satisfied reports whether the constraint holds under an assignment.
func (c Constraint) Satisfied(a Assignment) bool {
	v := c.Expr.Evaluate(a)
	switch c.Sense {
	case SenseEqual:
		return v == c.Bound
	case SenseLessOrEqual:
		return v <= c.Bound
	case SenseGreaterOrEqual:
		return v >= c.Bound
	}
	return false
}

// Program is a binary integer program under construction or ready for a
// solver.
type Program struct {
	varNames        []string
	varsByName      map[string]int
	constraints     []Constraint
	constraintNames map[string]bool
}

// New returns an empty program.
func New() *Program {
	return &Program{
		varsByName:      make(map[string]int),
		constraintNames: make(map[string]bool),
	}
}

// NewBinaryVar creates a new 0/1 variable. Names must be unique.
func (p *Program) NewBinaryVar(name string) (Var, error) {
	if _, ok := p.varsByName[name]; ok {
		return Var{}, fmt.Errorf("%w: %q", ErrDuplicateVar, name)
	}
	id := len(p.varNames)
	p.varNames = append(p.varNames, name)
	p.varsByName[name] = id
	return Var{id: id, name: name}, nil
}

// AddConstraint appends a named constraint. Names must be unique.
func (p *Program) AddConstraint(name string, expr *LinExpr, sense Sense, bound int) error {
	if p.constraintNames[name] {
		return fmt.Errorf("%w: %q", ErrDuplicateConstraint, name)
	}
	p.constraintNames[name] = true
	p.constraints = append(p.constraints, Constraint{Name: name, Expr: expr, Sense: sense, Bound: bound})
	return nil
}

// NumVars is the number of variables created so far.
func (p *Program) NumVars() int { return len(p.varNames) }

// NumConstraints is the number of constraints added so far.
func (p *Program) NumConstraints() int { return len(p.constraints) }

// VarName returns the name of the variable with the given dense index.
func (p *Program) VarName(id int) string { return p.varNames[id] }

// Lookup returns the variable with the given name, if any.
func (p *Program) Lookup(name string) (Var, bool) {
	id, ok := p.varsByName[name]
	if !ok {
		return Var{}, false
	}
	return Var{id: id, name: name}, true
}

// Constraints returns the program's constraints in insertion order. The
// slice is shared; callers must not modify it.
func (p *Program) Constraints() []Constraint { return p.constraints }

// Assignment holds one integer value per variable, indexed by Var.ID.
type Assignment []int

// Value returns the raw value assigned to the variable.
func (a Assignment) Value(v Var) int { return a[v.id] }

// Binary returns the variable's value after checking it resolves to exactly
// 0 or 1.
func (a Assignment) Binary(v Var) (int, error) {
	val := a[v.id]
	if val != 0 && val != 1 {
		return 0, fmt.Errorf("%w: %s = %d", ErrNotBinary, v.name, val)
	}
	return val, nil
}
