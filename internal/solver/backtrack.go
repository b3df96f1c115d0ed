package solver

import (
	"context"
	"time"

	"svw.info/pips/internal/ports"
	"svw.info/pips/internal/program"
)

// Backtracking is a depth-first solver over the binary variables with
// residual-bound pruning per constraint. It needs no external libraries and
// is the fallback when the CP-SAT backend is unavailable.
type Backtracking struct{}

// NewBacktracking returns a ready solver.
func NewBacktracking() *Backtracking { return &Backtracking{} }

// occurrence links a variable to one constraint it appears in.
type occurrence struct {
	constraint int
	coeff      int
}

type searchState struct {
	prog   *program.Program
	byVar  [][]occurrence
	cons   []program.Constraint
	cur    []int // current partial sum per constraint
	remPos []int // positive coefficient mass still unassigned
	remNeg []int // negative coefficient mass still unassigned
	values program.Assignment
	nodes  int64
}

func (s *Backtracking) Solve(ctx context.Context, p *program.Program) (program.Assignment, ports.Stats, error) {
	start := time.Now()
	cons := p.Constraints()
	st := &searchState{
		prog:   p,
		byVar:  make([][]occurrence, p.NumVars()),
		cons:   cons,
		cur:    make([]int, len(cons)),
		remPos: make([]int, len(cons)),
		remNeg: make([]int, len(cons)),
		values: make(program.Assignment, p.NumVars()),
	}
	for ci, c := range cons {
		st.cur[ci] = c.Expr.Offset()
		for _, t := range c.Expr.Terms() {
			st.byVar[t.Var] = append(st.byVar[t.Var], occurrence{constraint: ci, coeff: t.Coeff})
			if t.Coeff > 0 {
				st.remPos[ci] += t.Coeff
			} else {
				st.remNeg[ci] += t.Coeff
			}
		}
	}

	found, err := st.search(ctx, 0)
	stats := ports.Stats{Nodes: st.nodes, Duration: time.Since(start)}
	if err != nil {
		return nil, stats, err
	}
	if !found {
		return nil, stats, ports.ErrInfeasible
	}
	out := make(program.Assignment, len(st.values))
	copy(out, st.values)
	return out, stats, nil
}

func (st *searchState) search(ctx context.Context, v int) (bool, error) {
	st.nodes++
	if st.nodes%1024 == 0 {
		if err := ctx.Err(); err != nil {
			return false, err
		}
	}
	if v == len(st.values) {
		return true, nil
	}
	// Try placing before skipping: in exact-cover style problems the 1
	// branch collapses the search fastest.
	for _, val := range [2]int{1, 0} {
		st.values[v] = val
		ok := true
		for _, occ := range st.byVar[v] {
			st.cur[occ.constraint] += occ.coeff * val
			if occ.coeff > 0 {
				st.remPos[occ.constraint] -= occ.coeff
			} else {
				st.remNeg[occ.constraint] -= occ.coeff
			}
		}
		for _, occ := range st.byVar[v] {
			if !st.stillFeasible(occ.constraint) {
				ok = false
				break
			}
		}
		if ok {
			found, err := st.search(ctx, v+1)
			if found || err != nil {
				return found, err
			}
		}
		for _, occ := range st.byVar[v] {
			st.cur[occ.constraint] -= occ.coeff * val
			if occ.coeff > 0 {
				st.remPos[occ.constraint] += occ.coeff
			} else {
				st.remNeg[occ.constraint] += occ.coeff
			}
		}
	}
	st.values[v] = 0
	return false, nil
}

// stillFeasible checks whether the constraint can still be met given the
// unassigned variables' remaining coefficient mass.
func (st *searchState) stillFeasible(ci int) bool {
	c := st.cons[ci]
	lo := st.cur[ci] + st.remNeg[ci]
	hi := st.cur[ci] + st.remPos[ci]
	switch c.Sense {
	case program.SenseEqual:
		return lo <= c.Bound && c.Bound <= hi
	case program.SenseLessOrEqual:
		return lo <= c.Bound
	case program.SenseGreaterOrEqual:
		return hi >= c.Bound
	}
	return false
}
