// Package hint suggests a next placement by solving the puzzle and revealing
// one domino from the solution.
package hint

import (
	"context"
	"errors"
	"fmt"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/formulate"
	"svw.info/pips/internal/ports"
	"svw.info/pips/internal/render"
)

// SolutionHinter derives hints from a full solution produced by a Solver.
type SolutionHinter struct {
	Solver ports.Solver
}

// NewSolutionHinter wires a hinter backed by the given solver.
func NewSolutionHinter(s ports.Solver) *SolutionHinter {
	return &SolutionHinter{Solver: s}
}

// Hint solves the puzzle and returns the first placement of the solution in
// placement-table order. The second return is false when the puzzle is
// infeasible.
func (h *SolutionHinter) Hint(ctx context.Context, p *domain.Puzzle) (ports.Hint, bool, error) {
	f, err := formulate.Formulate(p)
	if err != nil {
		return ports.Hint{}, false, fmt.Errorf("formulate: %w", err)
	}
	a, _, err := h.Solver.Solve(ctx, f.Program)
	if err != nil {
		if errors.Is(err, ports.ErrInfeasible) {
			return ports.Hint{}, false, nil
		}
		return ports.Hint{}, false, err
	}
	chosen, err := render.ChosenPlacements(f, a)
	if err != nil {
		return ports.Hint{}, false, err
	}
	if len(chosen) == 0 {
		return ports.Hint{}, false, nil
	}
	pl := chosen[0]
	return ports.Hint{Placement: pl, Message: render.Instruction(pl)}, true, nil
}
