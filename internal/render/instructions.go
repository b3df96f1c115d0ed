// Package render turns a solved formulation into human-readable output:
// placement instructions and a unicode box visualization.
package render

import (
	"fmt"

	"svw.info/pips/internal/formulate"
	"svw.info/pips/internal/program"
)

// Instruction describes a single placement as one line of text.
func Instruction(pl formulate.Placement) string {
	dots1, dots2 := pl.Dots()
	first, second := pl.Spot.First(), pl.Spot.Second()
	if pl.Spot.IsHorizontal() {
		return fmt.Sprintf("Place [%s] in row %d with [%d] in column %d and [%d] in column %d",
			pl.Domino, first.R, dots1, first.C, dots2, second.C)
	}
	return fmt.Sprintf("Place [%s] in column %d with [%d] in row %d and [%d] in row %d",
		pl.Domino, first.C, dots1, first.R, dots2, second.R)
}

// ChosenPlacements returns the placements selected by the assignment, in
// placement-table order.
func ChosenPlacements(f *formulate.Formulation, a program.Assignment) ([]formulate.Placement, error) {
	var chosen []formulate.Placement
	for _, pl := range f.Placements {
		val, err := a.Binary(pl.Var)
		if err != nil {
			return nil, err
		}
		if val == 1 {
			chosen = append(chosen, pl)
		}
	}
	return chosen, nil
}

// Instructions renders one instruction line per chosen placement.
func Instructions(f *formulate.Formulation, a program.Assignment) ([]string, error) {
	chosen, err := ChosenPlacements(f, a)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(chosen))
	for i, pl := range chosen {
		lines[i] = Instruction(pl)
	}
	return lines, nil
}
