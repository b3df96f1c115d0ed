// Package formulate translates a parsed Pips puzzle into a binary integer
// program: one placement variable per domino arrangement, derived dot
// expressions per board space, and the coverage and region constraints.
package formulate

import (
	"fmt"
	"sort"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/program"
)

// Placement pairs one domino with one spot in one orientation, and holds
// the binary variable that decides it. Forward orientation puts the
// domino's first displayed dots value on the spot's first space; the
// reversed orientation swaps them and exists only for asymmetric dominoes.
type Placement struct {
	Domino   domain.Domino
	Spot     Spot
	Reversed bool
	Var      program.Var
}

// Dots returns the dots values landing on the spot's first and second
// spaces under this placement's orientation.
func (pl Placement) Dots() (int, int) {
	a, b := pl.Domino.Dots()
	if pl.Reversed {
		return b, a
	}
	return a, b
}

type patternKey struct {
	space domain.Space
	dots  int
}

// Formulation is the complete program for one puzzle plus the lookup tables
// downstream rendering reads back.
type Formulation struct {
	Puzzle     *domain.Puzzle
	Program    *program.Program
	Spots      []Spot
	Dots       []int
	Placements []Placement

	dotPatterns map[patternKey]*program.LinExpr
	dotNumbers  map[domain.Space]*program.LinExpr
}

// DotPattern returns the expression for "space shows this dots value".
func (f *Formulation) DotPattern(s domain.Space, dots int) (*program.LinExpr, bool) {
	e, ok := f.dotPatterns[patternKey{space: s, dots: dots}]
	return e, ok
}

// DotNumber returns the expression for "number of dots showing at space".
func (f *Formulation) DotNumber(s domain.Space) (*program.LinExpr, bool) {
	e, ok := f.dotNumbers[s]
	return e, ok
}

// PlacementsFor returns the placements of one domino in variable order.
func (f *Formulation) PlacementsFor(d domain.Domino) []Placement {
	var out []Placement
	for _, pl := range f.Placements {
		if pl.Domino.Equal(d) {
			out = append(out, pl)
		}
	}
	return out
}

// sortedDots collects every dots value appearing on some domino. Values
// absent from the supplied dominoes never need variables or expressions.
func sortedDots(p *domain.Puzzle) []int {
	seen := make(map[int]bool)
	for _, d := range p.Dominoes() {
		a, b := d.Dots()
		seen[a] = true
		seen[b] = true
	}
	dots := make([]int, 0, len(seen))
	for v := range seen {
		dots = append(dots, v)
	}
	sort.Ints(dots)
	return dots
}

// abbreviateRegion is the shorthand used in region constraint names.
func abbreviateRegion(r domain.Region) string {
	return "Rg" + r.Spaces()[0].String()
}

// Formulate builds the full binary integer program for a puzzle.
func Formulate(p *domain.Puzzle) (*Formulation, error) {
	f := &Formulation{
		Puzzle:      p,
		Program:     program.New(),
		Spots:       SortedSpots(p),
		Dots:        sortedDots(p),
		dotPatterns: make(map[patternKey]*program.LinExpr),
		dotNumbers:  make(map[domain.Space]*program.LinExpr),
	}

	if err := f.createPlacementVars(); err != nil {
		return nil, err
	}
	f.createDotPatterns()
	f.createDotNumbers()

	if err := f.addDominoUseConstraints(); err != nil {
		return nil, err
	}
	if err := f.addCoverageConstraints(); err != nil {
		return nil, err
	}
	if err := f.addRegionConstraints(); err != nil {
		return nil, err
	}
	return f, nil
}

// createPlacementVars makes one binary variable per domino, spot, and
// orientation. Symmetric dominoes get a single orientation since the
// reversed one would decide the identical arrangement.
func (f *Formulation) createPlacementVars() error {
	for _, d := range f.Puzzle.Dominoes() {
		orientations := []bool{false}
		if !d.IsSymmetric() {
			orientations = append(orientations, true)
		}
		for _, spot := range f.Spots {
			for _, reversed := range orientations {
				pl := Placement{Domino: d, Spot: spot, Reversed: reversed}
				first, second := pl.Dots()
				name := fmt.Sprintf("placement__%d|%d__%s", first, second, spot)
				v, err := f.Program.NewBinaryVar(name)
				if err != nil {
					return err
				}
				pl.Var = v
				f.Placements = append(f.Placements, pl)
			}
		}
	}
	return nil
}

// createDotPatterns derives, for every (space, dots) pair, the expression
// summing the placements that would show that dots value on that space.
func (f *Formulation) createDotPatterns() {
	for _, space := range f.Puzzle.SortedSpaces() {
		for _, dots := range f.Dots {
			f.dotPatterns[patternKey{space: space, dots: dots}] = program.NewLinExpr()
		}
	}
	for _, pl := range f.Placements {
		first, second := pl.Dots()
		f.dotPatterns[patternKey{space: pl.Spot.First(), dots: first}].Add(pl.Var)
		f.dotPatterns[patternKey{space: pl.Spot.Second(), dots: second}].Add(pl.Var)
	}
}

// createDotNumbers derives, per space, the dots count showing there as a
// weighted sum of the space's dot pattern expressions.
func (f *Formulation) createDotNumbers() {
	for _, space := range f.Puzzle.SortedSpaces() {
		expr := program.NewLinExpr()
		for _, dots := range f.Dots {
			expr.AddExprTerm(f.dotPatterns[patternKey{space: space, dots: dots}], dots)
		}
		f.dotNumbers[space] = expr
	}
}

// addDominoUseConstraints enforces that each domino lands in exactly one
// arrangement.
func (f *Formulation) addDominoUseConstraints() error {
	for _, d := range f.Puzzle.Dominoes() {
		expr := program.NewLinExpr()
		for _, pl := range f.PlacementsFor(d) {
			expr.Add(pl.Var)
		}
		name := fmt.Sprintf("use_domino__%s", d)
		if err := f.Program.AddConstraint(name, expr, program.SenseEqual, 1); err != nil {
			return err
		}
	}
	return nil
}

// addCoverageConstraints enforces that each space shows exactly one domino
// half.
func (f *Formulation) addCoverageConstraints() error {
	for _, space := range f.Puzzle.SortedSpaces() {
		expr := program.NewLinExpr()
		for _, dots := range f.Dots {
			expr.AddExpr(f.dotPatterns[patternKey{space: space, dots: dots}])
		}
		name := fmt.Sprintf("cant_overlap__%s", space)
		if err := f.Program.AddConstraint(name, expr, program.SenseEqual, 1); err != nil {
			return err
		}
	}
	return nil
}

// addRegionConstraints encodes each region's condition over the derived
// expressions.
func (f *Formulation) addRegionConstraints() error {
	for _, region := range f.Puzzle.SortedRegions() {
		condition, err := f.Puzzle.Condition(region)
		if err != nil {
			return err
		}
		regionName := abbreviateRegion(region)
		spaces := region.Spaces()

		switch condition.Kind {

		case domain.SumEquals:
			name := fmt.Sprintf("number_condition__%s", regionName)
			if err := f.Program.AddConstraint(name, f.regionSum(spaces), program.SenseEqual, condition.Number); err != nil {
				return err
			}

		case domain.AllEqual:
			// A pairwise chain over the canonical order forces full
			// equality since equality is transitive.
			for i := 0; i+1 < len(spaces); i++ {
				expr := program.NewLinExpr().
					AddExpr(f.dotNumbers[spaces[i]]).
					AddExprTerm(f.dotNumbers[spaces[i+1]], -1)
				name := fmt.Sprintf("equal_condition__%s__%s__%s", regionName, spaces[i], spaces[i+1])
				if err := f.Program.AddConstraint(name, expr, program.SenseEqual, 0); err != nil {
					return err
				}
			}

		case domain.AllDistinct:
			for _, dots := range f.Dots {
				expr := program.NewLinExpr()
				for _, space := range spaces {
					expr.AddExpr(f.dotPatterns[patternKey{space: space, dots: dots}])
				}
				name := fmt.Sprintf("not_equal_condition__%s__%d", regionName, dots)
				if err := f.Program.AddConstraint(name, expr, program.SenseLessOrEqual, 1); err != nil {
					return err
				}
			}

		case domain.SumGreaterThan:
			// Strict inequality over integers: >= n+1.
			name := fmt.Sprintf("greater_than_condition__%s", regionName)
			if err := f.Program.AddConstraint(name, f.regionSum(spaces), program.SenseGreaterOrEqual, condition.Number+1); err != nil {
				return err
			}

		case domain.SumLessThan:
			// Strict inequality over integers: <= n-1.
			name := fmt.Sprintf("less_than_condition__%s", regionName)
			if err := f.Program.AddConstraint(name, f.regionSum(spaces), program.SenseLessOrEqual, condition.Number-1); err != nil {
				return err
			}

		default:
			return fmt.Errorf("unrecognized condition kind %d for region %s", int(condition.Kind), regionName)
		}
	}
	return nil
}

func (f *Formulation) regionSum(spaces []domain.Space) *program.LinExpr {
	expr := program.NewLinExpr()
	for _, space := range spaces {
		expr.AddExpr(f.dotNumbers[space])
	}
	return expr
}
