// Package verifier re-checks a solved assignment directly against the
// puzzle rules, independently of the constraint encoding.
package verifier

import (
	"context"
	"fmt"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/formulate"
	"svw.info/pips/internal/program"
)

// Checker verifies placements the straightforward way: walk the chosen
// placements, rebuild the board's dots, and test every region condition.
type Checker struct{}

// New returns a ready Checker.
func New() *Checker { return &Checker{} }

func (c *Checker) Verify(ctx context.Context, f *formulate.Formulation, a program.Assignment) (bool, []string, error) {
	var violations []string

	useCounts := make(map[string]int, f.Puzzle.NumDominoes())
	dotsAt := make(map[domain.Space][]int, f.Puzzle.NumSpaces())
	for _, pl := range f.Placements {
		val, err := a.Binary(pl.Var)
		if err != nil {
			return false, nil, err
		}
		if val == 0 {
			continue
		}
		useCounts[pl.Domino.String()]++
		first, second := pl.Dots()
		dotsAt[pl.Spot.First()] = append(dotsAt[pl.Spot.First()], first)
		dotsAt[pl.Spot.Second()] = append(dotsAt[pl.Spot.Second()], second)
	}

	for _, d := range f.Puzzle.Dominoes() {
		if n := useCounts[d.String()]; n != 1 {
			violations = append(violations, fmt.Sprintf("domino %s placed %d times", d, n))
		}
	}
	for _, space := range f.Puzzle.SortedSpaces() {
		if n := len(dotsAt[space]); n != 1 {
			violations = append(violations, fmt.Sprintf("space %s covered %d times", space, n))
		}
	}
	if len(violations) > 0 {
		return false, violations, nil
	}

	for _, region := range f.Puzzle.SortedRegions() {
		condition, err := f.Puzzle.Condition(region)
		if err != nil {
			return false, nil, err
		}
		if msg := checkCondition(region, condition, dotsAt); msg != "" {
			violations = append(violations, msg)
		}
	}
	return len(violations) == 0, violations, nil
}

func checkCondition(region domain.Region, condition domain.Condition, dotsAt map[domain.Space][]int) string {
	spaces := region.Spaces()
	sum := 0
	seen := make(map[int]int)
	for _, s := range spaces {
		v := dotsAt[s][0]
		sum += v
		seen[v]++
	}
	switch condition.Kind {
	case domain.SumEquals:
		if sum != condition.Number {
			return fmt.Sprintf("region at %s sums to %d, want %d", spaces[0], sum, condition.Number)
		}
	case domain.AllEqual:
		if len(seen) != 1 {
			return fmt.Sprintf("region at %s shows %d distinct values, want all equal", spaces[0], len(seen))
		}
	case domain.AllDistinct:
		for v, n := range seen {
			if n > 1 {
				return fmt.Sprintf("region at %s shows %d twice", spaces[0], v)
			}
		}
	case domain.SumGreaterThan:
		if sum <= condition.Number {
			return fmt.Sprintf("region at %s sums to %d, want more than %d", spaces[0], sum, condition.Number)
		}
	case domain.SumLessThan:
		if sum >= condition.Number {
			return fmt.Sprintf("region at %s sums to %d, want less than %d", spaces[0], sum, condition.Number)
		}
	default:
		return fmt.Sprintf("region at %s has unrecognized condition kind %d", spaces[0], int(condition.Kind))
	}
	return ""
}
