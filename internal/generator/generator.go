// Package generator creates random solvable puzzles. A puzzle is built
// backwards from a known solution: first the board is tiled with dominoes,
// then the tiling is partitioned into regions, and finally each region gets
// a condition that the tiling satisfies. The resulting puzzle is therefore
// guaranteed to be feasible.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/ports"
)

const maxDominoes = 28 // size of a full double-six set

// RandomGenerator creates puzzles on rectangular boards.
type RandomGenerator struct{}

// NewRandomGenerator wires a generator for rectangular boards.
func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

// Generate creates a rows x cols puzzle from the given seed. The board area
// must be even and must not need more dominoes than a double-six set holds.
func (g *RandomGenerator) Generate(ctx context.Context, seed int64, rows, cols int) (*ports.GeneratedPuzzle, ports.Stats, error) {
	start := time.Now()
	if rows < 1 || cols < 1 {
		return nil, ports.Stats{}, fmt.Errorf("board size %dx%d: dimensions must be positive", rows, cols)
	}
	area := rows * cols
	if area%2 != 0 {
		return nil, ports.Stats{}, fmt.Errorf("board size %dx%d: odd number of spaces cannot be tiled", rows, cols)
	}
	if area/2 > maxDominoes {
		return nil, ports.Stats{}, fmt.Errorf("board size %dx%d: needs %d dominoes, a set has %d", rows, cols, area/2, maxDominoes)
	}

	rng := rand.New(rand.NewSource(seed))

	// 1) tile the rectangle with dominoes
	tiles, nodes, err := tileRect(ctx, rng, rows, cols)
	if err != nil {
		return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
	}

	// 2) assign distinct pip pairs, each in a random orientation
	solution := assignDots(rng, tiles)

	// 3) partition the tiling into connected regions
	regions := carveRegions(rng, rows, cols, tiles)

	// 4) derive a condition each region's solution satisfies
	text := composeText(rng, rows, cols, tiles, solution, regions)

	puz, err := domain.ParsePuzzle(text)
	if err != nil {
		return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, fmt.Errorf("generated puzzle does not parse: %w", err)
	}
	gp := &ports.GeneratedPuzzle{Text: text, Puzzle: puz}
	return gp, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}

// tile is a pair of adjacent cells, in row-major order.
type tile struct {
	first, second domain.Space
}

// tileRect covers the rows x cols rectangle with dominoes by randomized
// backtracking over the first uncovered cell.
func tileRect(ctx context.Context, rng *rand.Rand, rows, cols int) ([]tile, int64, error) {
	covered := make([]bool, rows*cols)
	tiles := make([]tile, 0, rows*cols/2)
	var nodes int64

	var place func() bool
	place = func() bool {
		nodes++
		if nodes%1024 == 0 && ctx.Err() != nil {
			return false
		}
		idx := -1
		for i, c := range covered {
			if !c {
				idx = i
				break
			}
		}
		if idx < 0 {
			return true
		}
		r, c := idx/cols+1, idx%cols+1

		horizontalFirst := rng.Intn(2) == 0
		for attempt := 0; attempt < 2; attempt++ {
			horizontal := horizontalFirst == (attempt == 0)
			var other int
			if horizontal {
				if c == cols {
					continue
				}
				other = idx + 1
			} else {
				if r == rows {
					continue
				}
				other = idx + cols
			}
			if covered[other] {
				continue
			}
			covered[idx], covered[other] = true, true
			second := domain.NewSpaceUnchecked(other/cols+1, other%cols+1)
			tiles = append(tiles, tile{domain.NewSpaceUnchecked(r, c), second})
			if place() {
				return true
			}
			tiles = tiles[:len(tiles)-1]
			covered[idx], covered[other] = false, false
		}
		return false
	}

	if !place() {
		if ctx.Err() != nil {
			return nil, nodes, ctx.Err()
		}
		return nil, nodes, fmt.Errorf("no domino tiling for %dx%d board", rows, cols)
	}
	return tiles, nodes, nil
}

// assignDots draws distinct dominoes from a shuffled double-six set and lays
// one on each tile in a random orientation, producing the dot count per space.
func assignDots(rng *rand.Rand, tiles []tile) map[domain.Space]int {
	set := make([]domain.Domino, 0, maxDominoes)
	for a := domain.MinDots; a <= domain.MaxDots; a++ {
		for b := a; b <= domain.MaxDots; b++ {
			d, _ := domain.NewDomino(a, b)
			set = append(set, d)
		}
	}
	rng.Shuffle(len(set), func(i, j int) { set[i], set[j] = set[j], set[i] })

	solution := make(map[domain.Space]int, 2*len(tiles))
	for i, t := range tiles {
		lo, hi := set[i].SortedDots()
		if rng.Intn(2) == 0 {
			lo, hi = hi, lo
		}
		solution[t.first] = lo
		solution[t.second] = hi
	}
	return solution
}

// carveRegions partitions the board into connected blobs by growing a few
// randomly seeded regions one frontier cell at a time. Growth along space
// adjacency keeps every region connected.
func carveRegions(rng *rand.Rand, rows, cols int, tiles []tile) map[domain.Space]int {
	spaces := make([]domain.Space, 0, rows*cols)
	for _, t := range tiles {
		spaces = append(spaces, t.first, t.second)
	}
	sort.Slice(spaces, func(i, j int) bool { return spaces[i].Less(spaces[j]) })

	numRegions := 1 + rng.Intn(len(spaces))
	if numRegions > 26 {
		numRegions = 26
	}

	assigned := make(map[domain.Space]int, len(spaces))
	rng.Shuffle(len(spaces), func(i, j int) { spaces[i], spaces[j] = spaces[j], spaces[i] })
	frontier := make([]domain.Space, 0, numRegions)
	for i := 0; i < numRegions; i++ {
		assigned[spaces[i]] = i
		frontier = append(frontier, spaces[i])
	}

	onBoard := make(map[domain.Space]bool, len(spaces))
	for _, s := range spaces {
		onBoard[s] = true
	}

	for len(assigned) < len(spaces) {
		i := rng.Intn(len(frontier))
		s := frontier[i]
		grew := false
		for _, n := range s.Neighbors() {
			if !onBoard[n] {
				continue
			}
			if _, ok := assigned[n]; ok {
				continue
			}
			assigned[n] = assigned[s]
			frontier = append(frontier, n)
			grew = true
			break
		}
		if !grew {
			frontier[i] = frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]
		}
	}
	return assigned
}

// conditionFor picks a condition the solved dots satisfy, preferring the
// structural conditions over a plain sum when they hold.
func conditionFor(rng *rand.Rand, dots []int) domain.Condition {
	allEqual := true
	allDistinct := true
	sum := 0
	seen := make(map[int]bool, len(dots))
	for _, d := range dots {
		sum += d
		if d != dots[0] {
			allEqual = false
		}
		if seen[d] {
			allDistinct = false
		}
		seen[d] = true
	}

	var choices []domain.Condition
	if allEqual && len(dots) > 1 {
		choices = append(choices, domain.NewAllEqual())
	}
	if allDistinct && len(dots) > 1 {
		choices = append(choices, domain.NewAllDistinct())
	}
	if c, err := domain.NewSum(sum); err == nil {
		choices = append(choices, c)
	}
	if c, err := domain.NewSumGreaterThan(sum - 1); err == nil && sum > 0 {
		choices = append(choices, c)
	}
	if c, err := domain.NewSumLessThan(sum + 1); err == nil {
		choices = append(choices, c)
	}
	return choices[rng.Intn(len(choices))]
}

// composeText writes the puzzle in its textual form: the region layout, the
// region conditions, and the domino list.
func composeText(rng *rand.Rand, rows, cols int, tiles []tile, solution map[domain.Space]int, regions map[domain.Space]int) string {
	var b strings.Builder
	for r := 1; r <= rows; r++ {
		for c := 1; c <= cols; c++ {
			b.WriteByte(byte('A' + regions[domain.NewSpaceUnchecked(r, c)]))
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	dotsByRegion := make(map[int][]int)
	for s, reg := range regions {
		dotsByRegion[reg] = append(dotsByRegion[reg], solution[s])
	}
	regionIDs := make([]int, 0, len(dotsByRegion))
	for reg := range dotsByRegion {
		regionIDs = append(regionIDs, reg)
	}
	sort.Ints(regionIDs)
	for _, reg := range regionIDs {
		cond := conditionFor(rng, dotsByRegion[reg])
		fmt.Fprintf(&b, "%c %s\n", 'A'+reg, cond.Terse())
	}
	b.WriteByte('\n')

	dominoes := make([]string, 0, len(tiles))
	for _, t := range tiles {
		dominoes = append(dominoes, fmt.Sprintf("%d%d", solution[t.first], solution[t.second]))
	}
	sort.Strings(dominoes)
	b.WriteString(strings.Join(dominoes, " "))
	b.WriteByte('\n')
	return b.String()
}
