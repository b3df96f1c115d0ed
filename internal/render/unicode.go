package render

import (
	"strings"

	"svw.info/pips/internal/formulate"
	"svw.info/pips/internal/program"
)

// Unicode draws the chosen placements as a grid of box-drawing characters.
// Each domino is a rounded 3x7 (or 7x3) box with a divider between its two
// halves and the dot counts at the cell centers. The board is expected in
// normalized form, with the topmost row and leftmost column at 1.
func Unicode(f *formulate.Formulation, a program.Assignment) (string, error) {
	chosen, err := ChosenPlacements(f, a)
	if err != nil {
		return "", err
	}

	maxR, maxC := 1, 1
	for _, s := range f.Puzzle.SortedSpaces() {
		if s.R > maxR {
			maxR = s.R
		}
		if s.C > maxC {
			maxC = s.C
		}
	}

	height := 4*maxR + 1
	width := 4*maxC + 1
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	for _, pl := range chosen {
		drawPlacement(grid, pl)
	}

	var b strings.Builder
	for y, row := range grid {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.TrimRight(string(row), " "))
	}
	return b.String(), nil
}

func drawPlacement(grid [][]rune, pl formulate.Placement) {
	dots1, dots2 := pl.Dots()
	first, second := pl.Spot.First(), pl.Spot.Second()

	y1, x1 := center(first.R), center(first.C)
	y2, x2 := center(second.R), center(second.C)
	grid[y1][x1] = rune('0' + dots1)
	grid[y2][x2] = rune('0' + dots2)

	top, bottom := y1-1, y2+1
	left, right := x1-1, x2+1

	grid[top][left] = '╭'
	grid[top][right] = '╮'
	grid[bottom][left] = '╰'
	grid[bottom][right] = '╯'
	for x := left + 1; x < right; x++ {
		grid[top][x] = '─'
		grid[bottom][x] = '─'
	}
	for y := top + 1; y < bottom; y++ {
		grid[y][left] = '│'
		grid[y][right] = '│'
	}

	if pl.Spot.IsHorizontal() {
		mid := (x1 + x2) / 2
		grid[top][mid] = '┬'
		grid[bottom][mid] = '┴'
		for y := top + 1; y < bottom; y++ {
			grid[y][mid] = '│'
		}
	} else {
		mid := (y1 + y2) / 2
		grid[mid][left] = '├'
		grid[mid][right] = '┤'
		for x := left + 1; x < right; x++ {
			grid[mid][x] = '─'
		}
	}
}

func center(coord int) int {
	return (coord-1)*4 + 2
}
