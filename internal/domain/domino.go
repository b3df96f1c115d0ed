package domain

import (
	"errors"
	"fmt"
	"strings"
)

// One half of a domino never has fewer than zero dots or more than six.
const (
	MinDots = 0
	MaxDots = 6
)

var (
	// ErrDotsOutOfRange indicates a dots value outside [MinDots, MaxDots].
	ErrDotsOutOfRange = fmt.Errorf("domino dots values must range from %d to %d", MinDots, MaxDots)
	// ErrBadDominoString indicates a domino token that is not two digits.
	ErrBadDominoString = errors.New("domino string must be exactly two digits")
)

// Domino is a single Pips game piece with two dots values. The values are
// stored sorted so that two dominoes compare equal regardless of input
// order, but the input order is remembered for display.
type Domino struct {
	lo, hi  int
	flipped bool
}

// NewDomino builds a domino from two dots values in input order.
func NewDomino(dots1, dots2 int) (Domino, error) {
	flipped := dots1 > dots2
	if flipped {
		dots1, dots2 = dots2, dots1
	}
	if dots1 < MinDots || dots2 > MaxDots {
		return Domino{}, fmt.Errorf("%w: got %d and %d", ErrDotsOutOfRange, dots1, dots2)
	}
	return Domino{lo: dots1, hi: dots2, flipped: flipped}, nil
}

// ParseDomino parses a terse two-digit domino string such as "45" or "66".
func ParseDomino(s string) (Domino, error) {
	t := strings.TrimSpace(s)
	if len(t) != 2 {
		return Domino{}, fmt.Errorf("%w: %q", ErrBadDominoString, s)
	}
	var dots [2]int
	for i := 0; i < 2; i++ {
		if t[i] < '0' || t[i] > '9' {
			return Domino{}, fmt.Errorf("%w: %q", ErrBadDominoString, s)
		}
		dots[i] = int(t[i] - '0')
	}
	return NewDomino(dots[0], dots[1])
}

// ParseDominoes parses whitespace-separated domino strings into a list that
// preserves their input order.
func ParseDominoes(s string) ([]Domino, error) {
	fields := strings.Fields(s)
	dominoes := make([]Domino, 0, len(fields))
	for _, f := range fields {
		d, err := ParseDomino(f)
		if err != nil {
			return nil, err
		}
		dominoes = append(dominoes, d)
	}
	return dominoes, nil
}

// Dots returns the two dots values in their original input order.
func (d Domino) Dots() (int, int) {
	if d.flipped {
		return d.hi, d.lo
	}
	return d.lo, d.hi
}

// SortedDots returns the two dots values in ascending order.
func (d Domino) SortedDots() (int, int) { return d.lo, d.hi }

// Len is the number of board spaces the domino occupies.
func (d Domino) Len() int { return 2 }

// IsSymmetric reports whether both halves carry the same dots value.
func (d Domino) IsSymmetric() bool { return d.lo == d.hi }

// Equal compares dominoes by their unordered dots pair; the display order
// does not participate.
func (d Domino) Equal(o Domino) bool { return d.lo == o.lo && d.hi == o.hi }

// Less orders dominoes by their sorted dots pair.
func (d Domino) Less(o Domino) bool {
	if d.lo != o.lo {
		return d.lo < o.lo
	}
	return d.hi < o.hi
}

func (d Domino) String() string {
	a, b := d.Dots()
	return fmt.Sprintf("%d|%d", a, b)
}
