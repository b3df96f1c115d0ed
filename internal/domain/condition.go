package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ConditionKind identifies one of the five region condition variants.
type ConditionKind int

const (
	// SumEquals requires the dots in the region to add up to Number.
	SumEquals ConditionKind = iota
	// AllEqual requires every space in the region to show the same dots.
	AllEqual
	// AllDistinct requires every space in the region to show different dots.
	AllDistinct
	// SumGreaterThan requires the dots to sum to more than Number.
	SumGreaterThan
	// SumLessThan requires the dots to sum to less than Number.
	SumLessThan
)

// Terse symbols for the payload-free condition variants.
const (
	equalSymbol       = "="
	notEqualSymbol    = "=/="
	greaterThanPrefix = ">"
	lessThanPrefix    = "<"
)

var (
	// ErrConditionNumber indicates a condition number outside its variant's
	// allowed range.
	ErrConditionNumber = errors.New("invalid condition number")
	// ErrBadCondition indicates a terse string no variant accepts.
	ErrBadCondition = errors.New("invalid terse condition string")
)

// Condition is a constraint on the dots shown inside one board region. The
// zero value is SumEquals zero. Conditions are comparable with ==.
type Condition struct {
	Kind   ConditionKind
	Number int
}

// NewSum builds the condition that region dots sum to exactly n.
func NewSum(n int) (Condition, error) {
	if n < 0 {
		return Condition{}, fmt.Errorf("%w: sum condition cannot be negative, got %d", ErrConditionNumber, n)
	}
	return Condition{Kind: SumEquals, Number: n}, nil
}

// NewAllEqual builds the condition that all region dots are equal.
func NewAllEqual() Condition { return Condition{Kind: AllEqual} }

// NewAllDistinct builds the condition that all region dots differ.
func NewAllDistinct() Condition { return Condition{Kind: AllDistinct} }

// NewSumGreaterThan builds the condition that region dots sum to more than n.
func NewSumGreaterThan(n int) (Condition, error) {
	if n < 0 {
		return Condition{}, fmt.Errorf("%w: greater-than condition cannot be negative, got %d", ErrConditionNumber, n)
	}
	return Condition{Kind: SumGreaterThan, Number: n}, nil
}

// NewSumLessThan builds the condition that region dots sum to less than n.
func NewSumLessThan(n int) (Condition, error) {
	if n <= 0 {
		return Condition{}, fmt.Errorf("%w: less-than condition must be positive, got %d", ErrConditionNumber, n)
	}
	return Condition{Kind: SumLessThan, Number: n}, nil
}

// ParseCondition parses a terse condition string by trying each variant in
// order and returning the first match.
func ParseCondition(s string) (Condition, error) {
	parsers := []func(string) (Condition, bool){
		maybeParseSum,
		maybeParseAllEqual,
		maybeParseAllDistinct,
		maybeParseSumGreaterThan,
		maybeParseSumLessThan,
	}
	t := strings.TrimSpace(s)
	for _, parse := range parsers {
		if c, ok := parse(t); ok {
			return c, nil
		}
	}
	return Condition{}, fmt.Errorf("%w: %q", ErrBadCondition, s)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func maybeParseSum(s string) (Condition, bool) {
	if !allDigits(s) {
		return Condition{}, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Condition{}, false
	}
	c, err := NewSum(n)
	return c, err == nil
}

func maybeParseAllEqual(s string) (Condition, bool) {
	if s != equalSymbol {
		return Condition{}, false
	}
	return NewAllEqual(), true
}

func maybeParseAllDistinct(s string) (Condition, bool) {
	if s != notEqualSymbol {
		return Condition{}, false
	}
	return NewAllDistinct(), true
}

func maybeParseSumGreaterThan(s string) (Condition, bool) {
	rest, ok := strings.CutPrefix(s, greaterThanPrefix)
	if !ok || !allDigits(rest) {
		return Condition{}, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return Condition{}, false
	}
	c, err := NewSumGreaterThan(n)
	return c, err == nil
}

func maybeParseSumLessThan(s string) (Condition, bool) {
	rest, ok := strings.CutPrefix(s, lessThanPrefix)
	if !ok || !allDigits(rest) {
		return Condition{}, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return Condition{}, false
	}
	c, err := NewSumLessThan(n)
	return c, err == nil
}

// Terse returns the canonical terse string; ParseCondition is its exact
// inverse.
func (c Condition) Terse() string {
	switch c.Kind {
	case SumEquals:
		return strconv.Itoa(c.Number)
	case AllEqual:
		return equalSymbol
	case AllDistinct:
		return notEqualSymbol
	case SumGreaterThan:
		return greaterThanPrefix + strconv.Itoa(c.Number)
	case SumLessThan:
		return lessThanPrefix + strconv.Itoa(c.Number)
	}
	return "?"
}

func (c Condition) String() string {
	switch c.Kind {
	case SumEquals:
		return fmt.Sprintf("Sum(%d)", c.Number)
	case AllEqual:
		return "AllEqual"
	case AllDistinct:
		return "AllDistinct"
	case SumGreaterThan:
		return fmt.Sprintf("SumGreaterThan(%d)", c.Number)
	case SumLessThan:
		return fmt.Sprintf("SumLessThan(%d)", c.Number)
	}
	return fmt.Sprintf("Condition(kind=%d)", int(c.Kind))
}
