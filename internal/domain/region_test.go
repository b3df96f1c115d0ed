package domain

import (
	"errors"
	"testing"
)

func TestNewRegionSortsSpaces(t *testing.T) {
	r, err := NewRegion([]Space{{2, 1}, {1, 1}, {1, 2}})
	if err != nil {
		t.Fatalf("NewRegion failed: %v", err)
	}
	got := r.Spaces()
	want := []Space{{1, 1}, {1, 2}, {2, 1}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Spaces() = %v, want %v", got, want)
		}
	}
}

func TestNewRegionRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		spaces []Space
		want   error
	}{
		{"empty", nil, ErrEmptyRegion},
		{"duplicate", []Space{{1, 1}, {1, 1}}, ErrDuplicateSpaces},
		{"disconnected", []Space{{1, 1}, {1, 3}}, ErrDisconnectedRegion},
		{"diagonal", []Space{{1, 1}, {2, 2}}, ErrDisconnectedRegion},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewRegion(tc.spaces); !errors.Is(err, tc.want) {
				t.Fatalf("NewRegion err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRegionLShapeIsConnected(t *testing.T) {
	if _, err := NewRegion([]Space{{1, 1}, {2, 1}, {2, 2}, {2, 3}}); err != nil {
		t.Fatalf("L-shaped region should build: %v", err)
	}
}

func TestRegionContainsAndOverlaps(t *testing.T) {
	a, _ := NewRegion([]Space{{1, 1}, {1, 2}})
	b, _ := NewRegion([]Space{{1, 2}, {1, 3}})
	c, _ := NewRegion([]Space{{2, 1}, {2, 2}})

	if !a.Contains(Space{1, 2}) || a.Contains(Space{2, 1}) {
		t.Error("Contains misreports membership")
	}
	if !a.OverlapsWith(b) {
		t.Error("regions sharing 1,2 must overlap")
	}
	if a.OverlapsWith(c) {
		t.Error("disjoint regions must not overlap")
	}
}

func TestRegionEqualAndLess(t *testing.T) {
	a, _ := NewRegion([]Space{{1, 2}, {1, 1}})
	b, _ := NewRegion([]Space{{1, 1}, {1, 2}})
	c, _ := NewRegion([]Space{{1, 1}, {1, 2}, {1, 3}})

	if !a.Equal(b) {
		t.Error("same spaces in any input order must be equal")
	}
	if a.Equal(c) {
		t.Error("different sizes must not be equal")
	}
	if !a.Less(c) {
		t.Error("a prefix region must sort before its extension")
	}
	if c.Less(a) {
		t.Error("ordering must be antisymmetric")
	}
}
