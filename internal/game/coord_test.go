package game

import (
	"math"
	"testing"
)

func TestParseCoord(t *testing.T) {
	cases := []struct {
		in      string
		want    Coord
		wantErr bool
	}{
		{"A1", Coord{0, 0}, false},
		{"a1", Coord{0, 0}, false},
		{"J10", Coord{9, 9}, false},
		{" C6 ", Coord{2, 5}, false},
		{"Z26", Coord{25, 25}, false},
		{"A0", Coord{}, true},
		{"A", Coord{}, true},
		{"11", Coord{}, true},
		{"Ax", Coord{}, true},
		{"", Coord{}, true},
	}
	for _, tc := range cases {
		got, err := ParseCoord(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseCoord(%q): expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCoord(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseCoord(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCoordString(t *testing.T) {
	for _, label := range []string{"A1", "C6", "J10", "Z26"} {
		c, err := ParseCoord(label)
		if err != nil {
			t.Fatalf("ParseCoord(%q): %v", label, err)
		}
		if got := c.String(); got != label {
			t.Errorf("Coord %v String() = %q, want %q", c, got, label)
		}
	}
}

func TestAdjacency(t *testing.T) {
	c := Coord{Row: 4, Col: 4}
	if !c.NextTo(Coord{Row: 3, Col: 4}) || !c.NextTo(Coord{Row: 4, Col: 5}) {
		t.Error("orthogonal neighbors should be NextTo")
	}
	if c.NextTo(Coord{Row: 3, Col: 3}) {
		t.Error("diagonal neighbor should not be NextTo")
	}
	if c.NextTo(c) {
		t.Error("a coord is not NextTo itself")
	}
	if !c.DiagonalTo(Coord{Row: 3, Col: 3}) {
		t.Error("diagonal neighbor should be DiagonalTo")
	}
	if c.DiagonalTo(Coord{Row: 3, Col: 4}) {
		t.Error("orthogonal neighbor should not be DiagonalTo")
	}
}

func TestDistTo(t *testing.T) {
	a := Coord{Row: 0, Col: 0}
	b := Coord{Row: 3, Col: 4}
	if got := a.DistTo(b, DistEuclidean); math.Abs(got-5) > 1e-9 {
		t.Errorf("euclidean = %v, want 5", got)
	}
	if got := a.DistTo(b, DistSquared); got != 25 {
		t.Errorf("squared = %v, want 25", got)
	}
	if got := a.DistTo(b, DistManhattan); got != 7 {
		t.Errorf("manhattan = %v, want 7", got)
	}
}
