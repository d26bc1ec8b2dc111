package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPlacementCoords(t *testing.T) {
	north := Placement{Coord: Coord{Row: 2, Col: 3}, Heading: North, Length: 3}
	want := []Coord{{2, 3}, {3, 3}, {4, 3}}
	if diff := cmp.Diff(want, north.Coords()); diff != "" {
		t.Errorf("north coords mismatch (-want +got):\n%s", diff)
	}

	west := Placement{Coord: Coord{Row: 2, Col: 3}, Heading: West, Length: 3}
	want = []Coord{{2, 3}, {2, 4}, {2, 5}}
	if diff := cmp.Diff(want, west.Coords()); diff != "" {
		t.Errorf("west coords mismatch (-want +got):\n%s", diff)
	}
}

func TestPlacementEqual(t *testing.T) {
	north := Placement{Coord: Coord{Row: 2, Col: 3}, Heading: North, Length: 3}
	// The same spaces anchored from the far end, facing south.
	south := Placement{Coord: Coord{Row: 4, Col: 3}, Heading: South, Length: 3}
	if !north.Equal(south) {
		t.Errorf("%v and %v occupy the same spaces, should be equal", north, south)
	}
	shifted := Placement{Coord: Coord{Row: 3, Col: 3}, Heading: North, Length: 3}
	if north.Equal(shifted) {
		t.Errorf("%v and %v should not be equal", north, shifted)
	}
}

func TestPlacementSlots(t *testing.T) {
	p := Placement{Coord: Coord{Row: 5, Col: 1}, Heading: West, Length: 4}
	if got := p.SlotAt(Coord{Row: 5, Col: 3}); got != 2 {
		t.Errorf("SlotAt = %d, want 2", got)
	}
	if got := p.SlotAt(Coord{Row: 6, Col: 1}); got != -1 {
		t.Errorf("SlotAt off the ship = %d, want -1", got)
	}
	if !p.Contains(Coord{Row: 5, Col: 4}) {
		t.Error("Contains should report the last slot")
	}
}

func TestPlacementOnBoard(t *testing.T) {
	p := Placement{Coord: Coord{Row: 8, Col: 0}, Heading: North, Length: 3}
	if p.OnBoard(10) {
		t.Error("placement extending past the bottom edge should be off board")
	}
	p.Coord.Row = 7
	if !p.OnBoard(10) {
		t.Error("placement ending on the last row should be on board")
	}
}

func TestParseHeading(t *testing.T) {
	for in, want := range map[string]Heading{
		"N": North, "north": North, "S": South, "e": East, "West": West,
	} {
		got, err := ParseHeading(in)
		if err != nil || got != want {
			t.Errorf("ParseHeading(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseHeading("up"); err == nil {
		t.Error("invalid heading should fail")
	}
}

func TestParseAlign(t *testing.T) {
	for in, want := range map[string]Align{
		"":      AlignAny,
		"any":   AlignAny,
		"V":     AlignVertical,
		"N/S":   AlignVertical,
		"north": AlignVertical,
		"E-W":   AlignHorizontal,
		"h":     AlignHorizontal,
	} {
		got, err := ParseAlign(in)
		if err != nil || got != want {
			t.Errorf("ParseAlign(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseAlign("diagonal"); err == nil {
		t.Error("invalid alignment should fail")
	}
}

func TestPlacementDistances(t *testing.T) {
	a := Placement{Coord: Coord{Row: 0, Col: 0}, Heading: West, Length: 2}
	b := Placement{Coord: Coord{Row: 0, Col: 4}, Heading: West, Length: 2}
	// Nearest spaces are (0,1) and (0,4).
	if got := a.MinDistTo(b, DistManhattan); got != 3 {
		t.Errorf("MinDistTo = %v, want 3", got)
	}
	if got := a.TotalDistToCoord(Coord{Row: 0, Col: 2}, DistManhattan); got != 3 {
		t.Errorf("TotalDistToCoord = %v, want 3", got)
	}
}
