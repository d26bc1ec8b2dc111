package game

import (
	"fmt"
	"math"
	"strings"
)

// Heading is the direction a ship faces. A ship placed heading North extends
// downward from its anchor coord (toward higher rows); heading West extends
// rightward (toward higher columns). South and East describe the same spaces
// anchored from the opposite end.
type Heading int

const (
	North Heading = iota
	South
	East
	West
)

func (h Heading) String() string {
	switch h {
	case North:
		return "N"
	case South:
		return "S"
	case East:
		return "E"
	case West:
		return "W"
	}
	return "?"
}

// Delta returns the per-slot offset for the heading.
func (h Heading) Delta() Coord {
	switch h {
	case North:
		return Coord{Row: 1}
	case South:
		return Coord{Row: -1}
	case East:
		return Coord{Col: -1}
	case West:
		return Coord{Col: 1}
	}
	return Coord{}
}

// ParseHeading accepts "N", "north", "West", etc.
func ParseHeading(s string) (Heading, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "N", "NORTH":
		return North, nil
	case "S", "SOUTH":
		return South, nil
	case "E", "EAST":
		return East, nil
	case "W", "WEST":
		return West, nil
	}
	return North, fmt.Errorf("invalid heading %q", s)
}

// Align constrains ship orientation during placement.
type Align int

const (
	AlignAny Align = iota
	AlignVertical
	AlignHorizontal
)

func (a Align) String() string {
	switch a {
	case AlignVertical:
		return "vertical"
	case AlignHorizontal:
		return "horizontal"
	}
	return "any"
}

// ParseAlign accepts the directional spellings used by placement options:
// "any", "vertical", "N/S", "north", "h", "E-W", and so on.
func ParseAlign(s string) (Align, error) {
	switch strings.ToUpper(strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(s), "-", "/"), " ", "")) {
	case "", "ANY", "ALL", "BOTH":
		return AlignAny, nil
	case "V", "VERTICAL", "N", "S", "NS", "SN", "N/S", "S/N", "NORTH", "SOUTH", "NORTH/SOUTH":
		return AlignVertical, nil
	case "H", "HORIZONTAL", "E", "W", "EW", "WE", "E/W", "W/E", "EAST", "WEST", "EAST/WEST":
		return AlignHorizontal, nil
	}
	return AlignAny, fmt.Errorf("invalid alignment %q", s)
}

// Headings returns the headings allowed under the alignment. Only North and
// West are generated since South and East describe the same space sets.
func (a Align) Headings() []Heading {
	switch a {
	case AlignVertical:
		return []Heading{North}
	case AlignHorizontal:
		return []Heading{West}
	}
	return []Heading{North, West}
}

// Placement locates a ship on a board: an anchor coordinate, a facing, and a
// length.
type Placement struct {
	Coord   Coord
	Heading Heading
	Length  int
}

// Coords returns the spaces the placement occupies. Index 0 is the anchor.
func (p Placement) Coords() []Coord {
	d := p.Heading.Delta()
	coords := make([]Coord, p.Length)
	for i := range coords {
		coords[i] = Coord{Row: p.Coord.Row + i*d.Row, Col: p.Coord.Col + i*d.Col}
	}
	return coords
}

// Contains reports whether the placement occupies c.
func (p Placement) Contains(c Coord) bool {
	for _, pc := range p.Coords() {
		if pc == c {
			return true
		}
	}
	return false
}

// SlotAt returns the slot index of c within the placement, or -1.
func (p Placement) SlotAt(c Coord) int {
	for i, pc := range p.Coords() {
		if pc == c {
			return i
		}
	}
	return -1
}

// OnBoard reports whether every occupied space lies on a board of the given
// size.
func (p Placement) OnBoard(size int) bool {
	for _, c := range p.Coords() {
		if !c.OnBoard(size) {
			return false
		}
	}
	return true
}

// Equal reports whether two placements occupy the same set of spaces. A
// North placement and the South placement anchored at its far end are equal.
func (p Placement) Equal(other Placement) bool {
	if p.Length != other.Length {
		return false
	}
	for _, c := range other.Coords() {
		if !p.Contains(c) {
			return false
		}
	}
	return true
}

func (p Placement) String() string {
	return fmt.Sprintf("%s %s x%d", p.Coord, p.Heading, p.Length)
}

// MinDistTo returns the smallest distance between any space of p and any
// space of other. MinDistTo - 1 is the buffer (empty spaces) separating the
// two placements when they share a row or column.
func (p Placement) MinDistTo(other Placement, method DistMethod) float64 {
	min := math.Inf(1)
	for _, a := range p.Coords() {
		for _, b := range other.Coords() {
			if d := a.DistTo(b, method); d < min {
				min = d
			}
		}
	}
	return min
}

// TotalDistTo returns the sum of distances between every pair of spaces in
// the two placements. Used by formation-aware defenses to rank candidate
// placements as near or far from the already-placed fleet.
func (p Placement) TotalDistTo(other Placement, method DistMethod) float64 {
	var total float64
	for _, a := range p.Coords() {
		for _, b := range other.Coords() {
			total += a.DistTo(b, method)
		}
	}
	return total
}

// TotalDistToCoord returns the sum of distances from every space of p to c.
func (p Placement) TotalDistToCoord(c Coord, method DistMethod) float64 {
	var total float64
	for _, a := range p.Coords() {
		total += a.DistTo(c, method)
	}
	return total
}
