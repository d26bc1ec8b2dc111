// Package game implements the Battleship rules engine: coordinates, ships,
// placements, the dual-grid board, shot resolution, and the turn loop.
//
// The engine is deliberately free of I/O. Strategies (package offense and
// package defense) and front ends (package tui, cmd/battleship) are built on
// top of the queries exposed here.
package game

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Coord identifies a single space on a board. Row 0 is the top row ("A"),
// column 0 is the leftmost column ("1").
type Coord struct {
	Row int
	Col int
}

// ParseCoord converts a label such as "A1" or "j10" into a Coord.
func ParseCoord(s string) (Coord, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if len(s) < 2 {
		return Coord{}, fmt.Errorf("coord %q: need a letter followed by a number", s)
	}
	row := int(s[0] - 'A')
	if row < 0 || row >= 26 {
		return Coord{}, fmt.Errorf("coord %q: row letter must be A-Z", s)
	}
	col, err := strconv.Atoi(s[1:])
	if err != nil {
		return Coord{}, fmt.Errorf("coord %q: invalid column: %w", s, err)
	}
	if col < 1 {
		return Coord{}, fmt.Errorf("coord %q: column must be >= 1", s)
	}
	return Coord{Row: row, Col: col - 1}, nil
}

// String returns the board label for the coord, e.g. "C6".
func (c Coord) String() string {
	return fmt.Sprintf("%c%d", 'A'+byte(c.Row), c.Col+1)
}

// Add returns the coord offset by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

// OnBoard reports whether the coord lies on a board of the given size.
func (c Coord) OnBoard(size int) bool {
	return c.Row >= 0 && c.Row < size && c.Col >= 0 && c.Col < size
}

// NextTo reports whether other is directly (orthogonally) adjacent.
func (c Coord) NextTo(other Coord) bool {
	dr, dc := c.Row-other.Row, c.Col-other.Col
	return dr*dr+dc*dc == 1
}

// DiagonalTo reports whether other is diagonally adjacent.
func (c Coord) DiagonalTo(other Coord) bool {
	return abs(c.Row-other.Row) == 1 && abs(c.Col-other.Col) == 1
}

// DistMethod selects how distances between spaces are measured.
type DistMethod int

const (
	// DistEuclidean is the straight-line distance.
	DistEuclidean DistMethod = iota
	// DistSquared is the euclidean distance squared (cheaper, same ordering).
	DistSquared
	// DistManhattan is the sum of absolute row and column deltas.
	DistManhattan
)

// DistTo returns the distance from c to other under the given method.
func (c Coord) DistTo(other Coord, method DistMethod) float64 {
	dr := float64(c.Row - other.Row)
	dc := float64(c.Col - other.Col)
	switch method {
	case DistManhattan:
		return math.Abs(dr) + math.Abs(dc)
	case DistSquared:
		return dr*dr + dc*dc
	default:
		return math.Sqrt(dr*dr + dc*dc)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
