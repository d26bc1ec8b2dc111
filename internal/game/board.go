package game

import (
	"errors"
	"fmt"
	"math/rand"
)

// TargetState is what a player knows about one space of the opponent's board.
type TargetState int8

const (
	// TargetUnknown means the space has not been fired at.
	TargetUnknown TargetState = iota
	// TargetMiss records a shot that hit open water.
	TargetMiss
	// TargetHit records a hit on an unidentified ship.
	TargetHit
	// TargetShip records a hit attributed to a specific ship type, either
	// because a sink revealed it or because deduction left only one
	// consistent placement.
	TargetShip
)

// TargetCell is one space of the target grid.
type TargetCell struct {
	State TargetState
	Ship  ShipType // set when State == TargetShip
	Sunk  bool     // true for the coord of the shot that sank Ship
}

// Outcome describes the result of a single shot.
type Outcome struct {
	Coord    Coord
	Hit      bool
	Sunk     bool
	SunkShip ShipType
	Repeat   bool // the space had already been resolved
}

func (o Outcome) String() string {
	switch {
	case o.Sunk:
		return fmt.Sprintf("%s: hit, %s sunk", o.Coord, o.SunkShip)
	case o.Hit:
		return fmt.Sprintf("%s: hit", o.Coord)
	default:
		return fmt.Sprintf("%s: miss", o.Coord)
	}
}

// Board-level errors.
var (
	ErrOffBoard     = errors.New("placement extends off the board")
	ErrOverlap      = errors.New("placement overlaps another ship")
	ErrDuplicate    = errors.New("ship type already placed")
	ErrInvalidShip  = errors.New("invalid ship type")
	ErrWrongLength  = errors.New("placement length does not match ship type")
	ErrInvalidCoord = errors.New("coordinate is not on the board")
)

// MinBoardSize and MaxBoardSize bound supported board edge lengths. The upper
// bound keeps row labels within A-Z.
const (
	MinBoardSize = 5
	MaxBoardSize = 26
	// DefaultBoardSize is the standard 10x10 board.
	DefaultBoardSize = 10
)

// Board holds one player's view of the game: the ocean grid (own ships and
// their damage) and the target grid (knowledge about the opponent built up
// from shot outcomes).
type Board struct {
	size       int
	ocean      [][]ShipType
	target     [][]TargetCell
	fleet      map[ShipType]*Ship
	placements map[ShipType]Placement
	sunkTarget map[ShipType]bool // opponent ships known to be sunk
}

// NewBoard returns an empty board. Size must be within
// [MinBoardSize, MaxBoardSize].
func NewBoard(size int) (*Board, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("board size %d out of range [%d,%d]", size, MinBoardSize, MaxBoardSize)
	}
	b := &Board{
		size:       size,
		ocean:      make([][]ShipType, size),
		target:     make([][]TargetCell, size),
		fleet:      make(map[ShipType]*Ship),
		placements: make(map[ShipType]Placement),
		sunkTarget: make(map[ShipType]bool),
	}
	for i := 0; i < size; i++ {
		b.ocean[i] = make([]ShipType, size)
		b.target[i] = make([]TargetCell, size)
	}
	return b, nil
}

// Size returns the board edge length.
func (b *Board) Size() int { return b.size }

// OceanAt returns the ship type occupying c on the ocean grid (NoShip if
// empty).
func (b *Board) OceanAt(c Coord) ShipType {
	return b.ocean[c.Row][c.Col]
}

// TargetAt returns the target-grid cell for c.
func (b *Board) TargetAt(c Coord) TargetCell {
	return b.target[c.Row][c.Col]
}

// Fleet returns the board's ships keyed by type.
func (b *Board) Fleet() map[ShipType]*Ship { return b.fleet }

// ShipAt returns the ship occupying c, or nil.
func (b *Board) ShipAt(c Coord) *Ship {
	if !c.OnBoard(b.size) {
		return nil
	}
	return b.fleet[b.ocean[c.Row][c.Col]]
}

// PlacementForShip returns the placement of the given ship type, if placed.
func (b *Board) PlacementForShip(t ShipType) (Placement, bool) {
	p, ok := b.placements[t]
	return p, ok
}

// Placements returns a copy of the fleet's placements keyed by ship type.
func (b *Board) Placements() map[ShipType]Placement {
	out := make(map[ShipType]Placement, len(b.placements))
	for t, p := range b.placements {
		out[t] = p
	}
	return out
}

// ValidPlacement reports whether p can hold a ship on the ocean grid: fully
// on board and free of other ships.
func (b *Board) ValidPlacement(p Placement) error {
	if !p.OnBoard(b.size) {
		return ErrOffBoard
	}
	for _, c := range p.Coords() {
		if b.ocean[c.Row][c.Col] != NoShip {
			return ErrOverlap
		}
	}
	return nil
}

// AddShip places a ship of type t at p.
func (b *Board) AddShip(t ShipType, p Placement) error {
	if !t.Valid() {
		return ErrInvalidShip
	}
	if _, exists := b.fleet[t]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, t)
	}
	if p.Length != t.Length() {
		return fmt.Errorf("%w: %s needs %d, got %d", ErrWrongLength, t, t.Length(), p.Length)
	}
	if err := b.ValidPlacement(p); err != nil {
		return fmt.Errorf("place %s at %s: %w", t, p, err)
	}
	ship, err := NewShip(t)
	if err != nil {
		return err
	}
	for _, c := range p.Coords() {
		b.ocean[c.Row][c.Col] = t
	}
	b.fleet[t] = ship
	b.placements[t] = p
	return nil
}

// AddFleet places every ship in the given map; the board must accept all of
// them or the call fails (partially-placed ships are not rolled back, callers
// build fleets on fresh boards).
func (b *Board) AddFleet(placements map[ShipType]Placement) error {
	for _, t := range AllShipTypes() {
		p, ok := placements[t]
		if !ok {
			return fmt.Errorf("fleet is missing a %s", t)
		}
		if err := b.AddShip(t, p); err != nil {
			return err
		}
	}
	return nil
}

// FleetAfloat reports whether any ship in the fleet is still afloat.
func (b *Board) FleetAfloat() bool {
	for _, s := range b.fleet {
		if s.Afloat() {
			return true
		}
	}
	return false
}

// ReadyToPlay reports whether the board can start a game: the full fleet is
// placed and undamaged, and neither grid has recorded a shot.
func (b *Board) ReadyToPlay() bool {
	if len(b.fleet) != NumShipTypes {
		return false
	}
	occupied := 0
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if b.ocean[r][c] != NoShip {
				occupied++
			}
			if b.target[r][c].State != TargetUnknown {
				return false
			}
		}
	}
	want := 0
	for _, s := range b.fleet {
		want += s.Len()
		for _, d := range s.Damage {
			if d > 0 {
				return false
			}
		}
	}
	return occupied == want
}

// IncomingShot resolves an opponent shot at c against the ocean grid,
// damaging the occupying ship if any.
func (b *Board) IncomingShot(c Coord) (Outcome, error) {
	if !c.OnBoard(b.size) {
		return Outcome{}, fmt.Errorf("%w: %v", ErrInvalidCoord, c)
	}
	out := Outcome{Coord: c}
	ship := b.ShipAt(c)
	if ship == nil {
		return out, nil
	}
	out.Hit = true
	slot := b.placements[ship.Type].SlotAt(c)
	dmg, err := ship.Hit(slot)
	if err != nil {
		return out, err
	}
	out.Repeat = dmg > 1
	if ship.Sunk() {
		out.Sunk = true
		out.SunkShip = ship.Type
	}
	return out, nil
}

// UpdateTargetGrid records a shot outcome on the target grid. A sink marks
// the whole revealed placement once deduction pins it down; at minimum the
// sinking coord is attributed to the sunk ship. After every update the board
// re-runs placement deduction: whenever only one target placement remains
// valid for a ship type, its generic hits are converted to that type, and the
// sweep repeats until a fixed point.
func (b *Board) UpdateTargetGrid(o Outcome) {
	cell := &b.target[o.Coord.Row][o.Coord.Col]
	switch {
	case o.Sunk:
		cell.State = TargetShip
		cell.Ship = o.SunkShip
		cell.Sunk = true
		b.sunkTarget[o.SunkShip] = true
	case o.Hit:
		if cell.State == TargetUnknown {
			cell.State = TargetHit
		}
	default:
		cell.State = TargetMiss
	}
	b.deduceTargetShips()
}

func (b *Board) deduceTargetShips() {
	for changed := true; changed; {
		changed = false
		for _, t := range AllShipTypes() {
			placements := b.AllValidTargetPlacements(t)
			if len(placements) != 1 {
				continue
			}
			for _, c := range placements[0].Coords() {
				cell := &b.target[c.Row][c.Col]
				if cell.State == TargetHit {
					cell.State = TargetShip
					cell.Ship = t
					changed = true
				}
			}
		}
	}
}

// TargetCoordsWithType returns coords on the target grid attributed to t.
func (b *Board) TargetCoordsWithType(t ShipType) []Coord {
	var coords []Coord
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			cell := b.target[r][c]
			if cell.State == TargetShip && cell.Ship == t {
				coords = append(coords, Coord{Row: r, Col: c})
			}
		}
	}
	return coords
}

// TargetShipSunk reports whether the opponent ship of type t is known sunk.
func (b *Board) TargetShipSunk(t ShipType) bool { return b.sunkTarget[t] }

// AllValidTargetPlacements returns every placement of a ship of type t that
// is consistent with the target grid: fully on board, crossing no misses and
// no other identified ship, and covering every coord already attributed to t.
// A placement consisting solely of generic hits is rejected (one of them
// would have had to be a sink). If t is known sunk, the placement may not
// include untargeted spaces.
func (b *Board) AllValidTargetPlacements(t ShipType) []Placement {
	length := t.Length()
	mustInclude := b.TargetCoordsWithType(t)
	sunk := b.sunkTarget[t]

	var placements []Placement
	for _, h := range []Heading{North, West} {
		for r := 0; r < b.size; r++ {
			for c := 0; c < b.size; c++ {
				p := Placement{Coord: Coord{Row: r, Col: c}, Heading: h, Length: length}
				if !p.OnBoard(b.size) {
					continue
				}
				if b.targetPlacementFits(p, t, mustInclude, sunk) {
					placements = append(placements, p)
				}
			}
		}
	}
	return placements
}

func (b *Board) targetPlacementFits(p Placement, t ShipType, mustInclude []Coord, sunk bool) bool {
	allHits := true
	for _, c := range p.Coords() {
		cell := b.target[c.Row][c.Col]
		switch cell.State {
		case TargetMiss:
			return false
		case TargetShip:
			if cell.Ship != t {
				return false
			}
			allHits = false
		case TargetUnknown:
			if sunk {
				return false
			}
			allHits = false
		}
	}
	if allHits && p.Length > 0 {
		return false
	}
	for _, m := range mustInclude {
		if !p.Contains(m) {
			return false
		}
	}
	return true
}

// PossibleTargetsGrid returns, for each space, the number of valid target
// placements of afloat opponent ships that cover it. It acts as an unscaled
// probability density for where remaining ships may be.
func (b *Board) PossibleTargetsGrid() [][]int {
	grid := make([][]int, b.size)
	for i := range grid {
		grid[i] = make([]int, b.size)
	}
	for _, t := range AllShipTypes() {
		if b.sunkTarget[t] {
			continue
		}
		for _, p := range b.AllValidTargetPlacements(t) {
			for _, c := range p.Coords() {
				grid[c.Row][c.Col]++
			}
		}
	}
	return grid
}

// FindHits returns target-grid coords carrying a hit. With unresolvedOnly,
// only generic hits (not yet attributed to a ship type) are returned.
func (b *Board) FindHits(unresolvedOnly bool) []Coord {
	var hits []Coord
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			s := b.target[r][c].State
			if s == TargetHit || (!unresolvedOnly && s == TargetShip) {
				hits = append(hits, Coord{Row: r, Col: c})
			}
		}
	}
	return hits
}

// AllCoords returns every coord on the board, row-major.
func (b *Board) AllCoords() []Coord {
	coords := make([]Coord, 0, b.size*b.size)
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			coords = append(coords, Coord{Row: r, Col: c})
		}
	}
	return coords
}

// Untargeted returns the coords not yet fired at, row-major.
func (b *Board) Untargeted() []Coord {
	var coords []Coord
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if b.target[r][c].State == TargetUnknown {
				coords = append(coords, Coord{Row: r, Col: c})
			}
		}
	}
	return coords
}

// TargetsAround returns the coords adjacent to c (optionally including
// diagonals), filtered to untargeted spaces when untargetedOnly is set.
func (b *Board) TargetsAround(c Coord, diagonal, untargetedOnly bool) []Coord {
	deltas := []Coord{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}
	if diagonal {
		deltas = append(deltas,
			Coord{Row: -1, Col: -1}, Coord{Row: -1, Col: 1},
			Coord{Row: 1, Col: -1}, Coord{Row: 1, Col: 1})
	}
	var out []Coord
	for _, d := range deltas {
		n := c.Add(d)
		if !n.OnBoard(b.size) {
			continue
		}
		if untargetedOnly && b.target[n.Row][n.Col].State != TargetUnknown {
			continue
		}
		out = append(out, n)
	}
	return out
}

// PlacementConstraints restrict candidate ocean-grid placements.
type PlacementConstraints struct {
	EdgeBuffer int   // spaces to leave between ship and board edge
	ShipBuffer int   // spaces to leave between ship and other ships
	Alignment  Align // restrict orientation
}

// AllValidShipPlacements returns every open placement of the given length on
// the ocean grid that satisfies the constraints.
func (b *Board) AllValidShipPlacements(length int, con PlacementConstraints) []Placement {
	var placements []Placement
	for _, h := range con.Alignment.Headings() {
		for r := 0; r < b.size; r++ {
			for c := 0; c < b.size; c++ {
				p := Placement{Coord: Coord{Row: r, Col: c}, Heading: h, Length: length}
				if b.placementSatisfies(p, con) {
					placements = append(placements, p)
				}
			}
		}
	}
	return placements
}

func (b *Board) placementSatisfies(p Placement, con PlacementConstraints) bool {
	if b.ValidPlacement(p) != nil {
		return false
	}
	for _, c := range p.Coords() {
		if c.Row < con.EdgeBuffer || c.Row >= b.size-con.EdgeBuffer ||
			c.Col < con.EdgeBuffer || c.Col >= b.size-con.EdgeBuffer {
			return false
		}
	}
	if con.ShipBuffer > 0 {
		for _, other := range b.placements {
			if p.MinDistTo(other, DistManhattan) <= float64(con.ShipBuffer) {
				return false
			}
		}
	}
	return true
}

// RandomCoord returns a uniformly random coord, optionally restricted to
// untargeted spaces.
func (b *Board) RandomCoord(rng *rand.Rand, untargeted bool) (Coord, error) {
	pool := b.AllCoords()
	if untargeted {
		pool = b.Untargeted()
	}
	if len(pool) == 0 {
		return Coord{}, errors.New("no coords available")
	}
	return pool[rng.Intn(len(pool))], nil
}

// RandomPlacement returns a uniformly random valid placement for a ship of
// the given length, honoring the constraints.
func (b *Board) RandomPlacement(rng *rand.Rand, length int, con PlacementConstraints) (Placement, error) {
	pool := b.AllValidShipPlacements(length, con)
	if len(pool) == 0 {
		return Placement{}, fmt.Errorf("no valid placement of length %d", length)
	}
	return pool[rng.Intn(len(pool))], nil
}
