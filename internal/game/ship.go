package game

import (
	"fmt"
	"strings"
)

// ShipType identifies one of the five standard ships. The zero value means
// "no ship" and is what empty ocean-grid spaces hold.
type ShipType int

const (
	NoShip     ShipType = 0
	Patrol     ShipType = 1
	Destroyer  ShipType = 2
	Submarine  ShipType = 3
	Battleship ShipType = 4
	Carrier    ShipType = 5
)

// NumShipTypes is the number of ship types in a standard fleet.
const NumShipTypes = 5

var shipData = map[ShipType]struct {
	name   string
	length int
}{
	Patrol:     {"Patrol", 2},
	Destroyer:  {"Destroyer", 3},
	Submarine:  {"Submarine", 3},
	Battleship: {"Battleship", 4},
	Carrier:    {"Carrier", 5},
}

// AllShipTypes returns the standard fleet's ship types in ascending order.
func AllShipTypes() []ShipType {
	return []ShipType{Patrol, Destroyer, Submarine, Battleship, Carrier}
}

// Valid reports whether t is one of the five real ship types.
func (t ShipType) Valid() bool {
	_, ok := shipData[t]
	return ok
}

func (t ShipType) String() string {
	if d, ok := shipData[t]; ok {
		return d.name
	}
	return fmt.Sprintf("ShipType(%d)", int(t))
}

// Length returns the number of spaces the ship type occupies.
func (t ShipType) Length() int {
	return shipData[t].length
}

// ShipTypeForName resolves a ship name ("carrier", "sub", "patrol boat") to
// its type. Case insensitive.
func ShipTypeForName(name string) (ShipType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "patrol", "patrol boat":
		return Patrol, nil
	case "destroyer":
		return Destroyer, nil
	case "submarine", "sub":
		return Submarine, nil
	case "battleship":
		return Battleship, nil
	case "carrier":
		return Carrier, nil
	}
	return NoShip, fmt.Errorf("unknown ship name %q", name)
}

// Ship is one vessel in a fleet with per-slot damage. Slot i corresponds to
// the i-th coordinate of the ship's placement.
type Ship struct {
	Type   ShipType
	Damage []int
}

// NewShip returns an undamaged ship of the given type.
func NewShip(t ShipType) (*Ship, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid ship type %d", int(t))
	}
	return &Ship{Type: t, Damage: make([]int, t.Length())}, nil
}

// Len returns the number of slots on the ship.
func (s *Ship) Len() int { return len(s.Damage) }

// Hit records a point of damage at the given slot and returns the total
// damage there. Hitting an already-damaged slot is allowed (repeat shots).
func (s *Ship) Hit(slot int) (int, error) {
	if slot < 0 || slot >= len(s.Damage) {
		return 0, fmt.Errorf("%s: hit slot %d out of range [0,%d)", s.Type, slot, len(s.Damage))
	}
	s.Damage[slot]++
	return s.Damage[slot], nil
}

// Afloat reports whether at least one slot is undamaged.
func (s *Ship) Afloat() bool {
	for _, d := range s.Damage {
		if d == 0 {
			return true
		}
	}
	return false
}

// Sunk reports whether every slot has taken damage.
func (s *Ship) Sunk() bool { return !s.Afloat() }

func (s *Ship) String() string {
	str := fmt.Sprintf("%s (%d slots, damage %v)", s.Type, s.Len(), s.Damage)
	if s.Sunk() {
		str += " SUNK"
	}
	return str
}
