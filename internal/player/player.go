// Package player provides the participants the game engine drives: AI
// players composed from an offense and a defense, and a human player whose
// targets are injected by a front end such as the TUI.
package player

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/jayseearr/battleship/internal/defense"
	"github.com/jayseearr/battleship/internal/game"
	"github.com/jayseearr/battleship/internal/offense"
)

// Spec describes a player in configuration.
type Spec struct {
	Name    string       `yaml:"name"`
	Offense offense.Spec `yaml:"offense"`
	Defense defense.Spec `yaml:"defense"`
}

// base carries the state shared by AI and human players.
type base struct {
	name    string
	size    int
	board   *game.Board
	history []game.Outcome
	sunk    int // opponent ships this player has sunk
}

func newBase(name string, size int) (base, error) {
	b, err := game.NewBoard(size)
	if err != nil {
		return base{}, err
	}
	return base{name: name, size: size, board: b}, nil
}

// Name returns the player's display name.
func (b *base) Name() string { return b.name }

// Board returns the player's board.
func (b *base) Board() *game.Board { return b.board }

// History returns the outcomes of the player's shots, oldest first.
func (b *base) History() []game.Outcome { return b.history }

// Alive reports whether the player still has a ship afloat.
func (b *base) Alive() bool { return b.board.FleetAfloat() }

// Stats summarizes the player's shots and fleet state.
func (b *base) Stats() game.PlayerStats {
	s := game.PlayerStats{Shots: len(b.history), ShipsSunk: b.sunk}
	for _, o := range b.history {
		if o.Hit {
			s.Hits++
		} else {
			s.Misses++
		}
	}
	if s.Shots > 0 {
		s.HitRate = float64(s.Hits) / float64(s.Shots)
	}
	for _, ship := range b.board.Fleet() {
		if ship.Sunk() {
			s.ShipsLost++
		}
	}
	return s
}

// fire resolves a shot against the opponent and records the outcome on this
// player's target grid and history.
func (b *base) fire(opponent game.Player, target game.Coord) (game.Outcome, error) {
	out, err := opponent.Board().IncomingShot(target)
	if err != nil {
		return game.Outcome{}, err
	}
	b.board.UpdateTargetGrid(out)
	b.history = append(b.history, out)
	if out.Sunk {
		b.sunk++
	}
	return out, nil
}

func (b *base) reset() error {
	board, err := game.NewBoard(b.size)
	if err != nil {
		return err
	}
	b.board = board
	b.history = nil
	b.sunk = 0
	return nil
}

// AI is a fully automated player.
type AI struct {
	base
	off offense.Offense
	def defense.Defense
	log *zap.Logger
}

// NewAI builds an AI player from its spec. The rng is shared with the
// player's strategies; pass a seeded rng for reproducible games.
func NewAI(spec Spec, boardSize int, rng *rand.Rand, log *zap.Logger) (*AI, error) {
	if spec.Name == "" {
		spec.Name = "AI"
	}
	if log == nil {
		log = zap.NewNop()
	}
	b, err := newBase(spec.Name, boardSize)
	if err != nil {
		return nil, err
	}
	off, err := offense.New(spec.Offense, rng)
	if err != nil {
		return nil, fmt.Errorf("player %s: %w", spec.Name, err)
	}
	def, err := defense.New(spec.Defense, rng)
	if err != nil {
		return nil, fmt.Errorf("player %s: %w", spec.Name, err)
	}
	return &AI{base: b, off: off, def: def, log: log}, nil
}

// PrepareFleet asks the defense for placements and applies them.
func (a *AI) PrepareFleet() error {
	placements, err := a.def.Fleet(a.size)
	if err != nil {
		return err
	}
	if err := a.board.AddFleet(placements); err != nil {
		return err
	}
	a.log.Debug("fleet placed", zap.String("player", a.name))
	return nil
}

// TakeTurn asks the offense for a target and fires at the opponent.
func (a *AI) TakeTurn(opponent game.Player) (game.Outcome, error) {
	target, err := a.off.Target(a.board, a.history)
	if err != nil {
		return game.Outcome{}, fmt.Errorf("%s targeting: %w", a.name, err)
	}
	out, err := a.fire(opponent, target)
	if err != nil {
		return game.Outcome{}, err
	}
	a.off.Update(out)
	return out, nil
}

// Reset clears board, history, and offense state for a new game.
func (a *AI) Reset() error {
	if err := a.reset(); err != nil {
		return err
	}
	a.off.Reset()
	return nil
}

// Human is a player whose fleet and targets are chosen by a front end. The
// engine sees it as any other player; the front end queues the next target
// before each turn.
type Human struct {
	base
	next *game.Coord
}

// NewHuman returns a human player with an empty board.
func NewHuman(name string, boardSize int) (*Human, error) {
	if name == "" {
		name = "Player"
	}
	b, err := newBase(name, boardSize)
	if err != nil {
		return nil, err
	}
	return &Human{base: b}, nil
}

// PlaceFleet applies placements chosen by the front end.
func (h *Human) PlaceFleet(placements map[game.ShipType]game.Placement) error {
	return h.board.AddFleet(placements)
}

// PrepareFleet is a no-op: the front end places the fleet via PlaceFleet.
func (h *Human) PrepareFleet() error {
	if len(h.board.Fleet()) != game.NumShipTypes {
		return fmt.Errorf("%s: fleet not placed", h.name)
	}
	return nil
}

// SetTarget queues the coord the next TakeTurn will fire at.
func (h *Human) SetTarget(c game.Coord) { h.next = &c }

// TakeTurn fires at the queued target.
func (h *Human) TakeTurn(opponent game.Player) (game.Outcome, error) {
	if h.next == nil {
		return game.Outcome{}, fmt.Errorf("%s: no target selected", h.name)
	}
	target := *h.next
	h.next = nil
	return h.fire(opponent, target)
}

// Reset clears the board and any queued target.
func (h *Human) Reset() error {
	h.next = nil
	return h.reset()
}
