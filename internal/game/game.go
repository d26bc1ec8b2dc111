package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Player is the engine's view of a participant. Implementations live in
// package player; the engine only needs fleet preparation, turn taking, and
// liveness.
type Player interface {
	Name() string
	Board() *Board
	// PrepareFleet places the player's ships on its board.
	PrepareFleet() error
	// TakeTurn selects a target, fires at the opponent's board, and records
	// the outcome on the player's own target grid and history.
	TakeTurn(opponent Player) (Outcome, error)
	// Alive reports whether the player still has a ship afloat.
	Alive() bool
	// Stats summarizes the player's shots so far.
	Stats() PlayerStats
	// Reset clears board, history, and strategy state for a new game.
	Reset() error
}

// PlayerStats summarizes one player's game.
type PlayerStats struct {
	Shots     int     `json:"shots"`
	Hits      int     `json:"hits"`
	Misses    int     `json:"misses"`
	HitRate   float64 `json:"hit_rate"`
	ShipsSunk int     `json:"ships_sunk"`
	ShipsLost int     `json:"ships_lost"`
}

// First-move selectors for Game.Play.
const (
	// FirstMoveRandom lets the game flip a coin.
	FirstMoveRandom  = 0
	FirstMovePlayer1 = 1
	FirstMovePlayer2 = 2
)

// DefaultMaxTurns bounds interactive games. Bulk simulations use a much
// tighter bound (see package sim).
const DefaultMaxTurns = 5000

// Result is the record of one completed game.
type Result struct {
	GameID       string
	Winner       Player // nil on tie
	Loser        Player // nil on tie
	Tie          bool
	FirstMove    int // 1 or 2
	TurnCount    int
	MaxTurns     int
	Duration     time.Duration
	StartedAt    time.Time
	Player1Stats PlayerStats
	Player2Stats PlayerStats
}

// Options configures a Game. Zero values select defaults.
type Options struct {
	ID       string
	MaxTurns int
	Rand     *rand.Rand
	Logger   *zap.Logger
}

// Game plays two players against each other.
type Game struct {
	id       string
	player1  Player
	player2  Player
	maxTurns int
	rng      *rand.Rand
	log      *zap.Logger

	ready     bool
	turnCount int
}

// NewGame pairs two players. Neither fleet is placed until Setup.
func NewGame(p1, p2 Player, opts Options) *Game {
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = DefaultMaxTurns
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Game{
		id:       opts.ID,
		player1:  p1,
		player2:  p2,
		maxTurns: opts.MaxTurns,
		rng:      opts.Rand,
		log:      opts.Logger,
	}
}

// ID returns the game's identifier.
func (g *Game) ID() string { return g.id }

// TurnCount returns the number of completed turns.
func (g *Game) TurnCount() int { return g.turnCount }

// Setup places both fleets and readies the game.
func (g *Game) Setup() error {
	if err := g.player1.PrepareFleet(); err != nil {
		return fmt.Errorf("player 1 fleet: %w", err)
	}
	if err := g.player2.PrepareFleet(); err != nil {
		return fmt.Errorf("player 2 fleet: %w", err)
	}
	if !g.player1.Board().ReadyToPlay() || !g.player2.Board().ReadyToPlay() {
		return errors.New("boards are not ready to play")
	}
	g.turnCount = 0
	g.ready = true
	return nil
}

// Reset clears both players for another game. With setup true the fleets are
// immediately re-placed.
func (g *Game) Reset(setup bool) error {
	if err := g.player1.Reset(); err != nil {
		return err
	}
	if err := g.player2.Reset(); err != nil {
		return err
	}
	g.ready = false
	g.turnCount = 0
	if setup {
		return g.Setup()
	}
	return nil
}

// PlayOneTurn lets each player fire once, first player first. The second
// player only fires if still alive after the first shot (the first player can
// win outright). Returns false when the game is over.
func (g *Game) PlayOneTurn(first, second Player) (bool, error) {
	if !g.ready {
		return false, errors.New("game is not set up")
	}
	out1, err := first.TakeTurn(second)
	if err != nil {
		return false, fmt.Errorf("%s turn: %w", first.Name(), err)
	}
	g.log.Debug("shot resolved",
		zap.String("game_id", g.id),
		zap.String("player", first.Name()),
		zap.String("outcome", out1.String()))
	if second.Alive() {
		out2, err := second.TakeTurn(first)
		if err != nil {
			return false, fmt.Errorf("%s turn: %w", second.Name(), err)
		}
		g.log.Debug("shot resolved",
			zap.String("game_id", g.id),
			zap.String("player", second.Name()),
			zap.String("outcome", out2.String()))
	}
	g.turnCount++
	return first.Alive() && second.Alive(), nil
}

// Play runs the game to completion. firstMove is FirstMovePlayer1,
// FirstMovePlayer2, or FirstMoveRandom.
func (g *Game) Play(firstMove int) (Result, error) {
	start := time.Now()
	if firstMove == FirstMoveRandom {
		firstMove = 1 + g.rng.Intn(2)
	}
	var first, second Player
	switch firstMove {
	case FirstMovePlayer1:
		first, second = g.player1, g.player2
	case FirstMovePlayer2:
		first, second = g.player2, g.player1
	default:
		return Result{}, fmt.Errorf("invalid first move %d", firstMove)
	}
	if !g.ready {
		return Result{}, errors.New("game is not set up")
	}

	for {
		playing, err := g.PlayOneTurn(first, second)
		if err != nil {
			return Result{}, err
		}
		if !playing || g.turnCount >= g.maxTurns {
			break
		}
	}
	g.ready = false

	res := Result{
		GameID:       g.id,
		FirstMove:    firstMove,
		TurnCount:    g.turnCount,
		MaxTurns:     g.maxTurns,
		Duration:     time.Since(start),
		StartedAt:    start,
		Player1Stats: g.player1.Stats(),
		Player2Stats: g.player2.Stats(),
	}
	switch {
	case first.Alive() && !second.Alive():
		res.Winner, res.Loser = first, second
	case second.Alive() && !first.Alive():
		res.Winner, res.Loser = second, first
	default:
		// Max turns reached, or both fleets destroyed on the same turn.
		res.Tie = true
	}

	if res.Tie {
		g.log.Info("game tied",
			zap.String("game_id", g.id),
			zap.Int("turns", res.TurnCount))
	} else {
		g.log.Info("game over",
			zap.String("game_id", g.id),
			zap.String("winner", res.Winner.Name()),
			zap.Int("turns", res.TurnCount))
	}
	return res, nil
}
