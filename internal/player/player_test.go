package player

import (
	"math/rand"
	"testing"

	"github.com/jayseearr/battleship/internal/game"
	"github.com/jayseearr/battleship/internal/offense"
)

func testSpec(name string) Spec {
	return Spec{
		Name:    name,
		Offense: offense.Spec{Strategy: "hunter"},
	}
}

func TestNewAI(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ai, err := NewAI(testSpec("Admiral"), game.DefaultBoardSize, rng, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ai.Name() != "Admiral" {
		t.Errorf("name = %q", ai.Name())
	}
	if ai.Alive() {
		t.Error("player without a fleet should not be alive")
	}

	if _, err := NewAI(Spec{Offense: offense.Spec{Strategy: "bogus"}}, game.DefaultBoardSize, rng, nil); err == nil {
		t.Error("bad offense spec should fail")
	}
	if _, err := NewAI(testSpec("x"), 3, rng, nil); err == nil {
		t.Error("bad board size should fail")
	}
}

func TestAIPrepareFleet(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	ai, err := NewAI(testSpec("a"), game.DefaultBoardSize, rng, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := ai.PrepareFleet(); err != nil {
		t.Fatal(err)
	}
	if !ai.Board().ReadyToPlay() {
		t.Error("board should be ready after PrepareFleet")
	}
	if !ai.Alive() {
		t.Error("player with a fresh fleet should be alive")
	}
}

func TestAITakeTurn(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a, _ := NewAI(testSpec("a"), game.DefaultBoardSize, rng, nil)
	b, _ := NewAI(testSpec("b"), game.DefaultBoardSize, rng, nil)
	if err := a.PrepareFleet(); err != nil {
		t.Fatal(err)
	}
	if err := b.PrepareFleet(); err != nil {
		t.Fatal(err)
	}

	out, err := a.TakeTurn(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.History()) != 1 {
		t.Fatalf("history length = %d", len(a.History()))
	}
	if a.History()[0] != out {
		t.Error("history does not record the outcome")
	}
	if got := a.Board().TargetAt(out.Coord).State; got == game.TargetUnknown {
		t.Error("target grid not updated after firing")
	}

	stats := a.Stats()
	if stats.Shots != 1 {
		t.Errorf("shots = %d, want 1", stats.Shots)
	}
	if out.Hit && stats.Hits != 1 || !out.Hit && stats.Misses != 1 {
		t.Errorf("stats %+v inconsistent with outcome %+v", stats, out)
	}
}

// Two AIs must be able to finish a full game inside the simulation turn cap.
func TestAIFullGame(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a, _ := NewAI(testSpec("a"), game.DefaultBoardSize, rng, nil)
	b, _ := NewAI(testSpec("b"), game.DefaultBoardSize, rng, nil)
	g := game.NewGame(a, b, game.Options{MaxTurns: 100, Rand: rng})
	if err := g.Setup(); err != nil {
		t.Fatal(err)
	}
	res, err := g.Play(game.FirstMovePlayer1)
	if err != nil {
		t.Fatal(err)
	}
	if res.Tie {
		t.Errorf("hunter vs hunter tied after %d turns", res.TurnCount)
	}
	if res.Winner == nil || res.Winner.Stats().ShipsSunk != game.NumShipTypes {
		t.Errorf("winner should have sunk the whole fleet: %+v", res)
	}
}

func TestAIReset(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	a, _ := NewAI(testSpec("a"), game.DefaultBoardSize, rng, nil)
	b, _ := NewAI(testSpec("b"), game.DefaultBoardSize, rng, nil)
	if err := a.PrepareFleet(); err != nil {
		t.Fatal(err)
	}
	if err := b.PrepareFleet(); err != nil {
		t.Fatal(err)
	}
	if _, err := a.TakeTurn(b); err != nil {
		t.Fatal(err)
	}

	if err := a.Reset(); err != nil {
		t.Fatal(err)
	}
	if len(a.History()) != 0 || a.Alive() {
		t.Error("reset should clear history and fleet")
	}
	if err := a.PrepareFleet(); err != nil {
		t.Errorf("prepare after reset: %v", err)
	}
}

func TestHuman(t *testing.T) {
	h, err := NewHuman("", game.DefaultBoardSize)
	if err != nil {
		t.Fatal(err)
	}
	if h.Name() != "Player" {
		t.Errorf("default name = %q", h.Name())
	}

	if err := h.PrepareFleet(); err == nil {
		t.Error("PrepareFleet before PlaceFleet should fail")
	}

	fleet := map[game.ShipType]game.Placement{
		game.Carrier:    {Coord: game.Coord{Row: 0}, Heading: game.West, Length: 5},
		game.Battleship: {Coord: game.Coord{Row: 2}, Heading: game.West, Length: 4},
		game.Submarine:  {Coord: game.Coord{Row: 4}, Heading: game.West, Length: 3},
		game.Destroyer:  {Coord: game.Coord{Row: 6}, Heading: game.West, Length: 3},
		game.Patrol:     {Coord: game.Coord{Row: 8}, Heading: game.West, Length: 2},
	}
	if err := h.PlaceFleet(fleet); err != nil {
		t.Fatal(err)
	}
	if err := h.PrepareFleet(); err != nil {
		t.Errorf("PrepareFleet after placing: %v", err)
	}

	rng := rand.New(rand.NewSource(5))
	opponent, _ := NewAI(testSpec("ai"), game.DefaultBoardSize, rng, nil)
	if err := opponent.PrepareFleet(); err != nil {
		t.Fatal(err)
	}

	if _, err := h.TakeTurn(opponent); err == nil {
		t.Error("TakeTurn without a queued target should fail")
	}

	target := game.Coord{Row: 9, Col: 9}
	h.SetTarget(target)
	out, err := h.TakeTurn(opponent)
	if err != nil {
		t.Fatal(err)
	}
	if out.Coord != target {
		t.Errorf("fired at %v, want %v", out.Coord, target)
	}
	// The target is consumed.
	if _, err := h.TakeTurn(opponent); err == nil {
		t.Error("second TakeTurn should need a new target")
	}

	if err := h.Reset(); err != nil {
		t.Fatal(err)
	}
	if len(h.History()) != 0 {
		t.Error("reset should clear history")
	}
}
