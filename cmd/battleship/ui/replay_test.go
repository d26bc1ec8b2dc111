package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/jayseearr/battleship/internal/game"
	"github.com/jayseearr/battleship/internal/store"
)

func replayFixture() (store.GameRecord, []store.ShotRecord) {
	rec := store.GameRecord{
		ID:        "g1",
		PlayedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Player1:   "hunter",
		Player2:   "random",
		Winner:    "hunter",
		TurnCount: 2,
	}
	shots := []store.ShotRecord{
		{Player: 1, Turn: 0, Coord: game.Coord{Row: 0, Col: 0}},
		{Player: 2, Turn: 0, Coord: game.Coord{Row: 4, Col: 4}, Hit: true},
		{Player: 1, Turn: 1, Coord: game.Coord{Row: 0, Col: 1}, Hit: true, Sunk: true, SunkShip: game.Patrol},
	}
	return rec, shots
}

func TestReplayStepping(t *testing.T) {
	rec, shots := replayFixture()
	m, err := NewReplayModel(rec, shots, game.DefaultBoardSize)
	if err != nil {
		t.Fatal(err)
	}
	if m.pos != 0 {
		t.Fatalf("replay should start before the first shot, pos = %d", m.pos)
	}

	next, _ := m.Update(key("right"))
	m = next.(ReplayModel)
	if m.pos != 1 {
		t.Fatalf("pos = %d after one step", m.pos)
	}
	if got := m.boards[0].TargetAt(game.Coord{}).State; got != game.TargetMiss {
		t.Errorf("first shot should show as a miss, got %v", got)
	}

	next, _ = m.Update(key("right"))
	m = next.(ReplayModel)
	if got := m.boards[1].TargetAt(game.Coord{Row: 4, Col: 4}).State; got != game.TargetHit {
		t.Errorf("second shot should show as a hit, got %v", got)
	}

	next, _ = m.Update(key("left"))
	m = next.(ReplayModel)
	if m.pos != 1 {
		t.Fatalf("pos = %d after stepping back", m.pos)
	}
	if got := m.boards[1].TargetAt(game.Coord{Row: 4, Col: 4}).State; got != game.TargetUnknown {
		t.Errorf("stepping back should undo the hit, got %v", got)
	}
}

func TestReplayJumpToEnd(t *testing.T) {
	rec, shots := replayFixture()
	m, err := NewReplayModel(rec, shots, game.DefaultBoardSize)
	if err != nil {
		t.Fatal(err)
	}

	next, _ := m.Update(key("end"))
	m = next.(ReplayModel)
	if m.pos != len(shots) {
		t.Fatalf("pos = %d, want %d", m.pos, len(shots))
	}
	// The sinking shot attributes the patrol on the shooter's grid.
	if cell := m.boards[0].TargetAt(game.Coord{Row: 0, Col: 1}); cell.State != game.TargetShip || cell.Ship != game.Patrol {
		t.Errorf("sunk patrol not identified: %+v", cell)
	}

	next, _ = m.Update(key("home"))
	m = next.(ReplayModel)
	if m.pos != 0 {
		t.Errorf("pos = %d after jumping home", m.pos)
	}
}

func TestReplayGrowsBoardForStoredShots(t *testing.T) {
	rec, shots := replayFixture()
	shots = append(shots, store.ShotRecord{Player: 1, Turn: 2, Coord: game.Coord{Row: 13, Col: 2}})
	m, err := NewReplayModel(rec, shots, game.DefaultBoardSize)
	if err != nil {
		t.Fatal(err)
	}
	if m.size != 14 {
		t.Errorf("board size = %d, want 14", m.size)
	}
}

func TestReplayView(t *testing.T) {
	rec, shots := replayFixture()
	m, err := NewReplayModel(rec, shots, game.DefaultBoardSize)
	if err != nil {
		t.Fatal(err)
	}
	view := m.View()
	if !strings.Contains(view, "hunter targets") || !strings.Contains(view, "random targets") {
		t.Error("view should label both target grids")
	}
	if !strings.Contains(view, "hunter won") {
		t.Error("view should report the outcome")
	}
}
