package ui

import (
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jayseearr/battleship/internal/defense"
	"github.com/jayseearr/battleship/internal/game"
	"github.com/jayseearr/battleship/internal/offense"
	"github.com/jayseearr/battleship/internal/player"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(Options{
		PlayerName: "Tester",
		Opponent: player.Spec{
			Name:    "Bot",
			Offense: offense.Spec{Strategy: "random"},
		},
		Rand: rand.New(rand.NewSource(9)),
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestModelDefaults(t *testing.T) {
	m := testModel(t)
	if m.phase != phaseSetup {
		t.Error("model should start in setup")
	}
	if m.opts.BoardSize != game.DefaultBoardSize {
		t.Errorf("board size = %d", m.opts.BoardSize)
	}
	if !strings.Contains(m.View(), "BATTLESHIP") {
		t.Error("view is missing the header")
	}
	if !strings.Contains(m.View(), "Patrol") {
		t.Error("setup help should name the ship being placed")
	}
}

func TestManualPlacement(t *testing.T) {
	m := testModel(t)

	// Rotate to horizontal and place the patrol at A1.
	next, _ := m.Update(key("r"))
	m = next.(Model)
	if m.heading != game.West {
		t.Fatalf("heading after rotate = %v", m.heading)
	}
	next, _ = m.Update(key("enter"))
	m = next.(Model)
	if m.shipIdx != 1 {
		t.Fatalf("ship index = %d after placing", m.shipIdx)
	}
	if _, ok := m.placements[game.Patrol]; !ok {
		t.Fatal("patrol placement missing")
	}

	// Placing the destroyer on top of it must be rejected.
	next, _ = m.Update(key("enter"))
	m = next.(Model)
	if m.shipIdx != 1 {
		t.Error("overlapping placement should be rejected")
	}

	// Undo brings the patrol back up.
	next, _ = m.Update(key("u"))
	m = next.(Model)
	if m.shipIdx != 0 {
		t.Errorf("ship index after undo = %d", m.shipIdx)
	}
	if _, ok := m.placements[game.Patrol]; ok {
		t.Error("undo should remove the placement")
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(key("up"))
	m = next.(Model)
	if (m.cursor != game.Coord{}) {
		t.Errorf("cursor moved off board to %v", m.cursor)
	}
	next, _ = m.Update(key("right"))
	m = next.(Model)
	if (m.cursor != game.Coord{Col: 1}) {
		t.Errorf("cursor = %v, want B column", m.cursor)
	}
}

func TestAutoPlaceStartsBattle(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(key("a"))
	m = next.(Model)
	if m.phase != phaseBattle {
		t.Fatalf("phase after auto-place = %v", m.phase)
	}
	if !m.human.Board().ReadyToPlay() {
		t.Error("human board not ready")
	}
	if !m.ai.Board().ReadyToPlay() {
		t.Error("ai board not ready")
	}
}

// An opponent whose defense cannot place a fleet (a ship buffer wider than
// the board) must leave the model in a usable setup state, not crash it.
func TestBattleStartFailureKeepsSetupUsable(t *testing.T) {
	m, err := NewModel(Options{
		PlayerName: "Tester",
		Opponent: player.Spec{
			Name:    "Bot",
			Offense: offense.Spec{Strategy: "random"},
			Defense: defense.Spec{Strategy: "random", ShipBuffer: 20},
		},
		Rand: rand.New(rand.NewSource(9)),
	})
	if err != nil {
		t.Fatal(err)
	}

	next, _ := m.Update(key("a"))
	m = next.(Model)
	if m.phase != phaseSetup {
		t.Fatalf("phase = %v, want setup after failed battle start", m.phase)
	}
	if !strings.Contains(m.status, "Opponent cannot place its fleet") {
		t.Errorf("status = %q", m.status)
	}
	if m.View() == "" {
		t.Error("view should still render")
	}
	if !strings.Contains(m.help(), "fleet placed") {
		t.Errorf("help = %q", m.help())
	}

	// Retrying keeps the model in setup and reports the failure again.
	next, _ = m.Update(key("enter"))
	m = next.(Model)
	if m.phase != phaseSetup {
		t.Fatalf("phase = %v after retry", m.phase)
	}
	if m.View() == "" {
		t.Error("view should render after retry")
	}

	// Undo hands the last ship back so the player can keep interacting.
	next, _ = m.Update(key("u"))
	m = next.(Model)
	if m.shipIdx != len(m.order)-1 {
		t.Errorf("ship index after undo = %d", m.shipIdx)
	}
	if m.View() == "" {
		t.Error("view should render after undo")
	}
}

func TestFireResolvesTurn(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(key("a"))
	m = next.(Model)

	next, _ = m.Update(key("enter"))
	m = next.(Model)
	if len(m.human.History()) != 1 {
		t.Fatalf("human history = %d shots", len(m.human.History()))
	}
	if len(m.ai.History()) != 1 {
		t.Fatalf("ai history = %d shots", len(m.ai.History()))
	}
	if m.turn != 1 {
		t.Errorf("turn = %d", m.turn)
	}
	if len(m.results) == 0 {
		t.Error("shot results not recorded")
	}

	// Firing at the same space again is refused.
	next, _ = m.Update(key("enter"))
	m = next.(Model)
	if len(m.human.History()) != 1 {
		t.Error("repeat shot should be refused")
	}
	if !strings.Contains(m.status, "already targeted") {
		t.Errorf("status = %q", m.status)
	}
}

func TestRenderGridShape(t *testing.T) {
	b, _ := game.NewBoard(game.DefaultBoardSize)
	out := renderTarget(b, DefaultStyles(), nil)
	lines := strings.Split(out, "\n")
	if len(lines) != game.DefaultBoardSize+1 {
		t.Errorf("grid rendered %d lines, want %d", len(lines), game.DefaultBoardSize+1)
	}
	if !strings.Contains(lines[1], "A") {
		t.Error("first board row should be labelled A")
	}
	if !strings.Contains(lines[0], "10") {
		t.Error("header should label column 10")
	}
}
