package ui

import (
	"fmt"
	"math/rand"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jayseearr/battleship/internal/game"
	"github.com/jayseearr/battleship/internal/player"
)

type phase int

const (
	phaseSetup phase = iota
	phaseBattle
	phaseOver
)

// Options configures an interactive game.
type Options struct {
	PlayerName string
	Opponent   player.Spec
	BoardSize  int
	MaxTurns   int
	Rand       *rand.Rand
	Logger     *zap.Logger
}

// Model is the bubbletea model for one human-vs-AI game.
type Model struct {
	styles Styles
	log    *zap.Logger
	rng    *rand.Rand
	opts   Options

	human *player.Human
	ai    *player.AI

	phase   phase
	cursor  game.Coord
	heading game.Heading

	// Setup state
	order      []game.ShipType
	shipIdx    int
	placements map[game.ShipType]game.Placement

	turn    int
	status  string
	results []string // last few shot outcomes, newest first
	width   int
	height  int
}

// NewModel builds the model; the human places its fleet interactively, the AI
// opponent is built from its spec.
func NewModel(opts Options) (Model, error) {
	if opts.BoardSize <= 0 {
		opts.BoardSize = game.DefaultBoardSize
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = game.DefaultMaxTurns
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	human, err := player.NewHuman(opts.PlayerName, opts.BoardSize)
	if err != nil {
		return Model{}, err
	}
	ai, err := player.NewAI(opts.Opponent, opts.BoardSize, opts.Rand, opts.Logger)
	if err != nil {
		return Model{}, err
	}

	return Model{
		styles:     DefaultStyles(),
		log:        opts.Logger,
		rng:        opts.Rand,
		opts:       opts,
		human:      human,
		ai:         ai,
		phase:      phaseSetup,
		heading:    game.North,
		order:      game.AllShipTypes(),
		placements: make(map[game.ShipType]game.Placement),
		status:     "Place your fleet.",
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		switch m.phase {
		case phaseSetup:
			return m.updateSetup(msg)
		case phaseBattle:
			return m.updateBattle(msg)
		case phaseOver:
			return m.updateOver(msg)
		}
	}
	return m, nil
}

func (m Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1, 0)
	case "down", "j":
		m.moveCursor(1, 0)
	case "left", "h":
		m.moveCursor(0, -1)
	case "right", "l":
		m.moveCursor(0, 1)
	case "r":
		if m.heading == game.North {
			m.heading = game.West
		} else {
			m.heading = game.North
		}
	case "u":
		if m.shipIdx > 0 {
			m.shipIdx--
			delete(m.placements, m.order[m.shipIdx])
			m.status = fmt.Sprintf("Removed %s.", m.order[m.shipIdx])
		}
	case "a":
		if err := m.autoPlace(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m.startBattle()
	case "enter", " ":
		if m.shipIdx >= len(m.order) {
			// Fleet already placed; a previous battle start failed.
			return m.startBattle()
		}
		t := m.order[m.shipIdx]
		p := game.Placement{Coord: m.cursor, Heading: m.heading, Length: t.Length()}
		if err := m.setupBoard().ValidPlacement(p); err != nil {
			m.status = fmt.Sprintf("Cannot place %s there.", t)
			return m, nil
		}
		m.placements[t] = p
		m.shipIdx++
		if m.shipIdx >= len(m.order) {
			return m.startBattle()
		}
		m.status = fmt.Sprintf("Placed %s.", t)
	}
	return m, nil
}

// setupBoard rebuilds a scratch board from the current placements so the next
// ship can be validated against them.
func (m Model) setupBoard() *game.Board {
	b, _ := game.NewBoard(m.opts.BoardSize)
	for t, p := range m.placements {
		_ = b.AddShip(t, p)
	}
	return b
}

// autoPlace fills in every ship not yet placed.
func (m *Model) autoPlace() error {
	b := m.setupBoard()
	for ; m.shipIdx < len(m.order); m.shipIdx++ {
		t := m.order[m.shipIdx]
		p, err := b.RandomPlacement(m.rng, t.Length(), game.PlacementConstraints{})
		if err != nil {
			return fmt.Errorf("no room for %s", t)
		}
		if err := b.AddShip(t, p); err != nil {
			return err
		}
		m.placements[t] = p
	}
	return nil
}

func (m Model) startBattle() (tea.Model, tea.Cmd) {
	// Reset both sides so a failed start can be retried without leaving a
	// half-placed fleet behind.
	if err := m.human.Reset(); err != nil {
		m.status = err.Error()
		return m, nil
	}
	if err := m.human.PlaceFleet(m.placements); err != nil {
		m.status = err.Error()
		return m, nil
	}
	if err := m.ai.Reset(); err != nil {
		m.status = err.Error()
		return m, nil
	}
	if err := m.ai.PrepareFleet(); err != nil {
		m.status = fmt.Sprintf("Opponent cannot place its fleet: %v", err)
		return m, nil
	}
	m.phase = phaseBattle
	m.cursor = game.Coord{}
	m.status = "Fire when ready."
	m.log.Info("interactive game started",
		zap.String("player", m.human.Name()),
		zap.String("opponent", m.ai.Name()))
	return m, nil
}

func (m Model) updateBattle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1, 0)
	case "down", "j":
		m.moveCursor(1, 0)
	case "left", "h":
		m.moveCursor(0, -1)
	case "right", "l":
		m.moveCursor(0, 1)
	case "enter", " ":
		return m.fire()
	}
	return m, nil
}

// fire resolves the human's shot at the cursor, then the AI's reply if it is
// still afloat.
func (m Model) fire() (tea.Model, tea.Cmd) {
	if m.human.Board().TargetAt(m.cursor).State != game.TargetUnknown {
		m.status = fmt.Sprintf("%s already targeted.", m.cursor)
		return m, nil
	}
	m.human.SetTarget(m.cursor)
	out, err := m.human.TakeTurn(m.ai)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.pushResult(fmt.Sprintf("You fired at %s: %s", out.Coord, describe(out)))

	if !m.ai.Alive() {
		return m.finish(fmt.Sprintf("Victory! You sank the entire %s fleet in %d turns.",
			m.ai.Name(), m.turn+1))
	}

	reply, err := m.ai.TakeTurn(m.human)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.pushResult(fmt.Sprintf("%s fired at %s: %s", m.ai.Name(), reply.Coord, describe(reply)))

	m.turn++
	if !m.human.Alive() {
		return m.finish(fmt.Sprintf("Defeat. %s sank your fleet in %d turns.",
			m.ai.Name(), m.turn))
	}
	if m.turn >= m.opts.MaxTurns {
		return m.finish("Out of turns. The game is a draw.")
	}
	m.status = "Fire when ready."
	return m, nil
}

func (m Model) finish(banner string) (tea.Model, tea.Cmd) {
	m.phase = phaseOver
	m.status = banner
	m.log.Info("interactive game over", zap.String("result", banner))
	return m, nil
}

func (m Model) updateOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		next, err := NewModel(m.opts)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		next.width, next.height = m.width, m.height
		return next, nil
	case "enter", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) moveCursor(dr, dc int) {
	next := m.cursor.Add(game.Coord{Row: dr, Col: dc})
	if next.OnBoard(m.opts.BoardSize) {
		m.cursor = next
	}
}

func (m *Model) pushResult(s string) {
	m.results = append([]string{s}, m.results...)
	if len(m.results) > 4 {
		m.results = m.results[:4]
	}
}

func describe(o game.Outcome) string {
	switch {
	case o.Sunk:
		return fmt.Sprintf("HIT, sank the %s!", o.SunkShip)
	case o.Hit:
		return "HIT!"
	default:
		return "miss"
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render(" BATTLESHIP "))
	sb.WriteString("\n\n")

	var ownGhost *ghost
	var targetCursor *game.Coord
	switch m.phase {
	case phaseSetup:
		if m.shipIdx < len(m.order) {
			t := m.order[m.shipIdx]
			p := game.Placement{Coord: m.cursor, Heading: m.heading, Length: t.Length()}
			gh := ghost{
				coords: p.Coords(),
				glyph:  shipGlyph(t),
				valid:  m.setupBoard().ValidPlacement(p) == nil,
			}
			ownGhost = &gh
		}
	case phaseBattle:
		c := m.cursor
		targetCursor = &c
	}

	target := boardPanel(m.styles, fmt.Sprintf("Target: %s", m.ai.Name()),
		renderTarget(m.human.Board(), m.styles, targetCursor))
	ocean := boardPanel(m.styles, "Your fleet",
		renderOcean(m.human.Board(), m.styles, ownGhost))
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, target, "  ", ocean))
	sb.WriteString("\n")

	style := m.styles.Status
	if m.phase == phaseOver {
		style = m.styles.Success
		if !m.human.Alive() {
			style = m.styles.Error
		}
	}
	sb.WriteString(style.Render(m.status))
	sb.WriteString("\n")
	for _, r := range m.results {
		sb.WriteString(m.styles.Muted.Render("  " + r))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render(m.help()))
	return sb.String()
}

func (m Model) help() string {
	switch m.phase {
	case phaseSetup:
		if m.shipIdx >= len(m.order) {
			return "fleet placed  [enter] start  [u] undo  [q] quit"
		}
		t := m.order[m.shipIdx]
		return fmt.Sprintf("placing %s (%d)  [arrows] move  [r] rotate  [enter] place  [u] undo  [a] auto  [q] quit",
			t, t.Length())
	case phaseBattle:
		return fmt.Sprintf("turn %d  [arrows] aim  [enter] fire  [q] quit", m.turn+1)
	default:
		return "[n] new game  [enter] exit"
	}
}
