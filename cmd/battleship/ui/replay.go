package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jayseearr/battleship/internal/game"
	"github.com/jayseearr/battleship/internal/store"
)

// ReplayModel steps through a stored game shot by shot. Ship placements are
// not persisted, so the replay shows each player's target grid: what they
// knew about the opponent after every shot.
type ReplayModel struct {
	styles Styles
	rec    store.GameRecord
	shots  []store.ShotRecord

	size   int
	pos    int // shots[:pos] are applied
	boards [2]*game.Board
	log    viewport.Model
	lines  []string
	width  int
	height int
}

// NewReplayModel builds the replay for a stored game.
func NewReplayModel(rec store.GameRecord, shots []store.ShotRecord, boardSize int) (ReplayModel, error) {
	m := ReplayModel{
		styles: DefaultStyles(),
		rec:    rec,
		shots:  shots,
		size:   boardSize,
		log:    viewport.New(60, 8),
	}
	// Grow the boards if any stored shot falls outside the configured size.
	for _, s := range shots {
		if s.Coord.Row >= m.size {
			m.size = s.Coord.Row + 1
		}
		if s.Coord.Col >= m.size {
			m.size = s.Coord.Col + 1
		}
	}
	if err := m.rebuild(0); err != nil {
		return ReplayModel{}, err
	}
	return m, nil
}

// rebuild replays shots[:pos] onto fresh boards.
func (m *ReplayModel) rebuild(pos int) error {
	b1, err := game.NewBoard(m.size)
	if err != nil {
		return err
	}
	b2, err := game.NewBoard(m.size)
	if err != nil {
		return err
	}
	m.boards = [2]*game.Board{b1, b2}
	m.lines = m.lines[:0]
	for i := 0; i < pos && i < len(m.shots); i++ {
		m.apply(m.shots[i])
	}
	m.pos = pos
	m.syncLog()
	return nil
}

func (m *ReplayModel) apply(shot store.ShotRecord) {
	out := game.Outcome{
		Coord:    shot.Coord,
		Hit:      shot.Hit,
		Sunk:     shot.Sunk,
		SunkShip: shot.SunkShip,
	}
	m.boards[shot.Player-1].UpdateTargetGrid(out)

	name := m.rec.Player1
	if shot.Player == 2 {
		name = m.rec.Player2
	}
	m.lines = append(m.lines, fmt.Sprintf("%3d  %s → %s: %s",
		shot.Turn+1, name, shot.Coord, describe(out)))
}

func (m *ReplayModel) syncLog() {
	m.log.SetContent(strings.Join(m.lines, "\n"))
	m.log.GotoBottom()
}

// Init implements tea.Model.
func (m ReplayModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.log.Width = msg.Width - 4
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "right", " ", "enter":
			if m.pos < len(m.shots) {
				m.apply(m.shots[m.pos])
				m.pos++
				m.syncLog()
			}
		case "left":
			if m.pos > 0 {
				_ = m.rebuild(m.pos - 1)
			}
		case "home":
			_ = m.rebuild(0)
		case "end":
			_ = m.rebuild(len(m.shots))
		default:
			var cmd tea.Cmd
			m.log, cmd = m.log.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m ReplayModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render(fmt.Sprintf(" Replay %s ", m.rec.ID)))
	sb.WriteString("\n\n")

	p1 := boardPanel(m.styles, m.rec.Player1+" targets",
		renderTarget(m.boards[0], m.styles, nil))
	p2 := boardPanel(m.styles, m.rec.Player2+" targets",
		renderTarget(m.boards[1], m.styles, nil))
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, p1, "  ", p2))
	sb.WriteString("\n")

	outcome := "tie"
	if !m.rec.Tie {
		outcome = m.rec.Winner + " won"
	}
	sb.WriteString(m.styles.Status.Render(fmt.Sprintf("shot %d/%d  %s in %d turns",
		m.pos, len(m.shots), outcome, m.rec.TurnCount)))
	sb.WriteString("\n")
	sb.WriteString(m.log.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("[space/→] next  [←] back  [home/end] jump  [q] quit"))
	return sb.String()
}
