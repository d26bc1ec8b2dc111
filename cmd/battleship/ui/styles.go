// Package ui implements the interactive terminal game: fleet setup, turn by
// turn play against an AI opponent, and board rendering.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	ColorSea     = lipgloss.Color("#1a3a5c")
	ColorSeaText = lipgloss.Color("#4d7ea8")
	ColorShip    = lipgloss.Color("#9aa5b1")
	ColorHit     = lipgloss.Color("#e53935")
	ColorMiss    = lipgloss.Color("#f2f2f2")
	ColorSunk    = lipgloss.Color("#7a1f1c")
	ColorCursor  = lipgloss.Color("#FFC107")
	ColorAccent  = lipgloss.Color("#8BC34A")
	ColorMuted   = lipgloss.Color("#6b7684")
	ColorInvalid = lipgloss.Color("#e53935")
)

// Styles holds the styled components the game model renders with.
type Styles struct {
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Status   lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Board    lipgloss.Style
	AxisText lipgloss.Style

	// Grid cells
	Water     lipgloss.Style
	Ship      lipgloss.Style
	Hit       lipgloss.Style
	Miss      lipgloss.Style
	Sunk      lipgloss.Style
	Cursor    lipgloss.Style
	Ghost     lipgloss.Style
	GhostBad  lipgloss.Style
	HitOnShip lipgloss.Style
}

// DefaultStyles returns the game's styles.
func DefaultStyles() Styles {
	cell := lipgloss.NewStyle().Width(2)
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#101F38")).
			Padding(0, 2).
			Bold(true),
		Footer: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f2f2f2")).
			Padding(0, 1),
		Success: lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(ColorHit).
			Bold(true),
		Board: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSeaText).
			Padding(0, 1),
		AxisText: lipgloss.NewStyle().
			Foreground(ColorSeaText),

		Water:     cell.Foreground(ColorSeaText).Background(ColorSea),
		Ship:      cell.Foreground(lipgloss.Color("#101F38")).Background(ColorShip),
		Hit:       cell.Foreground(lipgloss.Color("#ffffff")).Background(ColorHit),
		Miss:      cell.Foreground(ColorMiss).Background(ColorSea),
		Sunk:      cell.Foreground(lipgloss.Color("#ffffff")).Background(ColorSunk),
		Cursor:    cell.Foreground(lipgloss.Color("#101F38")).Background(ColorCursor).Bold(true),
		Ghost:     cell.Foreground(lipgloss.Color("#101F38")).Background(ColorAccent),
		GhostBad:  cell.Foreground(lipgloss.Color("#ffffff")).Background(ColorInvalid),
		HitOnShip: cell.Foreground(ColorHit).Background(ColorShip).Bold(true),
	}
}

// RenderDivider returns a horizontal divider of the given width.
func (s Styles) RenderDivider(width int) string {
	return s.Muted.Render(strings.Repeat("─", width))
}
