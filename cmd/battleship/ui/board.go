package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jayseearr/battleship/internal/game"
)

const (
	glyphWater = "~ "
	glyphMiss  = "o "
	glyphHit   = "X "
)

func shipGlyph(t game.ShipType) string {
	switch t {
	case game.Patrol:
		return "P "
	case game.Destroyer:
		return "D "
	case game.Submarine:
		return "S "
	case game.Battleship:
		return "B "
	case game.Carrier:
		return "C "
	}
	return "? "
}

// ghost is a tentative ship placement drawn during fleet setup.
type ghost struct {
	coords []game.Coord
	glyph  string
	valid  bool
}

func (g *ghost) contains(c game.Coord) bool {
	if g == nil {
		return false
	}
	for _, gc := range g.coords {
		if gc == c {
			return true
		}
	}
	return false
}

// renderOcean draws the player's own grid: ships, damage, and during setup
// the cursor ghost of the ship being placed.
func renderOcean(b *game.Board, s Styles, gh *ghost) string {
	return renderGrid(b.Size(), s, func(c game.Coord) string {
		if gh.contains(c) {
			style := s.Ghost
			if !gh.valid {
				style = s.GhostBad
			}
			return style.Render(gh.glyph)
		}
		t := b.OceanAt(c)
		if t == game.NoShip {
			return s.Water.Render(glyphWater)
		}
		ship := b.ShipAt(c)
		p, _ := b.PlacementForShip(t)
		if slot := p.SlotAt(c); slot >= 0 && ship.Damage[slot] > 0 {
			if ship.Sunk() {
				return s.Sunk.Render(glyphHit)
			}
			return s.HitOnShip.Render(glyphHit)
		}
		return s.Ship.Render(shipGlyph(t))
	})
}

// renderTarget draws what the player knows about the opponent: misses, hits,
// and identified ships. The cursor marks the cell the next shot fires at.
func renderTarget(b *game.Board, s Styles, cursor *game.Coord) string {
	return renderGrid(b.Size(), s, func(c game.Coord) string {
		cell := b.TargetAt(c)
		if cursor != nil && *cursor == c {
			return s.Cursor.Render("+ ")
		}
		switch cell.State {
		case game.TargetMiss:
			return s.Miss.Render(glyphMiss)
		case game.TargetHit:
			return s.Hit.Render(glyphHit)
		case game.TargetShip:
			if cell.Sunk {
				return s.Sunk.Render(shipGlyph(cell.Ship))
			}
			return s.Hit.Render(shipGlyph(cell.Ship))
		}
		return s.Water.Render(glyphWater)
	})
}

// renderGrid draws a size x size grid with row letters and column numbers,
// asking cell for each coordinate's rendering.
func renderGrid(size int, s Styles, cell func(game.Coord) string) string {
	var sb strings.Builder

	sb.WriteString("   ")
	for col := 0; col < size; col++ {
		sb.WriteString(s.AxisText.Render(fmt.Sprintf("%-2d", col+1)))
	}
	sb.WriteString("\n")

	for row := 0; row < size; row++ {
		sb.WriteString(s.AxisText.Render(fmt.Sprintf("%c  ", 'A'+row)))
		for col := 0; col < size; col++ {
			sb.WriteString(cell(game.Coord{Row: row, Col: col}))
		}
		if row < size-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// boardPanel frames a rendered grid with a title.
func boardPanel(s Styles, title, grid string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(title),
		s.Board.Render(grid))
}
