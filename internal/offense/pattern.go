package offense

import "github.com/jayseearr/battleship/internal/game"

// nextPatternTarget advances through the fixed hunt sequence until it finds
// an untargeted space. Returns false when the pattern is exhausted.
func (h *Hunter) nextPatternTarget(b *game.Board) (game.Coord, bool) {
	if h.pattern == nil || h.patSize != b.Size() {
		h.pattern = h.buildPattern(b.Size())
		h.patSize = b.Size()
		h.patIdx = 0
	}
	for h.patIdx < len(h.pattern) {
		c := h.pattern[h.patIdx]
		h.patIdx++
		if b.TargetAt(c).State == game.TargetUnknown {
			return c, true
		}
	}
	return game.Coord{}, false
}

// buildPattern generates the full hunt sequence for the configured pattern,
// applying rotation and mirroring about the board center.
func (h *Hunter) buildPattern(size int) []game.Coord {
	spacing := h.spec.Spacing
	if spacing <= 0 {
		spacing = 2
	}
	secondary := h.spec.SecondarySpacing
	if secondary <= 0 {
		secondary = spacing
	}

	var coords []game.Coord
	switch h.spec.HuntPattern {
	case PatternDiagonals:
		coords = diagonalPattern(size, spacing)
	case PatternSpiral:
		coords = spiralPattern(size, spacing)
	default:
		coords = gridPattern(size, spacing, secondary)
	}

	for turns := ((h.spec.Rotate % 360) + 360) % 360 / 90; turns > 0; turns-- {
		for i, c := range coords {
			coords[i] = game.Coord{Row: c.Col, Col: size - 1 - c.Row}
		}
	}
	switch h.spec.Mirror {
	case "horizontal":
		for i, c := range coords {
			coords[i] = game.Coord{Row: size - 1 - c.Row, Col: c.Col}
		}
	case "vertical":
		for i, c := range coords {
			coords[i] = game.Coord{Row: c.Row, Col: size - 1 - c.Col}
		}
	}
	return coords
}

// gridPattern visits every spacing-th row and every secondary-th column,
// offsetting alternate rows so the sequence covers a parity lattice rather
// than aligned columns.
func gridPattern(size, spacing, secondary int) []game.Coord {
	var coords []game.Coord
	rowIdx := 0
	for r := 0; r < size; r += spacing {
		offset := (rowIdx * secondary / 2) % secondary
		for c := offset; c < size; c += secondary {
			coords = append(coords, game.Coord{Row: r, Col: c})
		}
		rowIdx++
	}
	return coords
}

// diagonalPattern fires along down-right diagonals separated by spacing.
func diagonalPattern(size, spacing int) []game.Coord {
	var coords []game.Coord
	for start := 0; start < 2*size-1; start += spacing {
		for r := 0; r < size; r++ {
			c := (start - r + 2*size) % (2 * size)
			if c < size {
				coords = append(coords, game.Coord{Row: r, Col: c})
			}
		}
	}
	return coords
}

// spiralPattern walks the board clockwise from the top-left corner toward
// the center, keeping every spacing-th space.
func spiralPattern(size, spacing int) []game.Coord {
	var walk []game.Coord
	top, bottom, left, right := 0, size-1, 0, size-1
	for top <= bottom && left <= right {
		for c := left; c <= right; c++ {
			walk = append(walk, game.Coord{Row: top, Col: c})
		}
		for r := top + 1; r <= bottom; r++ {
			walk = append(walk, game.Coord{Row: r, Col: right})
		}
		if top < bottom {
			for c := right - 1; c >= left; c-- {
				walk = append(walk, game.Coord{Row: bottom, Col: c})
			}
		}
		if left < right {
			for r := bottom - 1; r > top; r-- {
				walk = append(walk, game.Coord{Row: r, Col: left})
			}
		}
		top++
		bottom--
		left++
		right--
	}
	if spacing <= 1 {
		return walk
	}
	var coords []game.Coord
	for i := 0; i < len(walk); i += spacing {
		coords = append(coords, walk[i])
	}
	return coords
}
