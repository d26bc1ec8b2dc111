package offense

import "github.com/jayseearr/battleship/internal/game"

// killTargets returns candidate coords and weights for kill mode. An empty
// result means every space around the known hits is already resolved and the
// hunter should fall back to hunting.
func (h *Hunter) killTargets(b *game.Board, history []game.Outcome) ([]game.Coord, []float64) {
	if h.spec.KillMethod == KillAdvanced {
		if targets, weights := h.advancedKillTargets(b); len(targets) > 0 {
			return targets, weights
		}
	}
	return h.basicKillTargets(b, history)
}

// basicKillTargets fires adjacent to the open hits. When two or more
// connected hits line up, only the untargeted ends of the line are
// candidates; otherwise every untargeted orthogonal neighbor of the hits is.
func (h *Hunter) basicKillTargets(b *game.Board, history []game.Outcome) ([]game.Coord, []float64) {
	hits := b.FindHits(true)
	if len(hits) == 0 {
		if h.initialHit != nil {
			hits = []game.Coord{*h.initialHit}
		} else if last, ok := lastHit(history); ok {
			hits = []game.Coord{last}
		} else {
			return nil, nil
		}
	}

	anchor := hits[0]
	if h.initialHit != nil {
		anchor = *h.initialHit
	}
	line := connectedLine(hits, anchor)
	if len(line) >= 2 {
		if ends := lineEnds(b, line); len(ends) > 0 {
			return ends, uniform(len(ends))
		}
	}

	seen := make(map[game.Coord]bool)
	var targets []game.Coord
	for _, hit := range hits {
		for _, c := range b.TargetsAround(hit, false, true) {
			if !seen[c] {
				seen[c] = true
				targets = append(targets, c)
			}
		}
	}
	return targets, uniform(len(targets))
}

// advancedKillTargets enumerates the valid target-grid placements of every
// opponent ship still afloat, keeps the ones covering at least one open hit,
// and weights each untargeted space they cover by how many such placements
// include it.
func (h *Hunter) advancedKillTargets(b *game.Board) ([]game.Coord, []float64) {
	open := b.FindHits(true)
	if len(open) == 0 {
		return nil, nil
	}
	openSet := make(map[game.Coord]bool, len(open))
	for _, c := range open {
		openSet[c] = true
	}

	counts := make(map[game.Coord]int)
	for _, t := range game.AllShipTypes() {
		if b.TargetShipSunk(t) {
			continue
		}
		for _, p := range b.AllValidTargetPlacements(t) {
			covers := false
			for _, c := range p.Coords() {
				if openSet[c] {
					covers = true
					break
				}
			}
			if !covers {
				continue
			}
			for _, c := range p.Coords() {
				if b.TargetAt(c).State == game.TargetUnknown {
					counts[c]++
				}
			}
		}
	}
	if len(counts) == 0 {
		return nil, nil
	}
	targets := make([]game.Coord, 0, len(counts))
	weights := make([]float64, 0, len(counts))
	for c, n := range counts {
		targets = append(targets, c)
		weights = append(weights, float64(n))
	}
	return targets, weights
}

// connectedLine returns the maximal run of hits collinear and contiguous with
// anchor, searching rows then columns. A single hit returns just the anchor.
func connectedLine(hits []game.Coord, anchor game.Coord) []game.Coord {
	set := make(map[game.Coord]bool, len(hits))
	for _, c := range hits {
		set[c] = true
	}
	if !set[anchor] {
		return []game.Coord{anchor}
	}
	best := []game.Coord{anchor}
	for _, d := range []game.Coord{{Col: 1}, {Row: 1}} {
		line := []game.Coord{anchor}
		for c := anchor.Add(d); set[c]; c = c.Add(d) {
			line = append(line, c)
		}
		back := game.Coord{Row: -d.Row, Col: -d.Col}
		for c := anchor.Add(back); set[c]; c = c.Add(back) {
			line = append([]game.Coord{c}, line...)
		}
		if len(line) > len(best) {
			best = line
		}
	}
	return best
}

// lineEnds returns the untargeted spaces immediately beyond each end of a
// line of hits.
func lineEnds(b *game.Board, line []game.Coord) []game.Coord {
	first, last := line[0], line[len(line)-1]
	d := game.Coord{Row: sign(last.Row - first.Row), Col: sign(last.Col - first.Col)}
	var ends []game.Coord
	for _, c := range []game.Coord{
		first.Add(game.Coord{Row: -d.Row, Col: -d.Col}),
		last.Add(d),
	} {
		if c.OnBoard(b.Size()) && b.TargetAt(c).State == game.TargetUnknown {
			ends = append(ends, c)
		}
	}
	return ends
}

func lastHit(history []game.Outcome) (game.Coord, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Hit {
			return history[i].Coord, true
		}
	}
	return game.Coord{}, false
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
