package offense

import (
	"fmt"
	"math/rand"

	"github.com/jayseearr/battleship/internal/game"
)

// Mode is the hunter's current phase.
type Mode int

const (
	// ModeHunt searches for a new ship.
	ModeHunt Mode = iota
	// ModeKill finishes off a ship that has been hit.
	ModeKill
)

func (m Mode) String() string {
	if m == ModeKill {
		return "kill"
	}
	return "hunt"
}

// Hunt styles.
const (
	HuntRandom  = "random"
	HuntPattern = "pattern"
)

// Hunt patterns for the random style.
const (
	PatternRandom    = "random"
	PatternMaxProb   = "maxprob"
	PatternIsolated  = "isolated"
	PatternClustered = "clustered"
)

// Hunt patterns for the pattern style.
const (
	PatternGrid      = "grid"
	PatternDiagonals = "diagonals"
	PatternSpiral    = "spiral"
)

// Kill methods.
const (
	KillBasic    = "basic"
	KillAdvanced = "advanced"
)

// Hunter is a two-mode offense. In hunt mode it searches for ships using a
// weighted-random or fixed-pattern scheme; after a hit it switches to kill
// mode and fires around the hit until the ship goes down, then returns to
// hunting.
type Hunter struct {
	spec Spec
	rng  *rand.Rand

	mode       Mode
	initialHit *game.Coord // hit that triggered the current kill

	pattern []game.Coord // lazily built fixed hunt sequence
	patIdx  int
	patSize int // board size the pattern was built for
}

// NewHunter validates spec and returns a hunter in hunt mode.
func NewHunter(spec Spec, rng *rand.Rand) (*Hunter, error) {
	if spec.HuntStyle == "" {
		spec.HuntStyle = HuntRandom
	}
	if spec.HuntPattern == "" {
		if spec.HuntStyle == HuntPattern {
			spec.HuntPattern = PatternGrid
		} else {
			spec.HuntPattern = PatternRandom
		}
	}
	// Accept the shorthand spellings the options historically allowed.
	switch spec.HuntPattern {
	case "isolate":
		spec.HuntPattern = PatternIsolated
	case "cluster":
		spec.HuntPattern = PatternClustered
	}
	switch spec.HuntStyle {
	case HuntRandom:
		switch spec.HuntPattern {
		case PatternRandom, PatternMaxProb, PatternIsolated, PatternClustered:
		default:
			return nil, fmt.Errorf("hunt pattern %q invalid for style %q", spec.HuntPattern, spec.HuntStyle)
		}
	case HuntPattern:
		switch spec.HuntPattern {
		case PatternGrid, PatternDiagonals, PatternSpiral:
		default:
			return nil, fmt.Errorf("hunt pattern %q invalid for style %q", spec.HuntPattern, spec.HuntStyle)
		}
	default:
		return nil, fmt.Errorf("unknown hunt style %q", spec.HuntStyle)
	}
	switch spec.Weight {
	case "", "any", "shots", "hits", "misses":
	default:
		return nil, fmt.Errorf("unknown weight basis %q", spec.Weight)
	}
	switch spec.KillMethod {
	case "":
		spec.KillMethod = KillAdvanced
	case KillBasic, KillAdvanced:
	default:
		return nil, fmt.Errorf("unknown kill method %q", spec.KillMethod)
	}
	switch spec.NoValidTargets {
	case "":
		spec.NoValidTargets = "random"
	case "random", "ordered":
	default:
		return nil, fmt.Errorf("unknown no_valid_targets behavior %q", spec.NoValidTargets)
	}
	if spec.Rotate%90 != 0 {
		return nil, fmt.Errorf("rotate must be a multiple of 90, got %d", spec.Rotate)
	}
	switch spec.Mirror {
	case "", "horizontal", "vertical":
	default:
		return nil, fmt.Errorf("unknown mirror %q", spec.Mirror)
	}
	return &Hunter{spec: spec, rng: rng}, nil
}

// Mode returns the hunter's current phase.
func (h *Hunter) Mode() Mode { return h.mode }

// Reset returns the hunter to hunt mode and restarts any fixed pattern.
func (h *Hunter) Reset() {
	h.mode = ModeHunt
	h.initialHit = nil
	h.patIdx = 0
}

// Update transitions the state machine: a hit enters kill mode, a sink
// returns to hunt mode.
func (h *Hunter) Update(o game.Outcome) {
	switch {
	case o.Sunk:
		h.mode = ModeHunt
		h.initialHit = nil
	case o.Hit:
		if h.mode == ModeHunt {
			c := o.Coord
			h.initialHit = &c
		}
		h.mode = ModeKill
	}
}

// Target selects the next shot for the current mode. If kill mode produces no
// candidates (every space around the hits is resolved), the hunter drops back
// to hunting for this shot.
func (h *Hunter) Target(b *game.Board, history []game.Outcome) (game.Coord, error) {
	if h.mode == ModeKill {
		targets, weights := h.killTargets(b, history)
		if len(targets) > 0 {
			return weightedPick(h.rng, targets, weights)
		}
		h.mode = ModeHunt
		h.initialHit = nil
	}
	targets, weights := h.huntTargets(b, history)
	if len(targets) == 0 {
		// Failsafe: uniform over whatever is untargeted.
		return b.RandomCoord(h.rng, true)
	}
	return weightedPick(h.rng, targets, weights)
}

// huntTargets returns candidate coords and weights for hunt mode.
func (h *Hunter) huntTargets(b *game.Board, history []game.Outcome) ([]game.Coord, []float64) {
	if h.spec.HuntStyle == HuntPattern {
		if c, ok := h.nextPatternTarget(b); ok {
			return []game.Coord{c}, []float64{1}
		}
		return h.exhaustedPatternTargets(b)
	}

	candidates := h.bufferedUntargeted(b)
	if len(candidates) == 0 {
		candidates = b.Untargeted()
	}
	switch h.spec.HuntPattern {
	case PatternMaxProb:
		grid := b.PossibleTargetsGrid()
		weights := make([]float64, len(candidates))
		for i, c := range candidates {
			weights[i] = float64(grid[c.Row][c.Col])
		}
		return candidates, weights
	case PatternIsolated, PatternClustered:
		refs := h.referenceShots(history)
		if len(refs) == 0 {
			return candidates, uniform(len(candidates))
		}
		weights := make([]float64, len(candidates))
		for i, c := range candidates {
			var d float64
			for _, ref := range refs {
				d += c.DistTo(ref, game.DistEuclidean)
			}
			if h.spec.HuntPattern == PatternIsolated {
				weights[i] = d
			} else {
				weights[i] = 1 / (1 + d)
			}
		}
		return candidates, weights
	default:
		return candidates, uniform(len(candidates))
	}
}

// bufferedUntargeted filters untargeted spaces by the edge and ship buffers.
func (h *Hunter) bufferedUntargeted(b *game.Board) []game.Coord {
	var out []game.Coord
	eb := h.spec.EdgeBuffer
	for _, c := range b.Untargeted() {
		if c.Row < eb || c.Row >= b.Size()-eb || c.Col < eb || c.Col >= b.Size()-eb {
			continue
		}
		if h.spec.ShipBuffer > 0 && h.nearKnownShip(b, c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (h *Hunter) nearKnownShip(b *game.Board, c game.Coord) bool {
	for _, t := range game.AllShipTypes() {
		for _, sc := range b.TargetCoordsWithType(t) {
			if c.DistTo(sc, game.DistManhattan) <= float64(h.spec.ShipBuffer) {
				return true
			}
		}
	}
	return false
}

// referenceShots returns the prior shot coords the isolated/clustered
// weightings measure distance against.
func (h *Hunter) referenceShots(history []game.Outcome) []game.Coord {
	var refs []game.Coord
	for _, o := range history {
		switch h.spec.Weight {
		case "hits":
			if o.Hit {
				refs = append(refs, o.Coord)
			}
		case "misses":
			if !o.Hit {
				refs = append(refs, o.Coord)
			}
		default: // any shot
			refs = append(refs, o.Coord)
		}
	}
	return refs
}

// exhaustedPatternTargets implements the no_valid_targets behavior once the
// fixed pattern has been used up.
func (h *Hunter) exhaustedPatternTargets(b *game.Board) ([]game.Coord, []float64) {
	remaining := b.Untargeted()
	if len(remaining) == 0 {
		return nil, nil
	}
	if h.spec.NoValidTargets == "ordered" {
		// Untargeted() is row-major; take the first.
		return remaining[:1], []float64{1}
	}
	return remaining, uniform(len(remaining))
}
