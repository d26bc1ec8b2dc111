// Package defense implements fleet-placement strategies. A Defense produces
// a full set of ship placements for a board; it never mutates the player's
// real board (package player applies the returned placements).
package defense

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jayseearr/battleship/internal/game"
)

// Defense produces a fleet arrangement for a board of the given size.
type Defense interface {
	Fleet(size int) (map[game.ShipType]game.Placement, error)
}

// Formations for the random defense.
const (
	FormationRandom    = "random"
	FormationClustered = "clustered"
	FormationIsolated  = "isolated"
)

// Selection methods for the random defense.
const (
	MethodWeighted = "weighted"
	MethodOptimize = "optimize"
	MethodAny      = "any"
)

// Spec selects and configures a defense. It maps directly onto the YAML
// player configuration.
type Spec struct {
	Strategy   string `yaml:"strategy"` // random
	Formation  string `yaml:"formation,omitempty"`
	Method     string `yaml:"method,omitempty"`
	EdgeBuffer int    `yaml:"edge_buffer,omitempty"`
	ShipBuffer int    `yaml:"ship_buffer,omitempty"`
	Alignment  string `yaml:"alignment,omitempty"`
}

// New builds the defense described by spec.
func New(spec Spec, rng *rand.Rand) (Defense, error) {
	switch spec.Strategy {
	case "", "random":
		return NewRandom(spec, rng)
	}
	return nil, fmt.Errorf("unknown defense strategy %q", spec.Strategy)
}

// Random places ships randomly, optionally weighting candidate placements
// toward (clustered) or away from (isolated) the ships already placed, and
// honoring edge/ship buffers and an alignment constraint.
type Random struct {
	formation string
	method    string
	con       game.PlacementConstraints
	rng       *rand.Rand
}

// NewRandom validates spec and returns the defense.
func NewRandom(spec Spec, rng *rand.Rand) (*Random, error) {
	formation := spec.Formation
	switch formation {
	case "":
		formation = FormationRandom
	case "cluster":
		formation = FormationClustered
	case "isolate":
		formation = FormationIsolated
	case FormationRandom, FormationClustered, FormationIsolated:
	default:
		return nil, fmt.Errorf("unknown formation %q", spec.Formation)
	}
	method := spec.Method
	switch method {
	case "":
		method = MethodWeighted
	case MethodWeighted, MethodOptimize, MethodAny:
	default:
		return nil, fmt.Errorf("unknown method %q", spec.Method)
	}
	align, err := game.ParseAlign(spec.Alignment)
	if err != nil {
		return nil, err
	}
	if spec.EdgeBuffer < 0 || spec.ShipBuffer < 0 {
		return nil, fmt.Errorf("buffers must be >= 0")
	}
	return &Random{
		formation: formation,
		method:    method,
		con: game.PlacementConstraints{
			EdgeBuffer: spec.EdgeBuffer,
			ShipBuffer: spec.ShipBuffer,
			Alignment:  align,
		},
		rng: rng,
	}, nil
}

// Fleet builds placements one ship at a time on a scratch board, in random
// ship order, so earlier ships constrain later ones.
func (d *Random) Fleet(size int) (map[game.ShipType]game.Placement, error) {
	scratch, err := game.NewBoard(size)
	if err != nil {
		return nil, err
	}
	placements := make(map[game.ShipType]game.Placement, game.NumShipTypes)

	order := game.AllShipTypes()
	d.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	for _, t := range order {
		p, err := d.placementForShip(scratch, t)
		if err != nil {
			return nil, fmt.Errorf("placing %s: %w", t, err)
		}
		if err := scratch.AddShip(t, p); err != nil {
			return nil, err
		}
		placements[t] = p
	}
	return placements, nil
}

func (d *Random) placementForShip(b *game.Board, t game.ShipType) (game.Placement, error) {
	candidates := b.AllValidShipPlacements(t.Length(), d.con)
	if len(candidates) == 0 {
		return game.Placement{}, fmt.Errorf("no valid placements (edge_buffer=%d ship_buffer=%d %s)",
			d.con.EdgeBuffer, d.con.ShipBuffer, d.con.Alignment)
	}
	placed := b.Placements()
	if d.formation == FormationRandom || len(placed) == 0 {
		return candidates[d.rng.Intn(len(candidates))], nil
	}

	dists := make([]float64, len(candidates))
	for i, p := range candidates {
		for _, other := range placed {
			dists[i] += p.TotalDistTo(other, game.DistEuclidean)
		}
	}

	switch d.method {
	case MethodOptimize:
		best := 0
		for i := 1; i < len(candidates); i++ {
			better := dists[i] > dists[best]
			if d.formation == FormationClustered {
				better = dists[i] < dists[best]
			}
			if better {
				best = i
			}
		}
		return candidates[best], nil
	case MethodAny:
		return candidates[d.rng.Intn(len(candidates))], nil
	default: // weighted
		weights := make([]float64, len(candidates))
		for i, dist := range dists {
			if d.formation == FormationClustered {
				weights[i] = 1 / (1 + dist)
			} else {
				weights[i] = dist
			}
		}
		return pickPlacement(d.rng, candidates, weights)
	}
}

func pickPlacement(rng *rand.Rand, candidates []game.Placement, weights []float64) (game.Placement, error) {
	var total float64
	for _, w := range weights {
		if w > 0 && !math.IsInf(w, 1) {
			total += w
		}
	}
	if total == 0 {
		return candidates[rng.Intn(len(candidates))], nil
	}
	x := rng.Float64() * total
	for i, w := range weights {
		if w <= 0 || math.IsInf(w, 1) {
			continue
		}
		x -= w
		if x <= 0 {
			return candidates[i], nil
		}
	}
	return candidates[len(candidates)-1], nil
}
