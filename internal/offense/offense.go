// Package offense implements target-selection strategies. An Offense decides
// where a player fires next, given the player's board (its target grid is the
// accumulated knowledge of the opponent) and the history of its own shots.
package offense

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/jayseearr/battleship/internal/game"
)

// Offense picks targets for a player.
type Offense interface {
	// Target returns the next coord to fire at.
	Target(b *game.Board, history []game.Outcome) (game.Coord, error)
	// Update feeds the outcome of the player's latest shot back into the
	// strategy's state.
	Update(o game.Outcome)
	// Reset clears strategy state for a new game.
	Reset()
}

// Spec selects and configures an offense. It maps directly onto the YAML
// player configuration.
type Spec struct {
	Strategy         string `yaml:"strategy"` // random | hunter
	HuntStyle        string `yaml:"hunt_style,omitempty"`
	HuntPattern      string `yaml:"hunt_pattern,omitempty"`
	Weight           string `yaml:"weight,omitempty"`
	EdgeBuffer       int    `yaml:"edge_buffer,omitempty"`
	ShipBuffer       int    `yaml:"ship_buffer,omitempty"`
	Spacing          int    `yaml:"spacing,omitempty"`
	SecondarySpacing int    `yaml:"secondary_spacing,omitempty"`
	Rotate           int    `yaml:"rotate,omitempty"`
	Mirror           string `yaml:"mirror,omitempty"`
	NoValidTargets   string `yaml:"no_valid_targets,omitempty"`
	KillMethod       string `yaml:"kill_method,omitempty"`
}

// New builds the offense described by spec.
func New(spec Spec, rng *rand.Rand) (Offense, error) {
	switch spec.Strategy {
	case "", "random":
		return NewRandom(rng), nil
	case "hunter":
		return NewHunter(spec, rng)
	}
	return nil, fmt.Errorf("unknown offense strategy %q", spec.Strategy)
}

// Random fires uniformly at untargeted spaces.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a uniform-random offense.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// Target picks an untargeted space uniformly at random.
func (r *Random) Target(b *game.Board, _ []game.Outcome) (game.Coord, error) {
	return b.RandomCoord(r.rng, true)
}

// Update is a no-op; the random offense is stateless.
func (r *Random) Update(game.Outcome) {}

// Reset is a no-op.
func (r *Random) Reset() {}

// weightedPick selects one coord from targets with the given relative
// weights. Weights need not be normalized; non-positive weights drop the
// candidate.
func weightedPick(rng *rand.Rand, targets []game.Coord, weights []float64) (game.Coord, error) {
	if len(targets) == 0 {
		return game.Coord{}, errors.New("no candidate targets")
	}
	if len(weights) != len(targets) {
		return game.Coord{}, fmt.Errorf("weights length %d != targets length %d", len(weights), len(targets))
	}
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return targets[rng.Intn(len(targets))], nil
	}
	x := rng.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		x -= w
		if x <= 0 {
			return targets[i], nil
		}
	}
	return targets[len(targets)-1], nil
}

func uniform(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}
