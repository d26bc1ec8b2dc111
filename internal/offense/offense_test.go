package offense

import (
	"math/rand"
	"testing"

	"github.com/jayseearr/battleship/internal/game"
)

func TestNew(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := New(Spec{}, rng); err != nil {
		t.Errorf("empty spec should default to random: %v", err)
	}
	if _, err := New(Spec{Strategy: "hunter"}, rng); err != nil {
		t.Errorf("hunter spec: %v", err)
	}
	if _, err := New(Spec{Strategy: "psychic"}, rng); err == nil {
		t.Error("unknown strategy should fail")
	}
}

func TestRandomTargetsUntargeted(t *testing.T) {
	b, _ := game.NewBoard(game.DefaultBoardSize)
	want := game.Coord{Row: 4, Col: 7}
	for _, c := range b.AllCoords() {
		if c != want {
			b.UpdateTargetGrid(game.Outcome{Coord: c})
		}
	}

	r := NewRandom(rand.New(rand.NewSource(1)))
	got, err := r.Target(b, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Target = %v, want the only untargeted space %v", got, want)
	}
}

func TestWeightedPick(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	targets := []game.Coord{{Row: 0}, {Row: 1}, {Row: 2}}

	if _, err := weightedPick(rng, nil, nil); err == nil {
		t.Error("empty targets should fail")
	}
	if _, err := weightedPick(rng, targets, []float64{1}); err == nil {
		t.Error("mismatched weights should fail")
	}

	// All weight on one candidate.
	for i := 0; i < 50; i++ {
		c, err := weightedPick(rng, targets, []float64{0, 1, 0})
		if err != nil {
			t.Fatal(err)
		}
		if c != targets[1] {
			t.Fatalf("pick %d: got %v with all weight on %v", i, c, targets[1])
		}
	}

	// Zero total weight falls back to uniform.
	seen := map[game.Coord]bool{}
	for i := 0; i < 100; i++ {
		c, err := weightedPick(rng, targets, []float64{0, 0, 0})
		if err != nil {
			t.Fatal(err)
		}
		seen[c] = true
	}
	if len(seen) != len(targets) {
		t.Errorf("uniform fallback only produced %v", seen)
	}
}
