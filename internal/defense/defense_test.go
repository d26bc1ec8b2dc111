package defense

import (
	"math/rand"
	"testing"

	"github.com/jayseearr/battleship/internal/game"
)

func TestNewValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bad := []Spec{
		{Strategy: "psychic"},
		{Formation: "diagonal"},
		{Method: "perfect"},
		{Alignment: "diagonal"},
		{EdgeBuffer: -1},
		{ShipBuffer: -2},
	}
	for _, spec := range bad {
		if _, err := New(spec, rng); err == nil {
			t.Errorf("spec %+v should fail validation", spec)
		}
	}

	ok := []Spec{
		{},
		{Formation: "cluster"},
		{Formation: "isolate", Method: "optimize"},
		{Formation: FormationClustered, Method: MethodAny},
		{EdgeBuffer: 1, ShipBuffer: 1, Alignment: "N/S"},
	}
	for _, spec := range ok {
		if _, err := New(spec, rng); err != nil {
			t.Errorf("spec %+v: %v", spec, err)
		}
	}
}

// Fleet output must always be accepted whole by a fresh board.
func TestFleetIsValid(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	d, err := NewRandom(Spec{}, rng)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		placements, err := d.Fleet(game.DefaultBoardSize)
		if err != nil {
			t.Fatal(err)
		}
		if len(placements) != game.NumShipTypes {
			t.Fatalf("fleet has %d ships, want %d", len(placements), game.NumShipTypes)
		}
		b, _ := game.NewBoard(game.DefaultBoardSize)
		if err := b.AddFleet(placements); err != nil {
			t.Fatalf("fleet %d rejected: %v", i, err)
		}
	}
}

func TestFleetHonorsBuffers(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	d, err := NewRandom(Spec{EdgeBuffer: 1, ShipBuffer: 1}, rng)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		placements, err := d.Fleet(game.DefaultBoardSize)
		if err != nil {
			t.Fatal(err)
		}
		for t1, p := range placements {
			for _, c := range p.Coords() {
				if c.Row < 1 || c.Row > 8 || c.Col < 1 || c.Col > 8 {
					t.Fatalf("%s at %v violates edge buffer", t1, c)
				}
			}
			for t2, other := range placements {
				if t1 == t2 {
					continue
				}
				if p.MinDistTo(other, game.DistManhattan) <= 1 {
					t.Fatalf("%s and %s closer than the ship buffer", t1, t2)
				}
			}
		}
	}
}

func TestFleetAlignment(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	d, err := NewRandom(Spec{Alignment: "vertical"}, rng)
	if err != nil {
		t.Fatal(err)
	}
	placements, err := d.Fleet(game.DefaultBoardSize)
	if err != nil {
		t.Fatal(err)
	}
	for st, p := range placements {
		for _, c := range p.Coords() {
			if c.Col != p.Coord.Col {
				t.Errorf("%s placement %v is not vertical", st, p)
			}
		}
	}
}

// Isolated fleets should spread out more than clustered ones.
func TestFormationsDiffer(t *testing.T) {
	spread := func(formation string, seed int64) float64 {
		d, err := NewRandom(Spec{Formation: formation, Method: MethodOptimize}, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatal(err)
		}
		placements, err := d.Fleet(game.DefaultBoardSize)
		if err != nil {
			t.Fatal(err)
		}
		var total float64
		for t1, p := range placements {
			for t2, other := range placements {
				if t1 < t2 {
					total += p.TotalDistTo(other, game.DistEuclidean)
				}
			}
		}
		return total
	}

	var isolated, clustered float64
	for seed := int64(0); seed < 5; seed++ {
		isolated += spread(FormationIsolated, seed)
		clustered += spread(FormationClustered, seed)
	}
	if isolated <= clustered {
		t.Errorf("isolated spread %.1f should exceed clustered spread %.1f", isolated, clustered)
	}
}

func TestFleetImpossibleConstraints(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	// An edge buffer of 3 leaves a 4x4 interior; the carrier cannot fit.
	d, err := NewRandom(Spec{EdgeBuffer: 3}, rng)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Fleet(game.DefaultBoardSize); err == nil {
		t.Error("carrier cannot fit inside edge buffer 3, Fleet should fail")
	}
}
