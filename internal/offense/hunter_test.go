package offense

import (
	"math/rand"
	"testing"

	"github.com/jayseearr/battleship/internal/game"
)

func TestNewHunterValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bad := []Spec{
		{Strategy: "hunter", HuntStyle: "telepathic"},
		{Strategy: "hunter", HuntStyle: "random", HuntPattern: "grid"},
		{Strategy: "hunter", HuntStyle: "pattern", HuntPattern: "maxprob"},
		{Strategy: "hunter", Weight: "luck"},
		{Strategy: "hunter", KillMethod: "nuke"},
		{Strategy: "hunter", NoValidTargets: "panic"},
		{Strategy: "hunter", Rotate: 45},
		{Strategy: "hunter", Mirror: "diagonal"},
	}
	for _, spec := range bad {
		if _, err := NewHunter(spec, rng); err == nil {
			t.Errorf("spec %+v should fail validation", spec)
		}
	}

	ok := []Spec{
		{},
		{HuntStyle: "random", HuntPattern: "isolate"},
		{HuntStyle: "random", HuntPattern: "cluster", Weight: "hits"},
		{HuntStyle: "pattern", HuntPattern: "spiral", Spacing: 3, Rotate: 180},
		{HuntStyle: "pattern", HuntPattern: "diagonals", Mirror: "vertical"},
		{KillMethod: "basic", NoValidTargets: "ordered"},
	}
	for _, spec := range ok {
		if _, err := NewHunter(spec, rng); err != nil {
			t.Errorf("spec %+v: %v", spec, err)
		}
	}
}

func TestHunterModeTransitions(t *testing.T) {
	h, err := NewHunter(Spec{}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if h.Mode() != ModeHunt {
		t.Fatal("new hunter should start hunting")
	}

	h.Update(game.Outcome{Coord: game.Coord{Row: 3, Col: 3}})
	if h.Mode() != ModeHunt {
		t.Error("a miss should not change mode")
	}

	h.Update(game.Outcome{Coord: game.Coord{Row: 3, Col: 3}, Hit: true})
	if h.Mode() != ModeKill {
		t.Error("a hit should enter kill mode")
	}

	h.Update(game.Outcome{Coord: game.Coord{Row: 3, Col: 4}, Hit: true, Sunk: true, SunkShip: game.Patrol})
	if h.Mode() != ModeHunt {
		t.Error("a sink should return to hunt mode")
	}

	h.Update(game.Outcome{Coord: game.Coord{Row: 5, Col: 5}, Hit: true})
	h.Reset()
	if h.Mode() != ModeHunt {
		t.Error("Reset should return to hunt mode")
	}
}

// With two hits in a row, the basic kill method only considers the untargeted
// spaces beyond the ends of the line.
func TestBasicKillLineEnds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	h, err := NewHunter(Spec{KillMethod: KillBasic}, rng)
	if err != nil {
		t.Fatal(err)
	}

	b, _ := game.NewBoard(game.DefaultBoardSize)
	for _, o := range []game.Outcome{
		{Coord: game.Coord{Row: 5, Col: 4}, Hit: true},
		{Coord: game.Coord{Row: 5, Col: 5}, Hit: true},
	} {
		b.UpdateTargetGrid(o)
		h.Update(o)
	}

	ends := map[game.Coord]bool{
		{Row: 5, Col: 3}: true,
		{Row: 5, Col: 6}: true,
	}
	for i := 0; i < 20; i++ {
		c, err := h.Target(b, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !ends[c] {
			t.Fatalf("kill target %v is not a line end", c)
		}
	}
}

// The advanced kill method only fires at spaces some live placement covering
// an open hit could occupy, so every candidate shares a row or column with
// the hit.
func TestAdvancedKillStaysNearHit(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	h, err := NewHunter(Spec{KillMethod: KillAdvanced}, rng)
	if err != nil {
		t.Fatal(err)
	}

	b, _ := game.NewBoard(game.DefaultBoardSize)
	hit := game.Outcome{Coord: game.Coord{Row: 4, Col: 4}, Hit: true}
	b.UpdateTargetGrid(hit)
	h.Update(hit)

	for i := 0; i < 20; i++ {
		c, err := h.Target(b, nil)
		if err != nil {
			t.Fatal(err)
		}
		if c.Row != 4 && c.Col != 4 {
			t.Fatalf("target %v shares no row or column with the hit", c)
		}
		if d := c.DistTo(hit.Coord, game.DistManhattan); d > 4 {
			t.Fatalf("target %v is %v away, beyond any ship's reach", c, d)
		}
	}
}

func TestGridPatternSequence(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	h, err := NewHunter(Spec{HuntStyle: HuntPattern, HuntPattern: PatternGrid, Spacing: 2}, rng)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := game.NewBoard(game.DefaultBoardSize)

	want := []game.Coord{
		{Row: 0, Col: 0}, {Row: 0, Col: 2}, {Row: 0, Col: 4}, {Row: 0, Col: 6}, {Row: 0, Col: 8},
		{Row: 2, Col: 1}, {Row: 2, Col: 3}, {Row: 2, Col: 5}, {Row: 2, Col: 7}, {Row: 2, Col: 9},
	}
	for i, w := range want {
		c, err := h.Target(b, nil)
		if err != nil {
			t.Fatal(err)
		}
		if c != w {
			t.Fatalf("pattern shot %d = %v, want %v", i, c, w)
		}
		out := game.Outcome{Coord: c}
		b.UpdateTargetGrid(out)
		h.Update(out)
	}
}

func TestPatternExhaustedOrdered(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	// Spacing larger than the board leaves a single pattern space.
	h, err := NewHunter(Spec{
		HuntStyle:      HuntPattern,
		HuntPattern:    PatternGrid,
		Spacing:        20,
		NoValidTargets: "ordered",
	}, rng)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := game.NewBoard(game.DefaultBoardSize)

	c, err := h.Target(b, nil)
	if err != nil {
		t.Fatal(err)
	}
	if (c != game.Coord{Row: 0, Col: 0}) {
		t.Fatalf("first pattern shot = %v, want A1", c)
	}
	b.UpdateTargetGrid(game.Outcome{Coord: c})

	c, err = h.Target(b, nil)
	if err != nil {
		t.Fatal(err)
	}
	if (c != game.Coord{Row: 0, Col: 1}) {
		t.Fatalf("ordered fallback = %v, want the first untargeted space A2", c)
	}
}

func TestDiagonalPatternCoversBoard(t *testing.T) {
	coords := diagonalPattern(10, 1)
	seen := map[game.Coord]bool{}
	for _, c := range coords {
		if !c.OnBoard(10) {
			t.Fatalf("coord %v off board", c)
		}
		if seen[c] {
			t.Fatalf("coord %v repeated", c)
		}
		seen[c] = true
	}
	if len(seen) != 100 {
		t.Errorf("diagonal pattern with spacing 1 covered %d spaces, want 100", len(seen))
	}
}

func TestSpiralPattern(t *testing.T) {
	coords := spiralPattern(5, 1)
	if len(coords) != 25 {
		t.Fatalf("spiral walk length = %d, want 25", len(coords))
	}
	wantStart := []game.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}
	for i, w := range wantStart {
		if coords[i] != w {
			t.Errorf("spiral[%d] = %v, want %v", i, coords[i], w)
		}
	}
	if got := len(spiralPattern(5, 2)); got != 13 {
		t.Errorf("spiral with spacing 2 = %d coords, want 13", got)
	}
}

func TestPatternRotate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	h, err := NewHunter(Spec{HuntStyle: HuntPattern, HuntPattern: PatternGrid, Spacing: 20, Rotate: 90}, rng)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := game.NewBoard(game.DefaultBoardSize)
	c, err := h.Target(b, nil)
	if err != nil {
		t.Fatal(err)
	}
	// (0,0) rotated a quarter turn lands on (0, size-1).
	if (c != game.Coord{Row: 0, Col: 9}) {
		t.Errorf("rotated pattern start = %v, want A10", c)
	}
}

// A full hunt of a real fleet must finish without ever repeating a shot.
func TestHunterSinksFleet(t *testing.T) {
	for _, spec := range []Spec{
		{KillMethod: KillAdvanced},
		{KillMethod: KillBasic},
		{HuntStyle: HuntPattern, HuntPattern: PatternGrid, KillMethod: KillBasic},
		{HuntStyle: HuntRandom, HuntPattern: PatternMaxProb},
	} {
		rng := rand.New(rand.NewSource(42))
		h, err := NewHunter(spec, rng)
		if err != nil {
			t.Fatal(err)
		}

		own, _ := game.NewBoard(game.DefaultBoardSize)
		opp, _ := game.NewBoard(game.DefaultBoardSize)
		if err := opp.AddFleet(map[game.ShipType]game.Placement{
			game.Carrier:    {Coord: game.Coord{Row: 1, Col: 1}, Heading: game.West, Length: 5},
			game.Battleship: {Coord: game.Coord{Row: 3, Col: 2}, Heading: game.North, Length: 4},
			game.Submarine:  {Coord: game.Coord{Row: 8, Col: 5}, Heading: game.West, Length: 3},
			game.Destroyer:  {Coord: game.Coord{Row: 4, Col: 7}, Heading: game.North, Length: 3},
			game.Patrol:     {Coord: game.Coord{Row: 0, Col: 8}, Heading: game.North, Length: 2},
		}); err != nil {
			t.Fatal(err)
		}

		var history []game.Outcome
		fired := map[game.Coord]bool{}
		shots := 0
		for opp.FleetAfloat() {
			if shots++; shots > 100 {
				t.Fatalf("spec %+v: fleet not sunk within 100 shots", spec)
			}
			c, err := h.Target(own, history)
			if err != nil {
				t.Fatal(err)
			}
			if fired[c] {
				t.Fatalf("spec %+v: repeated shot at %v", spec, c)
			}
			fired[c] = true
			out, err := opp.IncomingShot(c)
			if err != nil {
				t.Fatal(err)
			}
			own.UpdateTargetGrid(out)
			history = append(history, out)
			h.Update(out)
		}
	}
}
