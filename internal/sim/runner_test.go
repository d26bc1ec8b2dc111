package sim

import (
	"context"
	"testing"

	"go.uber.org/goleak"

	"github.com/jayseearr/battleship/internal/offense"
	"github.com/jayseearr/battleship/internal/player"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig(games int, seed int64) Config {
	return Config{
		Games:   games,
		Workers: 2,
		Seed:    seed,
		Player1: player.Spec{
			Name:    "hunter",
			Offense: offense.Spec{Strategy: "hunter"},
		},
		Player2: player.Spec{
			Name:    "drunk",
			Offense: offense.Spec{Strategy: "random"},
		},
	}
}

func TestRunnerRun(t *testing.T) {
	r := NewRunner(testConfig(6, 99), nil, nil)
	summary, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Games != 6 {
		t.Fatalf("games = %d, want 6", summary.Games)
	}
	if summary.Player1Wins+summary.Player2Wins+summary.Ties != 6 {
		t.Errorf("outcomes do not add up: %+v", summary)
	}
	if summary.MinTurns <= 0 || summary.MinTurns > summary.MaxTurns {
		t.Errorf("turn bounds: min %d max %d", summary.MinTurns, summary.MaxTurns)
	}
	if summary.MeanTurns < float64(summary.MinTurns) || summary.MeanTurns > float64(summary.MaxTurns) {
		t.Errorf("mean %f outside [%d, %d]", summary.MeanTurns, summary.MinTurns, summary.MaxTurns)
	}
	if summary.TotalShots == 0 || summary.TotalHits == 0 {
		t.Errorf("no shots recorded: %+v", summary)
	}
	if summary.String() == "" {
		t.Error("summary report is empty")
	}
}

// A targeted hunter should beat a uniform random shooter most of the time.
func TestHunterBeatsRandom(t *testing.T) {
	if testing.Short() {
		t.Skip("plays 40 games")
	}
	r := NewRunner(testConfig(40, 7), nil, nil)
	summary, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Player1Wins <= summary.Player2Wins {
		t.Errorf("hunter won %d of %d against random (%d)",
			summary.Player1Wins, summary.Games, summary.Player2Wins)
	}
}

// The same seed must reproduce the same batch regardless of scheduling.
func TestRunnerReproducible(t *testing.T) {
	run := func() Summary {
		r := NewRunner(testConfig(8, 1234), nil, nil)
		s, err := r.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		return s
	}
	a, b := run(), run()
	if a.Player1Wins != b.Player1Wins || a.Player2Wins != b.Player2Wins || a.Ties != b.Ties {
		t.Errorf("outcomes differ between runs: %+v vs %+v", a, b)
	}
	if a.TotalShots != b.TotalShots || a.TotalHits != b.TotalHits {
		t.Errorf("shot totals differ between runs: %d/%d vs %d/%d",
			a.TotalShots, a.TotalHits, b.TotalShots, b.TotalHits)
	}
}

func TestRunnerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(testConfig(50, 5), nil, nil)
	if _, err := r.Run(ctx); err == nil {
		t.Error("cancelled context should abort the batch")
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := (&Config{}).withDefaults()
	if cfg.Games != 1 {
		t.Errorf("default games = %d", cfg.Games)
	}
	if cfg.Workers <= 0 {
		t.Errorf("default workers = %d", cfg.Workers)
	}
	if cfg.MaxTurns != DefaultMaxTurns {
		t.Errorf("default max turns = %d", cfg.MaxTurns)
	}
	if cfg.Seed == 0 {
		t.Error("default seed should be time-based, not zero")
	}
	if cfg.Player1.Name == "" || cfg.Player2.Name == "" {
		t.Error("default player names missing")
	}
}
