// Package sim runs batches of AI-vs-AI games concurrently and aggregates the
// results.
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jayseearr/battleship/internal/game"
	"github.com/jayseearr/battleship/internal/player"
	"github.com/jayseearr/battleship/internal/store"
)

// DefaultMaxTurns bounds simulated games. A healthy offense finishes a 10x10
// game in well under 100 turns; hitting the cap means targeting went wrong
// and the game counts as a tie.
const DefaultMaxTurns = 100

// Config describes a simulation batch.
type Config struct {
	Games     int         `yaml:"games"`
	Workers   int         `yaml:"workers"`
	MaxTurns  int         `yaml:"max_turns"`
	Seed      int64       `yaml:"seed"` // 0 means time-seeded
	BoardSize int         `yaml:"board_size"`
	Player1   player.Spec `yaml:"player1"`
	Player2   player.Spec `yaml:"player2"`
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.Games <= 0 {
		out.Games = 1
	}
	if out.Workers <= 0 {
		out.Workers = runtime.NumCPU()
	}
	if out.MaxTurns <= 0 {
		out.MaxTurns = DefaultMaxTurns
	}
	if out.BoardSize <= 0 {
		out.BoardSize = game.DefaultBoardSize
	}
	if out.Seed == 0 {
		out.Seed = time.Now().UnixNano()
	}
	if out.Player1.Name == "" {
		out.Player1.Name = "player1"
	}
	if out.Player2.Name == "" {
		out.Player2.Name = "player2"
	}
	return out
}

// Runner plays the configured batch. Store is optional; when set every game
// and its shots are persisted.
type Runner struct {
	cfg   Config
	log   *zap.Logger
	store *store.Store
}

// NewRunner builds a runner. log may be nil.
func NewRunner(cfg Config, log *zap.Logger, st *store.Store) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg.withDefaults(), log: log, store: st}
}

// Run plays all games, up to Workers at a time. Each worker builds its own
// players and rng (seeded from the batch seed and game index), so games are
// independent and the batch is reproducible for a fixed seed and worker
// count.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	cfg := r.cfg
	r.log.Info("simulation starting",
		zap.Int("games", cfg.Games),
		zap.Int("workers", cfg.Workers),
		zap.String("player1", cfg.Player1.Name),
		zap.String("player2", cfg.Player2.Name),
		zap.Int64("seed", cfg.Seed))

	start := time.Now()
	var (
		mu  sync.Mutex
		agg aggregator
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Games; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, p1, p2, err := r.playGame(i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			if r.store != nil {
				rec := store.RecordFromResult(res, cfg.Player1.Name, cfg.Player2.Name)
				shots := append(store.ShotsFromHistory(1, p1.History()),
					store.ShotsFromHistory(2, p2.History())...)
				if err := r.store.SaveGame(ctx, rec, shots); err != nil {
					return fmt.Errorf("game %d: save: %w", i+1, err)
				}
			}
			mu.Lock()
			agg.add(res, cfg.Player1.Name)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := agg.summary(cfg, time.Since(start))
	r.log.Info("simulation finished",
		zap.Int("games", summary.Games),
		zap.Int("player1_wins", summary.Player1Wins),
		zap.Int("player2_wins", summary.Player2Wins),
		zap.Int("ties", summary.Ties),
		zap.Duration("elapsed", summary.Elapsed))
	return summary, nil
}

// playGame builds fresh players and plays one game.
func (r *Runner) playGame(index int) (game.Result, *player.AI, *player.AI, error) {
	cfg := r.cfg
	rng := rand.New(rand.NewSource(cfg.Seed + int64(index)))

	p1, err := player.NewAI(cfg.Player1, cfg.BoardSize, rng, r.log)
	if err != nil {
		return game.Result{}, nil, nil, err
	}
	p2, err := player.NewAI(cfg.Player2, cfg.BoardSize, rng, r.log)
	if err != nil {
		return game.Result{}, nil, nil, err
	}

	gm := game.NewGame(p1, p2, game.Options{
		ID:       fmt.Sprintf("sim-%d-%d", cfg.Seed, index+1),
		MaxTurns: cfg.MaxTurns,
		Rand:     rng,
		Logger:   r.log,
	})
	if err := gm.Setup(); err != nil {
		return game.Result{}, nil, nil, err
	}
	res, err := gm.Play(game.FirstMoveRandom)
	if err != nil {
		return game.Result{}, nil, nil, err
	}
	return res, p1, p2, nil
}
