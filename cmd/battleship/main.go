package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jayseearr/battleship/cmd/battleship/ui"
	"github.com/jayseearr/battleship/internal/config"
	"github.com/jayseearr/battleship/internal/logging"
	"github.com/jayseearr/battleship/internal/sim"
	"github.com/jayseearr/battleship/internal/store"
)

var (
	// Global flags
	cfgPath string
	verbose bool
	logJSON bool

	cfg    config.Config
	logger *zap.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "battleship",
	Short: "Battleship - play, simulate, and analyze games",
	Long: `battleship is a terminal Battleship game and strategy laboratory.

Play interactively against a configurable AI opponent, run large AI-vs-AI
simulation batches to compare strategies, and inspect or replay stored games.

Run without arguments to start an interactive game.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		if logJSON {
			cfg.Logging.JSON = true
		}

		// The interactive game owns the terminal; logging would corrupt it.
		if cmd.Name() == "play" || cmd.Name() == "replay" || cmd == cmd.Root() {
			logger = zap.NewNop()
			return nil
		}
		logger, err = logging.New(cfg.Logging.Level, cfg.Logging.JSON)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, args)
	},
}

// playCmd starts an interactive game.
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play an interactive game against the AI",
	Long: `Starts a terminal game against the configured AI opponent.

Place your fleet with the arrow keys (r rotates, a auto-places the rest),
then take turns firing at the opponent's grid.`,
	RunE: runPlay,
}

// simulateCmd runs an AI-vs-AI batch.
var simulateCmd = &cobra.Command{
	Use:     "simulate",
	Aliases: []string{"sim"},
	Short:   "Run a batch of AI-vs-AI games",
	Long: `Plays the configured matchup repeatedly, in parallel, and prints a
summary of wins, ties, and turn counts. With persistence enabled every game
and its shots are stored for later analysis and replay.

A fixed --seed reproduces the same batch of games.`,
	RunE: runSimulate,
}

// gamesCmd lists stored games.
var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List stored games, newest first",
	RunE:  runGames,
}

// statsCmd prints aggregate matchup statistics.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show win/loss statistics per matchup",
	RunE:  runStats,
}

// replayCmd steps through a stored game.
var replayCmd = &cobra.Command{
	Use:   "replay [game-id]",
	Short: "Replay a stored game shot by shot",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

// configCmd groups configuration helpers.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgPath); err == nil {
			return fmt.Errorf("%s already exists", cfgPath)
		}
		def := config.Default()
		if err := def.Save(cfgPath); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", cfgPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var (
	simGames    int
	simWorkers  int
	simSeed     int64
	simMaxTurns int
	simNoSave   bool
	gamesLimit  int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.DefaultPath, "configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "JSON log output")

	simulateCmd.Flags().IntVarP(&simGames, "games", "n", 0, "number of games (overrides config)")
	simulateCmd.Flags().IntVar(&simWorkers, "workers", 0, "concurrent games (overrides config)")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "rng seed for a reproducible batch")
	simulateCmd.Flags().IntVar(&simMaxTurns, "max-turns", 0, "turn cap per game (overrides config)")
	simulateCmd.Flags().BoolVar(&simNoSave, "no-save", false, "do not persist games")

	gamesCmd.Flags().IntVarP(&gamesLimit, "limit", "n", 20, "number of games to list")

	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(playCmd, simulateCmd, gamesCmd, statsCmd, replayCmd, configCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	model, err := ui.NewModel(ui.Options{
		PlayerName: cfg.Play.PlayerName,
		Opponent:   cfg.Play.Opponent,
		BoardSize:  cfg.BoardSize,
		MaxTurns:   cfg.Play.MaxTurns,
		Rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	simCfg := cfg.Simulation
	if simCfg.BoardSize == 0 {
		simCfg.BoardSize = cfg.BoardSize
	}
	if simGames > 0 {
		simCfg.Games = simGames
	}
	if simWorkers > 0 {
		simCfg.Workers = simWorkers
	}
	if simSeed != 0 {
		simCfg.Seed = simSeed
	}
	if simMaxTurns > 0 {
		simCfg.MaxTurns = simMaxTurns
	}

	var st *store.Store
	if cfg.Store.Persist && !simNoSave {
		var err error
		st, err = store.Open(cfg.Store.Path, logger)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	summary, err := sim.NewRunner(simCfg, logger, st).Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(summary)
	return nil
}

func runGames(cmd *cobra.Command, args []string) error {
	st, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.ListGames(cmd.Context(), gamesLimit)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPLAYED\tMATCHUP\tRESULT\tTURNS")
	for _, rec := range records {
		result := "tie"
		if !rec.Tie {
			result = rec.Winner + " won"
		}
		fmt.Fprintf(w, "%s\t%s\t%s vs %s\t%s\t%d\n",
			rec.ID, rec.PlayedAt.Format(time.DateTime),
			rec.Player1, rec.Player2, result, rec.TurnCount)
	}
	return w.Flush()
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	matchups, err := st.Matchups(cmd.Context())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MATCHUP\tGAMES\tP1 WINS\tP2 WINS\tTIES\tMEAN TURNS")
	for _, m := range matchups {
		fmt.Fprintf(w, "%s vs %s\t%d\t%d\t%d\t%d\t%.1f\n",
			m.Player1, m.Player2, m.Games, m.Player1Win, m.Player2Win, m.Ties, m.MeanTurns)
	}
	return w.Flush()
}

func runReplay(cmd *cobra.Command, args []string) error {
	st, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	rec, shots, err := st.LoadGame(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	model, err := ui.NewReplayModel(rec, shots, cfg.BoardSize)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
