// Package config loads and saves the application's YAML configuration.
// Missing files yield defaults; environment variables override a few fields
// so scripts can redirect the store or quiet the logs without editing YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jayseearr/battleship/internal/defense"
	"github.com/jayseearr/battleship/internal/game"
	"github.com/jayseearr/battleship/internal/offense"
	"github.com/jayseearr/battleship/internal/player"
	"github.com/jayseearr/battleship/internal/sim"
)

// DefaultPath is where commands look for configuration when --config is not
// given.
const DefaultPath = "battleship.yaml"

// Environment overrides.
const (
	EnvStorePath = "BATTLESHIP_STORE_PATH"
	EnvLogLevel  = "BATTLESHIP_LOG_LEVEL"
)

// Config is the root configuration document.
type Config struct {
	BoardSize  int           `yaml:"board_size"`
	Store      StoreConfig   `yaml:"store"`
	Play       PlayConfig    `yaml:"play"`
	Simulation sim.Config    `yaml:"simulation"`
	Logging    LoggingConfig `yaml:"logging"`
}

// StoreConfig locates the results database.
type StoreConfig struct {
	Path    string `yaml:"path"`
	Persist bool   `yaml:"persist"`
}

// PlayConfig configures interactive games.
type PlayConfig struct {
	PlayerName string      `yaml:"player_name"`
	Opponent   player.Spec `yaml:"opponent"`
	MaxTurns   int         `yaml:"max_turns"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BoardSize: game.DefaultBoardSize,
		Store: StoreConfig{
			Path:    "battleship.db",
			Persist: true,
		},
		Play: PlayConfig{
			PlayerName: "Player",
			Opponent: player.Spec{
				Name: "Admiral",
				Offense: offense.Spec{
					Strategy:   "hunter",
					KillMethod: "advanced",
				},
				Defense: defense.Spec{
					Strategy: "random",
				},
			},
			MaxTurns: game.DefaultMaxTurns,
		},
		Simulation: sim.Config{
			Games: 1000,
			Player1: player.Spec{
				Name: "hunter",
				Offense: offense.Spec{
					Strategy:   "hunter",
					KillMethod: "advanced",
				},
				Defense: defense.Spec{Strategy: "random"},
			},
			Player2: player.Spec{
				Name: "random",
				Offense: offense.Spec{
					Strategy: "random",
				},
				Defense: defense.Spec{Strategy: "random"},
			},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the configuration at path. A missing file is not an error; the
// defaults are returned. Environment overrides apply after the file.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, cfg.Validate()
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvStorePath); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks ranges and cross-field constraints.
func (c *Config) Validate() error {
	if c.BoardSize < game.MinBoardSize || c.BoardSize > game.MaxBoardSize {
		return fmt.Errorf("board_size %d out of range [%d, %d]",
			c.BoardSize, game.MinBoardSize, game.MaxBoardSize)
	}
	for _, d := range []struct {
		name string
		spec defense.Spec
	}{
		{"play.opponent.defense", c.Play.Opponent.Defense},
		{"simulation.player1.defense", c.Simulation.Player1.Defense},
		{"simulation.player2.defense", c.Simulation.Player2.Defense},
	} {
		longest := game.Carrier.Length()
		if c.BoardSize-2*d.spec.EdgeBuffer < longest {
			return fmt.Errorf("%s: edge_buffer %d leaves no room for a length-%d ship on a %dx%d board",
				d.name, d.spec.EdgeBuffer, longest, c.BoardSize, c.BoardSize)
		}
		// Two placements in the playable square can be at most 2*(side-1)
		// apart, so a larger ship buffer cannot separate even two ships.
		playable := c.BoardSize - 2*d.spec.EdgeBuffer
		if d.spec.ShipBuffer >= 2*(playable-1) {
			return fmt.Errorf("%s: ship_buffer %d cannot separate the fleet on a %dx%d board",
				d.name, d.spec.ShipBuffer, c.BoardSize, c.BoardSize)
		}
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
