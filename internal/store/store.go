// Package store persists game results and shot histories to SQLite so
// simulations can be analyzed and games replayed later.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/jayseearr/battleship/internal/game"
)

// Store wraps the SQLite database.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens (creating if necessary) the database at path and applies the
// schema.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		log.Debug("set busy_timeout failed", zap.Error(err))
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		log.Debug("set journal_mode failed", zap.Error(err))
	}
	s := &Store{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	log.Debug("store opened", zap.String("path", path))
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id          TEXT PRIMARY KEY,
			played_at   INTEGER NOT NULL,
			player1     TEXT NOT NULL,
			player2     TEXT NOT NULL,
			winner      TEXT,
			tie         INTEGER NOT NULL DEFAULT 0,
			first_move  INTEGER NOT NULL,
			turn_count  INTEGER NOT NULL,
			duration_us INTEGER NOT NULL,
			p1_shots    INTEGER NOT NULL,
			p1_hits     INTEGER NOT NULL,
			p1_sunk     INTEGER NOT NULL,
			p2_shots    INTEGER NOT NULL,
			p2_hits     INTEGER NOT NULL,
			p2_sunk     INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS shots (
			game_id   TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
			player    INTEGER NOT NULL,
			turn      INTEGER NOT NULL,
			row       INTEGER NOT NULL,
			col       INTEGER NOT NULL,
			hit       INTEGER NOT NULL,
			sunk      INTEGER NOT NULL,
			sunk_ship INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (game_id, player, turn)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_games_players ON games(player1, player2)`,
		`CREATE INDEX IF NOT EXISTS idx_games_played_at ON games(played_at)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// GameRecord is the stored form of a game result.
type GameRecord struct {
	ID        string
	PlayedAt  time.Time
	Player1   string
	Player2   string
	Winner    string // empty on tie
	Tie       bool
	FirstMove int
	TurnCount int
	Duration  time.Duration
	P1Stats   game.PlayerStats
	P2Stats   game.PlayerStats
}

// ShotRecord is one shot of a stored game. Player is 1 or 2; Turn counts that
// player's shots from zero.
type ShotRecord struct {
	Player   int
	Turn     int
	Coord    game.Coord
	Hit      bool
	Sunk     bool
	SunkShip game.ShipType
}

// RecordFromResult converts an engine result to a storable record.
func RecordFromResult(res game.Result, player1, player2 string) GameRecord {
	rec := GameRecord{
		ID:        res.GameID,
		PlayedAt:  res.StartedAt,
		Player1:   player1,
		Player2:   player2,
		Tie:       res.Tie,
		FirstMove: res.FirstMove,
		TurnCount: res.TurnCount,
		Duration:  res.Duration,
		P1Stats:   res.Player1Stats,
		P2Stats:   res.Player2Stats,
	}
	if res.Winner != nil {
		rec.Winner = res.Winner.Name()
	}
	return rec
}

// ShotsFromHistory converts a player's outcome history to shot records.
func ShotsFromHistory(player int, history []game.Outcome) []ShotRecord {
	shots := make([]ShotRecord, len(history))
	for i, o := range history {
		shots[i] = ShotRecord{
			Player:   player,
			Turn:     i,
			Coord:    o.Coord,
			Hit:      o.Hit,
			Sunk:     o.Sunk,
			SunkShip: o.SunkShip,
		}
	}
	return shots
}

// SaveGame writes a game and its shots in one transaction.
func (s *Store) SaveGame(ctx context.Context, rec GameRecord, shots []ShotRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO games
		(id, played_at, player1, player2, winner, tie, first_move, turn_count, duration_us,
		 p1_shots, p1_hits, p1_sunk, p2_shots, p2_hits, p2_sunk)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.PlayedAt.UnixMicro(), rec.Player1, rec.Player2, rec.Winner,
		boolToInt(rec.Tie), rec.FirstMove, rec.TurnCount, rec.Duration.Microseconds(),
		rec.P1Stats.Shots, rec.P1Stats.Hits, rec.P1Stats.ShipsSunk,
		rec.P2Stats.Shots, rec.P2Stats.Hits, rec.P2Stats.ShipsSunk)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", rec.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO shots
		(game_id, player, turn, row, col, hit, sunk, sunk_ship)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare shots: %w", err)
	}
	defer stmt.Close()
	for _, shot := range shots {
		_, err := stmt.ExecContext(ctx, rec.ID, shot.Player, shot.Turn,
			shot.Coord.Row, shot.Coord.Col,
			boolToInt(shot.Hit), boolToInt(shot.Sunk), int(shot.SunkShip))
		if err != nil {
			return fmt.Errorf("insert shot: %w", err)
		}
	}
	return tx.Commit()
}

// ListGames returns the most recent games, newest first.
func (s *Store) ListGames(ctx context.Context, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `SELECT
		id, played_at, player1, player2, winner, tie, first_move, turn_count, duration_us,
		p1_shots, p1_hits, p1_sunk, p2_shots, p2_hits, p2_sunk
		FROM games ORDER BY played_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		rec, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LoadGame returns one game and its shot history ordered by turn.
func (s *Store) LoadGame(ctx context.Context, id string) (GameRecord, []ShotRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT
		id, played_at, player1, player2, winner, tie, first_move, turn_count, duration_us,
		p1_shots, p1_hits, p1_sunk, p2_shots, p2_hits, p2_sunk
		FROM games WHERE id = ?`, id)
	rec, err := scanGame(row)
	if err == sql.ErrNoRows {
		return GameRecord{}, nil, fmt.Errorf("game %s not found", id)
	}
	if err != nil {
		return GameRecord{}, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT player, turn, row, col, hit, sunk, sunk_ship
		FROM shots WHERE game_id = ? ORDER BY turn, player`, id)
	if err != nil {
		return GameRecord{}, nil, err
	}
	defer rows.Close()

	var shots []ShotRecord
	for rows.Next() {
		var shot ShotRecord
		var hit, sunk, sunkShip int
		if err := rows.Scan(&shot.Player, &shot.Turn, &shot.Coord.Row, &shot.Coord.Col,
			&hit, &sunk, &sunkShip); err != nil {
			return GameRecord{}, nil, err
		}
		shot.Hit = hit != 0
		shot.Sunk = sunk != 0
		shot.SunkShip = game.ShipType(sunkShip)
		shots = append(shots, shot)
	}
	return rec, shots, rows.Err()
}

// MatchupStats aggregates results per player pairing.
type MatchupStats struct {
	Player1    string
	Player2    string
	Games      int
	Player1Win int
	Player2Win int
	Ties       int
	MeanTurns  float64
}

// Matchups returns aggregate stats grouped by player pairing.
func (s *Store) Matchups(ctx context.Context) ([]MatchupStats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		player1, player2, COUNT(*),
		SUM(CASE WHEN winner = player1 THEN 1 ELSE 0 END),
		SUM(CASE WHEN winner = player2 THEN 1 ELSE 0 END),
		SUM(tie),
		AVG(turn_count)
		FROM games GROUP BY player1, player2 ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []MatchupStats
	for rows.Next() {
		var m MatchupStats
		if err := rows.Scan(&m.Player1, &m.Player2, &m.Games,
			&m.Player1Win, &m.Player2Win, &m.Ties, &m.MeanTurns); err != nil {
			return nil, err
		}
		stats = append(stats, m)
	}
	return stats, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (GameRecord, error) {
	var rec GameRecord
	var playedAt, durationUS int64
	var tie int
	err := row.Scan(&rec.ID, &playedAt, &rec.Player1, &rec.Player2, &rec.Winner, &tie,
		&rec.FirstMove, &rec.TurnCount, &durationUS,
		&rec.P1Stats.Shots, &rec.P1Stats.Hits, &rec.P1Stats.ShipsSunk,
		&rec.P2Stats.Shots, &rec.P2Stats.Hits, &rec.P2Stats.ShipsSunk)
	if err != nil {
		return GameRecord{}, err
	}
	rec.PlayedAt = time.UnixMicro(playedAt)
	rec.Duration = time.Duration(durationUS) * time.Microsecond
	rec.Tie = tie != 0
	if rec.P1Stats.Shots > 0 {
		rec.P1Stats.HitRate = float64(rec.P1Stats.Hits) / float64(rec.P1Stats.Shots)
	}
	if rec.P2Stats.Shots > 0 {
		rec.P2Stats.HitRate = float64(rec.P2Stats.Hits) / float64(rec.P2Stats.Shots)
	}
	rec.P1Stats.Misses = rec.P1Stats.Shots - rec.P1Stats.Hits
	rec.P2Stats.Misses = rec.P2Stats.Shots - rec.P2Stats.Hits
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
