// Package storage provides SQLite-based persistence for finished games and
// the best score. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-2048/internal/session"
)

// BestScoreKey is the settings key under which the best score is persisted.
const BestScoreKey = "best_score"

// ErrInvalidValue is returned when a persisted value cannot be decoded.
var ErrInvalidValue = errors.New("storage: invalid stored value")

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// GameRecord represents a single finished game.
type GameRecord struct {
	ID        int64
	GameID    string // UUID assigned when the game started
	Preset    string
	Score     int
	MaxTile   int
	Moves     int
	Won       bool
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL UNIQUE,
			preset TEXT NOT NULL,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_preset ON games(preset);
		CREATE INDEX IF NOT EXISTS idx_games_top ON games(preset, score DESC);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame records a finished game. A missing GameID is filled with a new
// UUID. Returns the ID of the inserted record.
func (s *Store) SaveGame(rec GameRecord) (int64, error) {
	if rec.GameID == "" {
		rec.GameID = uuid.NewString()
	}

	result, err := s.db.Exec(
		`INSERT INTO games (game_id, preset, score, max_tile, moves, won)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.GameID, rec.Preset, rec.Score, rec.MaxTile, rec.Moves, rec.Won,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save game: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordGame implements session.GameRecorder.
func (s *Store) RecordGame(summary session.GameSummary) error {
	_, err := s.SaveGame(GameRecord{
		GameID:  summary.GameID,
		Preset:  summary.Preset,
		Score:   summary.Score,
		MaxTile: summary.MaxTile,
		Moves:   summary.Moves,
		Won:     summary.Won,
	})
	return err
}

var (
	_ session.GameRecorder = (*Store)(nil)
	_ session.BestStore    = (*Store)(nil)
)

// TopScores retrieves the top N games for the given preset.
// An empty preset matches every preset. Results are ordered by score descending.
func (s *Store) TopScores(preset string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, preset, score, max_tile, moves, won, created_at
		 FROM games
		 WHERE ? = '' OR preset = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		preset, preset, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []GameRecord
	for rows.Next() {
		var e GameRecord
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Preset, &e.Score, &e.MaxTile, &e.Moves, &e.Won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest recorded score for the given preset.
// Returns 0 if no games exist.
func (s *Store) HighScore(preset string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM games WHERE ? = '' OR preset = ?",
		preset, preset,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all games for the given preset, or every game when
// preset is empty. The best score is kept.
func (s *Store) ClearScores(preset string) error {
	_, err := s.db.Exec("DELETE FROM games WHERE ? = '' OR preset = ?", preset, preset)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// LoadBest returns the persisted best score, or 0 when none has been saved.
// A value that is not a non-negative integer yields ErrInvalidValue.
func (s *Store) LoadBest() (int, error) {
	var raw string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", BestScoreKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load best score: %w", err)
	}

	best, err := strconv.Atoi(raw)
	if err != nil || best < 0 {
		return 0, fmt.Errorf("%w: %s = %q", ErrInvalidValue, BestScoreKey, raw)
	}
	return best, nil
}

// SaveBest persists the best score. The stored value only ever rises, so
// sessions sharing one store cannot overwrite a higher best with their own.
func (s *Store) SaveBest(score int) error {
	if score < 0 {
		return fmt.Errorf("%w: negative best score %d", ErrInvalidValue, score)
	}

	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value
		 WHERE CAST(settings.value AS INTEGER) < CAST(excluded.value AS INTEGER)`,
		BestScoreKey, strconv.Itoa(score),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics for a preset.
type Stats struct {
	Preset     string
	GamesCount int
	Wins       int
	HighScore  int
	MaxTile    int
	AvgScore   float64
	LastPlayed time.Time
}

// GetStats retrieves aggregated statistics for a preset, or for every preset
// when preset is empty.
func (s *Store) GetStats(preset string) (*Stats, error) {
	stats := &Stats{Preset: preset}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0),
		        COALESCE(MAX(max_tile), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM games WHERE ? = '' OR preset = ?`,
		preset, preset,
	).Scan(&stats.GamesCount, &stats.Wins, &stats.HighScore, &stats.MaxTile, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime handles both time.Time and string datetimes returned by the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
