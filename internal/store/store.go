// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/wordler/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for game history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			method TEXT NOT NULL,
			start_word TEXT NOT NULL,
			solution TEXT NOT NULL,
			guesses INTEGER NOT NULL,
			max_guesses INTEGER NOT NULL,
			won INTEGER NOT NULL,
			word_count INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS game_turns (
			game_id INTEGER NOT NULL,
			turn INTEGER NOT NULL,
			guess TEXT NOT NULL,
			pattern TEXT NOT NULL,
			remaining INTEGER NOT NULL,
			PRIMARY KEY (game_id, turn)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_ended_at ON games(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_games_solution ON games(solution);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertGame stores a finished game and its turns.
func (s *Store) InsertGame(ctx context.Context, game model.GameRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	won := 0
	if game.Won {
		won = 1
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO games (started_at, ended_at, mode, method, start_word, solution, guesses, max_guesses, won, word_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.StartedAt.Format(time.RFC3339Nano),
		game.EndedAt.Format(time.RFC3339Nano),
		game.Mode,
		game.Method,
		game.Start,
		game.Solution,
		game.Guesses,
		game.MaxGuesses,
		won,
		game.WordCount,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(game.Turns) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO game_turns (game_id, turn, guess, pattern, remaining)
			 VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, turn := range game.Turns {
			if _, err = stmt.ExecContext(ctx, id, i+1, turn.Guess, turn.Pattern, turn.Remaining); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func filterClauses(cfg model.StatsConfig) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Method != "" {
		clauses = append(clauses, "method = ?")
		args = append(args, cfg.Method)
	}
	if cfg.Mode != "" {
		clauses = append(clauses, "mode = ?")
		args = append(args, cfg.Mode)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	return strings.Join(clauses, " AND "), args
}

// ListGames returns game aggregates filtered by stats config, oldest first.
func (s *Store) ListGames(ctx context.Context, cfg model.StatsConfig) ([]model.GameAggregate, error) {
	where, args := filterClauses(cfg)
	query := fmt.Sprintf(`SELECT id, ended_at, mode, method, start_word, solution, guesses, max_guesses, won
		FROM games
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var games []model.GameAggregate
	for rows.Next() {
		var agg model.GameAggregate
		var endedAt string
		if err := rows.Scan(&agg.GameID, &endedAt, &agg.Mode, &agg.Method, &agg.Start, &agg.Solution, &agg.Guesses, &agg.MaxGuesses, &agg.Won); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		games = append(games, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

// ListTurns returns the turns of one game in order.
func (s *Store) ListTurns(ctx context.Context, gameID int64) ([]model.TurnRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT guess, pattern, remaining FROM game_turns WHERE game_id = ? ORDER BY turn ASC`, gameID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var turns []model.TurnRecord
	for rows.Next() {
		var turn model.TurnRecord
		if err := rows.Scan(&turn.Guess, &turn.Pattern, &turn.Remaining); err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return turns, nil
}

// GuessDistribution counts won games by number of guesses.
func (s *Store) GuessDistribution(ctx context.Context, cfg model.StatsConfig) (map[int]int, error) {
	where, args := filterClauses(cfg)
	query := fmt.Sprintf(`SELECT guesses, COUNT(*) FROM games
		WHERE %s AND won = 1
		GROUP BY guesses`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	dist := map[int]int{}
	for rows.Next() {
		var guesses, count int
		if err := rows.Scan(&guesses, &count); err != nil {
			return nil, err
		}
		dist[guesses] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dist, nil
}

// Word columns that can be aggregated.
const (
	BySolution = "solution"
	ByStart    = "start_word"
)

// ListWordAggregatesForGames aggregates games by solution or start word.
func (s *Store) ListWordAggregatesForGames(ctx context.Context, gameIDs []int64, column string) ([]model.WordAggregate, error) {
	if column != BySolution && column != ByStart {
		return nil, fmt.Errorf("unknown aggregate column %q", column)
	}
	if len(gameIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(gameIDs))
	args := make([]any, len(gameIDs))
	for i, id := range gameIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT %s, COUNT(*) AS games, SUM(won) AS wins, SUM(guesses) AS guesses_total
		FROM games
		WHERE id IN (%s) AND %s <> ''
		GROUP BY %s`, column, strings.Join(placeholders, ","), column, column)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.WordAggregate
	for rows.Next() {
		var agg model.WordAggregate
		if err := rows.Scan(&agg.Word, &agg.Games, &agg.Wins, &agg.GuessesTotal); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
