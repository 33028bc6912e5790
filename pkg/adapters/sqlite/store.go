package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/unify/pkg/domain"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS solutions (
		id          TEXT PRIMARY KEY,
		problem_key TEXT NOT NULL,
		unified     INTEGER NOT NULL,
		created_at  INTEGER NOT NULL,
		body        TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS solutions_problem_key ON solutions (problem_key)`,
}

// Store implements ports.SolutionStore on a SQLite database.
// The full solution is kept as JSON; a few columns are lifted out for querying.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
// Use ":memory:" for a private in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// One connection: an in-memory database exists per connection, and SQLite
	// serializes writers anyway.
	db.SetMaxOpenConns(1)

	s, err := New(context.Background(), db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing database handle and ensures the schema.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("failed to create solutions table: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Save persists the solution, replacing a previous one with the same ID.
func (s *Store) Save(ctx context.Context, solution *domain.Solution) error {
	if solution.ID == "" {
		return fmt.Errorf("solution ID cannot be empty")
	}

	body, err := json.Marshal(solution)
	if err != nil {
		return fmt.Errorf("failed to marshal solution: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO solutions (id, problem_key, unified, created_at, body)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			problem_key = excluded.problem_key,
			unified = excluded.unified,
			created_at = excluded.created_at,
			body = excluded.body`,
		solution.ID, solution.Key, solution.Unified, solution.CreatedAt.UnixNano(), string(body),
	)
	if err != nil {
		return fmt.Errorf("failed to save solution: %w", err)
	}
	return nil
}

// Load retrieves a solution by ID.
func (s *Store) Load(ctx context.Context, id string) (*domain.Solution, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM solutions WHERE id = ?`, id).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSolutionNotFound
		}
		return nil, fmt.Errorf("failed to load solution: %w", err)
	}

	var solution domain.Solution
	if err := json.Unmarshal([]byte(body), &solution); err != nil {
		return nil, fmt.Errorf("failed to unmarshal solution: %w", err)
	}
	return &solution, nil
}

// Delete removes a solution.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM solutions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete solution: %w", err)
	}
	return nil
}

// List returns all solution IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	return s.ids(ctx, `SELECT id FROM solutions ORDER BY id`)
}

// ByKey returns the IDs of the solutions of one problem key, newest first.
func (s *Store) ByKey(ctx context.Context, key string) ([]string, error) {
	return s.ids(ctx, `SELECT id FROM solutions WHERE problem_key = ? ORDER BY created_at DESC, id`, key)
}

// Prune deletes solutions created before cutoff and returns how many were removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM solutions WHERE created_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to prune solutions: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) ids(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list solutions: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan solution id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
