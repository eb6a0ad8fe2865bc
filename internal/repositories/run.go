// package repositories provides the persistence layer for sort run history.
package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"lxsort/internal/shared"
)

// SortRun is one recorded sort operation.
type SortRun struct {
	ID           string
	PlaylistName string
	OrderFile    string
	Matched      int
	Unmatched    int
	Duplicates   int
	Leftover     int
	DryRun       bool
	CreatedAt    time.Time
}

// RunRepository handles CRUD operations for the runs table.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository with the given database connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new [SortRun] with a generated ID and timestamp.
func (r *RunRepository) Create(run *SortRun) error {
	if run.PlaylistName == "" {
		return fmt.Errorf("validation failed: playlist name is required")
	}

	if run.ID == "" {
		run.ID = shared.GenerateID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO runs (id, playlist_name, order_file, matched, unmatched, duplicates, leftover, dry_run, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		run.ID,
		run.PlaylistName,
		run.OrderFile,
		run.Matched,
		run.Unmatched,
		run.Duplicates,
		run.Leftover,
		run.DryRun,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

// Get retrieves a run by ID.
func (r *RunRepository) Get(id string) (*SortRun, error) {
	query := `
		SELECT id, playlist_name, order_file, matched, unmatched, duplicates, leftover, dry_run, created_at
		FROM runs
		WHERE id = ?
	`
	return r.scanOne(r.db.QueryRow(query, id))
}

// List retrieves the most recent runs, newest first, capped at limit.
func (r *RunRepository) List(limit int) ([]*SortRun, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, playlist_name, order_file, matched, unmatched, duplicates, leftover, dry_run, created_at
		FROM runs
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*SortRun
	for rows.Next() {
		run, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// Delete removes a run by ID.
func (r *RunRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run not found: %s", id)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *RunRepository) scanOne(row *sql.Row) (*SortRun, error) {
	run, err := r.scanRow(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found")
	}
	return run, err
}

func (r *RunRepository) scanRow(row rowScanner) (*SortRun, error) {
	var run SortRun
	err := row.Scan(
		&run.ID,
		&run.PlaylistName,
		&run.OrderFile,
		&run.Matched,
		&run.Unmatched,
		&run.Duplicates,
		&run.Leftover,
		&run.DryRun,
		&run.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	return &run, nil
}
