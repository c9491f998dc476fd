package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maquinex/import-service/internal/types"
)

// RunStore records one audit row per submit attempt. The import pipeline
// itself is stateless; runs exist so operators can answer "what was uploaded
// when, and what did the server say".
type RunStore struct {
	pool *pgxpool.Pool
}

// NewRunStore creates a run store over the given pool.
func NewRunStore(pool *pgxpool.Pool) *RunStore {
	return &RunStore{pool: pool}
}

// Schema is the DDL for the import_runs table, applied by deploy tooling
// and by the integration tests.
const Schema = `
CREATE TABLE IF NOT EXISTS import_runs (
	id           TEXT PRIMARY KEY,
	filename     TEXT NOT NULL,
	status       TEXT NOT NULL,
	total_rows   INTEGER NOT NULL DEFAULT 0,
	inserted     INTEGER NOT NULL DEFAULT 0,
	duplicates   INTEGER NOT NULL DEFAULT 0,
	error_count  INTEGER NOT NULL DEFAULT 0,
	started_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	completed_at TIMESTAMPTZ
)`

// CreateRun inserts a running audit record and returns its ID.
func (s *RunStore) CreateRun(ctx context.Context, filename string, totalRows int) (string, error) {
	id := uuid.NewString()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO import_runs (id, filename, status, total_rows, started_at)
		VALUES ($1, $2, $3, $4, NOW())
	`, id, filename, types.RunStatusRunning, totalRows)
	if err != nil {
		return "", fmt.Errorf("failed to create import run: %w", err)
	}
	return id, nil
}

// CompleteRun finalizes a run with the server-reported summary.
func (s *RunStore) CompleteRun(ctx context.Context, id string, status types.ImportRunStatus, result *types.UploadResult) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE import_runs
		SET status = $2, inserted = $3, duplicates = $4, error_count = $5,
		    completed_at = NOW()
		WHERE id = $1
	`, id, status, result.Inserted, result.Duplicates, len(result.Errors))
	if err != nil {
		return fmt.Errorf("failed to complete import run: %w", err)
	}
	return nil
}

// FailRun marks a run failed or rejected with the given error count.
func (s *RunStore) FailRun(ctx context.Context, id string, status types.ImportRunStatus, errorCount int) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE import_runs
		SET status = $2, error_count = $3, completed_at = NOW()
		WHERE id = $1
	`, id, status, errorCount)
	if err != nil {
		return fmt.Errorf("failed to mark import run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *RunStore) ListRuns(ctx context.Context, limit int) ([]types.ImportRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, filename, status, total_rows, inserted, duplicates,
		       error_count, started_at, completed_at
		FROM import_runs
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list import runs: %w", err)
	}
	defer rows.Close()

	var runs []types.ImportRun
	for rows.Next() {
		var run types.ImportRun
		if err := rows.Scan(
			&run.ID, &run.Filename, &run.Status, &run.TotalRows,
			&run.Inserted, &run.Duplicates, &run.ErrorCount,
			&run.StartedAt, &run.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan import run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
