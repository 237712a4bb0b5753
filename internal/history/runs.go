package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	StatusRunning = "running"
	StatusOK      = "ok"
	StatusFailed  = "failed"
)

// Run is one recorded build invocation.
type Run struct {
	ID         string
	Version    string
	Plan       string
	StartedAt  time.Time
	FinishedAt time.Time
	Status     string
	Error      string
	Artifacts  int
}

// Duration is zero for runs that never finished.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Artifact is one output written by a run.
type Artifact struct {
	Output    string
	Kind      string
	Fragments int
	Bytes     int64
	SHA256    string
}

// Fixed width so that stored timestamps sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// ErrRunNotFound is returned for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// StartRun records a new run and returns its ID.
func (l *Ledger) StartRun(ctx context.Context, version, plan string) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(timeFormat)
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO runs (id, version, plan, started_at, status) VALUES (?, ?, ?, ?, ?)`,
		id, version, plan, now, StatusRunning)
	if err != nil {
		return "", fmt.Errorf("start run: %w", err)
	}
	return id, nil
}

// RecordArtifact attaches an artifact to a run.
func (l *Ledger) RecordArtifact(ctx context.Context, runID string, a Artifact) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO artifacts (run_id, output, kind, fragments, bytes, sha256) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, a.Output, a.Kind, a.Fragments, a.Bytes, a.SHA256)
	if err != nil {
		return fmt.Errorf("record artifact %s: %w", a.Output, err)
	}
	return nil
}

// FinishRun marks a run as done. A nil runErr means success.
func (l *Ledger) FinishRun(ctx context.Context, runID string, runErr error) error {
	status, msg := StatusOK, ""
	if runErr != nil {
		status, msg = StatusFailed, runErr.Error()
	}
	now := time.Now().UTC().Format(timeFormat)
	res, err := l.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, status = ?, error = ? WHERE id = ?`,
		now, status, msg, runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("finish run %s: %w", runID, ErrRunNotFound)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := l.db.QueryContext(ctx, `
SELECT r.id, r.version, r.plan, r.started_at, r.finished_at, r.status, r.error,
       (SELECT COUNT(*) FROM artifacts a WHERE a.run_id = r.id)
FROM runs r
ORDER BY r.started_at DESC, r.rowid DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Latest returns the newest run with the given status.
func (l *Ledger) Latest(ctx context.Context, status string) (Run, error) {
	row := l.db.QueryRowContext(ctx, `
SELECT r.id, r.version, r.plan, r.started_at, r.finished_at, r.status, r.error,
       (SELECT COUNT(*) FROM artifacts a WHERE a.run_id = r.id)
FROM runs r WHERE r.status = ?
ORDER BY r.started_at DESC, r.rowid DESC
LIMIT 1`, status)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("no %s run: %w", status, ErrRunNotFound)
	}
	return r, err
}

// Get returns one run by ID.
func (l *Ledger) Get(ctx context.Context, id string) (Run, error) {
	row := l.db.QueryRowContext(ctx, `
SELECT r.id, r.version, r.plan, r.started_at, r.finished_at, r.status, r.error,
       (SELECT COUNT(*) FROM artifacts a WHERE a.run_id = r.id)
FROM runs r WHERE r.id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}
	return r, err
}

// Artifacts lists the artifacts of a run in the order they were recorded.
func (l *Ledger) Artifacts(ctx context.Context, runID string) ([]Artifact, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT output, kind, fragments, bytes, sha256 FROM artifacts WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query artifacts: %w", err)
	}
	defer rows.Close()

	var out []Artifact
	for rows.Next() {
		var a Artifact
		if err := rows.Scan(&a.Output, &a.Kind, &a.Fragments, &a.Bytes, &a.SHA256); err != nil {
			return nil, fmt.Errorf("scan artifact: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var r Run
	var started, finished string
	if err := s.Scan(&r.ID, &r.Version, &r.Plan, &started, &finished, &r.Status, &r.Error, &r.Artifacts); err != nil {
		return Run{}, err
	}
	r.StartedAt, _ = time.Parse(timeFormat, started)
	if finished != "" {
		r.FinishedAt, _ = time.Parse(timeFormat, finished)
	}
	return r, nil
}
