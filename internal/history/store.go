// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records scoring runs in a local SQLite database so decks
// can be compared across revisions.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/slide-scorer/pkg/types"
)

// DefaultDBPath is used when the history config names no database.
const DefaultDBPath = ".slide-scorer/history.db"

var (
	// ErrRunNotFound is returned by Get when no run matches.
	ErrRunNotFound = errors.New("run not found")

	// ErrAmbiguousID is returned by Get when an ID prefix matches several runs.
	ErrAmbiguousID = errors.New("ambiguous run ID prefix")
)

// Run is one recorded scoring run. Slides is only populated by Get.
type Run struct {
	ID           string             `json:"id" yaml:"id"`
	Deck         string             `json:"deck" yaml:"deck"`
	ScoredAt     time.Time          `json:"scored_at" yaml:"scored_at"`
	SlideCount   int                `json:"slide_count" yaml:"slide_count"`
	AverageScore float64            `json:"average_score" yaml:"average_score"`
	Slides       []types.SlideScore `json:"slides,omitempty" yaml:"slides,omitempty"`
}

// Store manages the history database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens or creates the history database and its schema.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			deck TEXT NOT NULL,
			scored_at TEXT NOT NULL,
			slide_count INTEGER NOT NULL,
			average_score REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS slide_scores (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			slide_number INTEGER NOT NULL,
			weighted REAL NOT NULL,
			details TEXT NOT NULL,
			PRIMARY KEY (run_id, slide_number)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_deck ON runs(deck)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores report as a new run and returns it.
func (s *Store) Record(ctx context.Context, report types.AggregateReport) (Run, error) {
	run := Run{
		ID:           uuid.NewString(),
		Deck:         report.Source,
		ScoredAt:     s.now().UTC().Truncate(time.Second),
		SlideCount:   len(report.SlideScores),
		AverageScore: report.AverageScore,
		Slides:       report.SlideScores,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, deck, scored_at, slide_count, average_score) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Deck, run.ScoredAt.Format(time.RFC3339), run.SlideCount, run.AverageScore,
	)
	if err != nil {
		return Run{}, fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO slide_scores (run_id, slide_number, weighted, details) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return Run{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, sc := range report.SlideScores {
		details, err := json.Marshal(sc.Report)
		if err != nil {
			return Run{}, fmt.Errorf("encoding slide %d: %w", sc.Number, err)
		}
		if _, err := stmt.ExecContext(ctx, run.ID, sc.Number, sc.Weighted, string(details)); err != nil {
			return Run{}, fmt.Errorf("inserting slide %d: %w", sc.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("committing run: %w", err)
	}
	return run, nil
}

// List returns recorded runs, newest first. A non-empty deck filters by
// source; limit <= 0 returns every run.
func (s *Store) List(ctx context.Context, deck string, limit int) ([]Run, error) {
	query := `SELECT id, deck, scored_at, slide_count, average_score FROM runs`
	var args []any
	if deck != "" {
		query += ` WHERE deck = ?`
		args = append(args, deck)
	}
	query += ` ORDER BY scored_at DESC, rowid DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get returns the run whose ID starts with idPrefix, including per-slide
// scores.
func (s *Store) Get(ctx context.Context, idPrefix string) (Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, deck, scored_at, slide_count, average_score FROM runs
		 WHERE substr(id, 1, length(?)) = ? LIMIT 2`, idPrefix, idPrefix)
	if err != nil {
		return Run{}, fmt.Errorf("querying run: %w", err)
	}
	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return Run{}, err
		}
		matches = append(matches, run)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Run{}, err
	}

	switch {
	case len(matches) == 0 || idPrefix == "":
		return Run{}, fmt.Errorf("%w: %q", ErrRunNotFound, idPrefix)
	case len(matches) > 1:
		return Run{}, fmt.Errorf("%w: %q", ErrAmbiguousID, idPrefix)
	}

	run := matches[0]
	run.Slides, err = s.slideScores(ctx, run.ID)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

func (s *Store) slideScores(ctx context.Context, runID string) ([]types.SlideScore, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slide_number, weighted, details FROM slide_scores WHERE run_id = ? ORDER BY slide_number`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying slide scores: %w", err)
	}
	defer rows.Close()

	var out []types.SlideScore
	for rows.Next() {
		var (
			sc      types.SlideScore
			details string
		)
		if err := rows.Scan(&sc.Number, &sc.Weighted, &details); err != nil {
			return nil, fmt.Errorf("scanning slide score: %w", err)
		}
		if err := json.Unmarshal([]byte(details), &sc.Report); err != nil {
			return nil, fmt.Errorf("decoding slide %d: %w", sc.Number, err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run      Run
		scoredAt string
	)
	if err := row.Scan(&run.ID, &run.Deck, &scoredAt, &run.SlideCount, &run.AverageScore); err != nil {
		return Run{}, fmt.Errorf("scanning run: %w", err)
	}
	t, err := time.Parse(time.RFC3339, scoredAt)
	if err != nil {
		return Run{}, fmt.Errorf("parsing run time %q: %w", scoredAt, err)
	}
	run.ScoredAt = t
	return run, nil
}
