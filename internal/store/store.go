package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"github.com/handiism/yamusic-downloader/internal/download"
	ioutils "github.com/handiism/yamusic-downloader/internal/io"
	"github.com/handiism/yamusic-downloader/internal/logging"
)

// Default timeout for database operations
const defaultTimeout = 5 * time.Second

// Store persists the history of download runs.
type Store struct {
	db *sql.DB
}

// Run is one recorded playlist run.
type Run struct {
	ID            string
	Reference     string
	PlaylistTitle string
	Succeeded     int
	Skipped       int
	Failed        int
	Error         string
	Started       time.Time
	Finished      time.Time
}

// TrackRecord is one per-track outcome of a recorded run.
type TrackRecord struct {
	RunID    string
	Position int
	TrackID  string
	Title    string
	Artist   string
	Outcome  string
	Path     string
	Detail   string
}

// Open opens (or creates) the history database at dbPath, creating the
// parent directory when it does not exist yet.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	// sqlite cannot create the database file in a missing directory.
	if err := ioutils.EnsureDir(filepath.Dir(dbPath)); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL mode keeps the web handlers readable while a run is writing.
	// busy_timeout helps prevent "database is locked" errors.
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=10000&_temp_store=MEMORY&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db}
	if err := s.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after initialization failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	logging.Info("History database ready at %s", dbPath)
	return s, nil
}

func (s *Store) initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		reference TEXT NOT NULL,
		playlist_title TEXT NOT NULL DEFAULT '',
		succeeded INTEGER NOT NULL DEFAULT 0,
		skipped INTEGER NOT NULL DEFAULT 0,
		failed INTEGER NOT NULL DEFAULT 0,
		error TEXT NOT NULL DEFAULT '',
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	CREATE TABLE IF NOT EXISTS run_tracks (
		run_id TEXT NOT NULL REFERENCES runs(id),
		position INTEGER NOT NULL,
		track_id TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		artist TEXT NOT NULL DEFAULT '',
		outcome TEXT NOT NULL,
		path TEXT NOT NULL DEFAULT '',
		detail TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, position)
	);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return err
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun records one run and its per-track outcomes in a single
// transaction, returning the run ID. Callers with an existing run
// identifier (the web front-end's progress id) pass it so the history row
// stays correlated with the run; an empty id gets a fresh one. summary may
// be nil for runs that aborted before any track was processed; runErr,
// when non-nil, is stored as the run's error text.
func (s *Store) SaveRun(ctx context.Context, id, reference string, summary *download.Summary, runErr error) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}

	run := Run{
		ID:        id,
		Reference: reference,
		Started:   time.Now(),
		Finished:  time.Now(),
	}
	if summary != nil {
		run.PlaylistTitle = summary.PlaylistTitle
		run.Succeeded = summary.Succeeded
		run.Skipped = summary.Skipped
		run.Failed = summary.Failed
		run.Started = summary.Started
		run.Finished = summary.Finished
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin save run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, reference, playlist_title, succeeded, skipped, failed, error, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Reference, run.PlaylistTitle,
		run.Succeeded, run.Skipped, run.Failed, run.Error,
		run.Started.Unix(), run.Finished.Unix())
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	if summary != nil {
		for i, outcome := range summary.Outcomes {
			detail := ""
			switch outcome.Kind {
			case download.OutcomeSkipped:
				detail = string(outcome.Reason)
			case download.OutcomeFailed:
				detail = fmt.Sprintf("%s: %v", outcome.ErrKind, outcome.Err)
			}

			_, err = tx.ExecContext(ctx,
				`INSERT INTO run_tracks (run_id, position, track_id, title, artist, outcome, path, detail)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				run.ID, i+1, outcome.Track.ID,
				outcome.Track.DisplayTitle(), outcome.Track.ArtistLine(),
				string(outcome.Kind), outcome.Path, detail)
			if err != nil {
				return "", fmt.Errorf("insert run track: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit save run: %w", err)
	}

	logging.Debug("saved run %s (%d outcomes)", run.ID, run.Succeeded+run.Skipped+run.Failed)
	return id, nil
}

// Runs returns the most recent runs, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, reference, playlist_title, succeeded, skipped, failed, error, started_at, finished_at
		 FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished int64
		if err := rows.Scan(&run.ID, &run.Reference, &run.PlaylistTitle,
			&run.Succeeded, &run.Skipped, &run.Failed, &run.Error,
			&started, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Started = time.Unix(started, 0)
		run.Finished = time.Unix(finished, 0)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunByID returns one run, or sql.ErrNoRows when it does not exist.
func (s *Store) RunByID(ctx context.Context, id string) (*Run, error) {
	var run Run
	var started, finished int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, reference, playlist_title, succeeded, skipped, failed, error, started_at, finished_at
		 FROM runs WHERE id = ?`, id).
		Scan(&run.ID, &run.Reference, &run.PlaylistTitle,
			&run.Succeeded, &run.Skipped, &run.Failed, &run.Error,
			&started, &finished)
	if err != nil {
		return nil, err
	}
	run.Started = time.Unix(started, 0)
	run.Finished = time.Unix(finished, 0)
	return &run, nil
}

// RunTracks returns the per-track records of one run in playlist order.
func (s *Store) RunTracks(ctx context.Context, runID string) ([]TrackRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, position, track_id, title, artist, outcome, path, detail
		 FROM run_tracks WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run tracks: %w", err)
	}
	defer rows.Close()

	var records []TrackRecord
	for rows.Next() {
		var rec TrackRecord
		if err := rows.Scan(&rec.RunID, &rec.Position, &rec.TrackID,
			&rec.Title, &rec.Artist, &rec.Outcome, &rec.Path, &rec.Detail); err != nil {
			return nil, fmt.Errorf("scan run track: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
