package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/registerwatch/registerscan/internal/model"
)

// dbFileName is the database file created inside the data directory.
const dbFileName = "registerscan.db"

// CrawlDB provides SQLite-based storage for crawl run history.
// It manages connection pooling and provides methods for persisting
// and querying runs.
//
// Design decision: We use a single database file for all runs rather
// than one file per run. Run-to-run comparison is the whole point of
// the history, and cross-file queries would defeat it.
type CrawlDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures CrawlDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a CrawlDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are
// created. If it is false and the database doesn't exist, an error is
// returned.
func Open(dbDir string, opts Options) (*CrawlDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &CrawlDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := cdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cdb, nil
}

// Close closes the database connection.
func (cdb *CrawlDB) Close() error {
	return cdb.db.Close()
}

// Path returns the database file path.
func (cdb *CrawlDB) Path() string {
	return cdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (cdb *CrawlDB) createTables() error {
	schema := `
	-- One row per crawl run with its headline counts
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_date TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		output_path TEXT,
		pages_fetched INTEGER NOT NULL,
		pages_skipped INTEGER NOT NULL,
		subjects INTEGER NOT NULL,
		interests INTEGER NOT NULL,
		fetch_failures INTEGER NOT NULL,
		gate_violations INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_run_date ON runs(run_date);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- Page visit log per run
	CREATE TABLE IF NOT EXISTS pages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		status_code INTEGER,
		content_hash TEXT,
		fetched_at DATETIME
	);

	CREATE INDEX IF NOT EXISTS idx_pages_run ON pages(run_id);
	CREATE INDEX IF NOT EXISTS idx_pages_url ON pages(url);

	-- Subject names emitted per run, for run-to-run comparison
	CREATE TABLE IF NOT EXISTS run_subjects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		full_name TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_run_subjects_run ON run_subjects(run_id);
	`

	_, err := cdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun persists a finished crawl run: the runs row, its page visit
// log and its subject names, in one transaction. Returns the new run's
// database ID.
func (cdb *CrawlDB) SaveRun(ctx context.Context, report *model.CrawlReport) (int64, error) {
	tx, err := cdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	result, err := tx.ExecContext(ctx, `
	INSERT INTO runs (run_date, started_at, finished_at, output_path,
		pages_fetched, pages_skipped, subjects, interests,
		fetch_failures, gate_violations)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunDate,
		report.StartedAt.UTC(),
		report.FinishedAt.UTC(),
		report.OutputPath,
		report.PagesFetched,
		report.PagesSkipped,
		report.Subjects,
		report.Interests,
		len(report.FetchFailures),
		len(report.GateViolations),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	pageStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO pages (run_id, url, status_code, content_hash, fetched_at)
	VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare page insert: %w", err)
	}
	defer pageStmt.Close()

	for _, visit := range report.Visits {
		if _, err := pageStmt.ExecContext(ctx,
			runID, visit.URL, visit.StatusCode, visit.ContentHash, visit.FetchedAt.UTC(),
		); err != nil {
			return 0, fmt.Errorf("failed to insert page visit: %w", err)
		}
	}

	subjectStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO run_subjects (run_id, full_name) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare subject insert: %w", err)
	}
	defer subjectStmt.Close()

	for _, name := range report.SubjectNames {
		if _, err := subjectStmt.ExecContext(ctx, runID, name); err != nil {
			return 0, fmt.Errorf("failed to insert run subject: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// RunSummary is one stored run's headline data.
type RunSummary struct {
	ID             int64
	RunDate        string
	StartedAt      time.Time
	FinishedAt     time.Time
	OutputPath     string
	PagesFetched   int
	PagesSkipped   int
	Subjects       int
	Interests      int
	FetchFailures  int
	GateViolations int
}

// RecentRuns returns up to limit stored runs, most recent first.
func (cdb *CrawlDB) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := cdb.db.QueryContext(ctx, `
	SELECT id, run_date, started_at, finished_at, output_path,
		pages_fetched, pages_skipped, subjects, interests,
		fetch_failures, gate_violations
	FROM runs
	ORDER BY started_at DESC, id DESC
	LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		if err := rows.Scan(
			&run.ID, &run.RunDate, &run.StartedAt, &run.FinishedAt, &run.OutputPath,
			&run.PagesFetched, &run.PagesSkipped, &run.Subjects, &run.Interests,
			&run.FetchFailures, &run.GateViolations,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// SubjectsForRun returns the subject names emitted by a stored run, in
// emission order.
func (cdb *CrawlDB) SubjectsForRun(ctx context.Context, runID int64) ([]string, error) {
	rows, err := cdb.db.QueryContext(ctx, `
	SELECT full_name FROM run_subjects WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run subjects: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan subject name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// PageHistory returns the stored visits of one URL across runs, most
// recent first. Content hash changes across rows indicate the page
// changed between runs.
func (cdb *CrawlDB) PageHistory(ctx context.Context, url string, limit int) ([]model.PageVisit, error) {
	rows, err := cdb.db.QueryContext(ctx, `
	SELECT url, status_code, content_hash, fetched_at
	FROM pages
	WHERE url = ?
	ORDER BY fetched_at DESC, id DESC
	LIMIT ?`, url, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query page history: %w", err)
	}
	defer rows.Close()

	var visits []model.PageVisit
	for rows.Next() {
		var visit model.PageVisit
		if err := rows.Scan(&visit.URL, &visit.StatusCode, &visit.ContentHash, &visit.FetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan page visit: %w", err)
		}
		visits = append(visits, visit)
	}

	return visits, rows.Err()
}
