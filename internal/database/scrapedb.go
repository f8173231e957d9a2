package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/model"
)

// ScrapeDB provides SQLite-based storage for scrape run history.
//
// Design decision: We use a single database file for all sources rather
// than one file per source. This keeps cross-source queries (the history
// command's source list) trivial and simplifies backup.
type ScrapeDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ScrapeDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a ScrapeDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is
// returned; the history command uses this to fail cleanly instead of
// creating an empty database.
func Open(dbDir string, opts Options) (*ScrapeDB, error) {
	dbPath := filepath.Join(dbDir, "rmpscrape.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run a scrape first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses URI-style modes: rwc allows creation, rw
	// requires the file to exist.
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

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY errors from concurrent session saves.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &ScrapeDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close() //nolint:errcheck // Best effort cleanup
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close() //nolint:errcheck // Best effort cleanup
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sdb, nil
}

// Close closes the database connection.
func (sdb *ScrapeDB) Close() error {
	return sdb.db.Close()
}

// Path returns the path of the underlying database file.
func (sdb *ScrapeDB) Path() string {
	return sdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (sdb *ScrapeDB) createTables() error {
	schema := `
	-- One row per completed scrape session
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		remote_id INTEGER NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		record_count INTEGER NOT NULL,
		truncated INTEGER NOT NULL DEFAULT 0,
		warning_count INTEGER NOT NULL DEFAULT 0,
		duration_seconds REAL NOT NULL,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// Run is a stored scrape session summary.
type Run struct {
	ID           int64
	Source       string
	RemoteID     int
	Timestamp    time.Time
	RecordCount  int
	Truncated    bool
	WarningCount int
	Duration     time.Duration
}

// SaveRun stores a completed session.
func (sdb *ScrapeDB) SaveRun(ctx context.Context, result *model.SourceResult) (int64, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize result: %w", err)
	}

	query := `
	INSERT INTO runs (source, remote_id, record_count, truncated, warning_count, duration_seconds, result_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	res, err := sdb.db.ExecContext(ctx, query,
		result.Source,
		result.RemoteID,
		len(result.Records),
		boolToInt(result.Truncated),
		len(result.Warnings),
		result.Elapsed.Seconds(),
		string(resultJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return res.LastInsertId()
}

// History returns the most recent runs for a source, newest first.
// Pass limit <= 0 for no limit.
func (sdb *ScrapeDB) History(ctx context.Context, source string, limit int) ([]Run, error) {
	query := `
	SELECT id, source, remote_id, timestamp, record_count, truncated, warning_count, duration_seconds
	FROM runs
	WHERE source = ?
	ORDER BY timestamp DESC, id DESC
	`
	args := []any{source}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := sdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// AllRuns returns the most recent runs across all sources, newest first.
// Pass limit <= 0 for no limit.
func (sdb *ScrapeDB) AllRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
	SELECT id, source, remote_id, timestamp, record_count, truncated, warning_count, duration_seconds
	FROM runs
	ORDER BY timestamp DESC, id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := sdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// Sources returns the distinct source names present in the history.
func (sdb *ScrapeDB) Sources(ctx context.Context) ([]string, error) {
	rows, err := sdb.db.QueryContext(ctx, "SELECT DISTINCT source FROM runs ORDER BY source")
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

// LoadResult reconstructs the full stored result for a run.
func (sdb *ScrapeDB) LoadResult(ctx context.Context, runID int64) (*model.SourceResult, error) {
	var resultJSON string
	err := sdb.db.QueryRowContext(ctx,
		"SELECT result_json FROM runs WHERE id = ?", runID,
	).Scan(&resultJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", runID, err)
	}

	var result model.SourceResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to decode run %d: %w", runID, err)
	}
	return &result, nil
}

// scanRuns reads Run rows from a query result.
func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var (
			r         Run
			timestamp string
			truncated int
			seconds   float64
		)
		if err := rows.Scan(
			&r.ID,
			&r.Source,
			&r.RemoteID,
			&timestamp,
			&r.RecordCount,
			&truncated,
			&r.WarningCount,
			&seconds,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Timestamp = parseTimestamp(timestamp)
		r.Truncated = truncated != 0
		r.Duration = time.Duration(seconds * float64(time.Second))
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// parseTimestamp parses SQLite timestamps, which vary in format depending
// on how the value was written.
func parseTimestamp(s string) time.Time {
	formats := []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05Z",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// boolToInt converts a bool to the 0/1 representation SQLite stores.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
