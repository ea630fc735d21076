package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite" // Register sqlite driver
)

//go:embed migrations/001_initial.sql
var schema string

// DB wraps the standard handle so callers keep the database/sql API.
type DB struct {
	*sql.DB
}

// Open opens the market database at dsn, creating it if needed, and applies
// the schema. The store sink writes rows one at a time from a single batch
// run, so the pool is capped at one connection; that also keeps ":memory:"
// databases coherent, since each sqlite connection would otherwise get its
// own empty in-memory database.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := configure(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &DB{db}, nil
}

func configure(db *sql.DB) error {
	// WAL keeps the file readable while a run is writing to it; the busy
	// timeout covers a reader holding the database when the run starts.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("exec %s: %w", pragma, err)
		}
	}
	return nil
}
