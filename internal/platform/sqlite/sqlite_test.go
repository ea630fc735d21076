package sqlite

import (
	"path/filepath"
	"testing"
)

func TestOpen_AppliesSchema(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'market_data'`).Scan(&name)
	if err != nil {
		t.Fatalf("expected market_data table: %v", err)
	}
}

func TestOpen_FileDSN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO market_data (symbol, source_url, captured_at) VALUES ('BBCA', 'u', 't')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_ = db.Close()

	// Reopening the same file must see the existing schema and data.
	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM market_data`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row after reopen, got %d", count)
	}
}
