package database

import (
	"testing"
	"time"
)

func TestOpen_InMemory(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) error: %v", err)
	}
	defer db.Close()

	var name string
	err = db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='peer_history'",
	).Scan(&name)
	if err != nil {
		t.Errorf("table peer_history not found: %v", err)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	// Running migrate a second time must not error.
	if err := migrate(db); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
}

func TestCleanup_PrunesOldRows(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	insert := `INSERT INTO peer_history (config, public_key, timestamp, rx_bytes, tx_bytes, handshake)
		VALUES ('wg0', 'pub', ?, 1, 2, 3)`
	if _, err := db.Exec(insert, now.Add(-48*time.Hour).Unix()); err != nil {
		t.Fatalf("insert old row: %v", err)
	}
	if _, err := db.Exec(insert, now.Unix()); err != nil {
		t.Fatalf("insert fresh row: %v", err)
	}

	if err := cleanupBefore(db, now, 24*time.Hour); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM peer_history").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 remaining row, got %d", count)
	}
}
