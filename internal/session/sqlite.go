package session

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteBackend stores records in a single kv table, the terminal-client
// stand-in for browser local storage.
type SQLiteBackend struct {
	db *sql.DB
	mu sync.Mutex
}

func OpenSQLite(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	b := &SQLiteBackend{db: db}
	if err := b.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

func (b *SQLiteBackend) initSchema() error {
	_, err := b.db.Exec(`
CREATE TABLE IF NOT EXISTS local_state (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`)
	if err != nil {
		return fmt.Errorf("init state schema: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Get(key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var value string
	err := b.db.QueryRow(`SELECT value FROM local_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read state record: %w", err)
	}
	return value, true, nil
}

func (b *SQLiteBackend) Set(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.db.Exec(`
INSERT INTO local_state (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("write state record: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.db.Exec(`DELETE FROM local_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete state record: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
