package content

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ArtCache remembers converted ASCII art by image content hash so
// unchanged images are not decoded again on rebuild.
type ArtCache struct {
	db *sql.DB
}

const artSchema = `
CREATE TABLE IF NOT EXISTS ascii_art (
	key        TEXT PRIMARY KEY,
	art        TEXT NOT NULL,
	created_at INTEGER NOT NULL
);`

// OpenArtCache opens (or creates) the cache database at path
func OpenArtCache(path string) (*ArtCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	// Single connection: sqlite serializes writers anyway.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure cache: %w", err)
	}
	if _, err := db.Exec(artSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache schema: %w", err)
	}
	return &ArtCache{db: db}, nil
}

// Close releases the database
func (c *ArtCache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// ArtKey derives the cache key from image bytes and conversion options
func ArtKey(data []byte, width int, normalize bool) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%d:%t", hex.EncodeToString(sum[:]), width, normalize)
}

// Get returns cached art for key
func (c *ArtCache) Get(key string) (string, bool, error) {
	if c == nil {
		return "", false, nil
	}
	var art string
	err := c.db.QueryRow("SELECT art FROM ascii_art WHERE key = ?", key).Scan(&art)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query cache: %w", err)
	}
	return art, true, nil
}

// Put stores art under key, replacing any previous entry
func (c *ArtCache) Put(key, art string) error {
	if c == nil {
		return nil
	}
	_, err := c.db.Exec(
		"INSERT OR REPLACE INTO ascii_art (key, art, created_at) VALUES (?, ?, ?)",
		key, art, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

// Len returns the number of cached entries
func (c *ArtCache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM ascii_art").Scan(&n); err != nil {
		return 0, fmt.Errorf("count cache: %w", err)
	}
	return n, nil
}
