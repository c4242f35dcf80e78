package langcache

import (
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite"

	"github.com/channellang/channel-lang/internal/langdetect"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS lang_cache (
	domain   TEXT PRIMARY KEY,
	language TEXT NOT NULL,
	source   TEXT NOT NULL,
	ts       INTEGER NOT NULL
);`

// SQLite is a sqlite-backed cache for datasets too large for a single JSON
// file. database/sql serializes access, so no extra locking here.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the cache database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("langcache: empty sqlite path")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("langcache: open %s: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("langcache: init schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (c *SQLite) Get(domain string) (langdetect.CacheEntry, bool) {
	var e langdetect.CacheEntry
	row := c.db.QueryRow(
		`SELECT language, source, ts FROM lang_cache WHERE domain = ?`, domain)
	switch err := row.Scan(&e.Language, &e.Source, &e.Timestamp); err {
	case nil:
		return e, true
	case sql.ErrNoRows:
		return langdetect.CacheEntry{}, false
	default:
		log.Printf("langcache: sqlite get %s: %v", domain, err)
		return langdetect.CacheEntry{}, false
	}
}

func (c *SQLite) Set(domain string, e langdetect.CacheEntry) {
	_, err := c.db.Exec(
		`INSERT INTO lang_cache (domain, language, source, ts) VALUES (?, ?, ?, ?)
		 ON CONFLICT(domain) DO UPDATE SET
		   language = excluded.language,
		   source   = excluded.source,
		   ts       = excluded.ts`,
		domain, e.Language, e.Source, e.Timestamp)
	if err != nil {
		log.Printf("langcache: sqlite set %s: %v", domain, err)
	}
}

// Len reports the number of cached domains.
func (c *SQLite) Len() int {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM lang_cache`).Scan(&n); err != nil {
		log.Printf("langcache: sqlite count: %v", err)
		return 0
	}
	return n
}

func (c *SQLite) Close() error {
	return c.db.Close()
}
