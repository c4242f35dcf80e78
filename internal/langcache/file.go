package langcache

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/channellang/channel-lang/internal/langdetect"
)

// File is a JSON-backed cache. The whole map lives in memory and every Set
// writes it back atomically (temp file + rename), so a killed run never
// leaves a truncated file behind.
type File struct {
	path string

	mu sync.Mutex
	m  map[string]langdetect.CacheEntry
}

// OpenFile loads the cache at path, or starts empty when the file is absent.
// A corrupt file is logged and treated as empty rather than aborting the run.
func OpenFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("langcache: empty file path")
	}
	c := &File{path: path, m: make(map[string]langdetect.CacheEntry)}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("langcache: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &c.m); err != nil {
		log.Printf("langcache: %s is corrupt, starting empty: %v", path, err)
		c.m = make(map[string]langdetect.CacheEntry)
	}
	return c, nil
}

func (c *File) Get(domain string) (langdetect.CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[domain]
	return e, ok
}

func (c *File) Set(domain string, e langdetect.CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[domain] = e
	if err := c.saveLocked(); err != nil {
		log.Printf("langcache: save %s: %v", c.path, err)
	}
}

// Len reports the number of cached domains.
func (c *File) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}

func (c *File) saveLocked() error {
	data, err := json.MarshalIndent(c.m, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(filepath.Clean(c.path))
	tmp, err := os.CreateTemp(dir, ".langcache-*.json.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		os.Remove(tmpName)
		if writeErr != nil {
			return fmt.Errorf("write: %w", writeErr)
		}
		return fmt.Errorf("close: %w", closeErr)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
