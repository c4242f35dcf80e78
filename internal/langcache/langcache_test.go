package langcache

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/channellang/channel-lang/internal/langdetect"
)

var _ langdetect.Cache = (*Memory)(nil)
var _ langdetect.Cache = (*File)(nil)
var _ langdetect.Cache = (*SQLite)(nil)

func TestMemory(t *testing.T) {
	c := NewMemory()
	if _, ok := c.Get("suntv.in"); ok {
		t.Fatal("empty cache reported a hit")
	}
	c.Set("suntv.in", langdetect.CacheEntry{Language: "ta", Source: "web", Timestamp: 1})
	e, ok := c.Get("suntv.in")
	if !ok || e.Language != "ta" || e.Source != "web" {
		t.Errorf("got %+v, %v", e, ok)
	}
	c.Set("suntv.in", langdetect.CacheEntry{Language: "ta", Source: "pattern", Timestamp: 2})
	if e, _ := c.Get("suntv.in"); e.Source != "pattern" {
		t.Errorf("overwrite lost: %+v", e)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestMemory_concurrent(t *testing.T) {
	c := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set("suntv.in", langdetect.CacheEntry{Language: "ta", Source: "web"})
				c.Get("suntv.in")
			}
		}()
	}
	wg.Wait()
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestFile_roundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	c, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	c.Set("suntv.in", langdetect.CacheEntry{Language: "ta", Source: "web", Timestamp: 42})
	c.Set("maatv.com", langdetect.CacheEntry{Language: "te", Source: "pattern", Timestamp: 43})

	// Reopen and check both entries survived.
	c2, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if c2.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c2.Len())
	}
	e, ok := c2.Get("suntv.in")
	if !ok || e.Language != "ta" || e.Source != "web" || e.Timestamp != 42 {
		t.Errorf("got %+v, %v", e, ok)
	}
}

func TestFile_missingStartsEmpty(t *testing.T) {
	c, err := OpenFile(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestFile_corruptStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0 after corrupt file", c.Len())
	}
	// Writes still work after recovery.
	c.Set("suntv.in", langdetect.CacheEntry{Language: "ta", Source: "web"})
	if _, ok := c.Get("suntv.in"); !ok {
		t.Error("set after recovery did not stick")
	}
}

func TestFile_emptyPathRejected(t *testing.T) {
	if _, err := OpenFile(""); err == nil {
		t.Error("OpenFile(\"\") = nil error")
	}
}

func TestSQLite_roundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	c, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if _, ok := c.Get("suntv.in"); ok {
		t.Fatal("empty db reported a hit")
	}
	c.Set("suntv.in", langdetect.CacheEntry{Language: "ta", Source: "web", Timestamp: 42})
	c.Set("suntv.in", langdetect.CacheEntry{Language: "ta", Source: "name-explicit", Timestamp: 43})
	e, ok := c.Get("suntv.in")
	if !ok || e.Source != "name-explicit" || e.Timestamp != 43 {
		t.Errorf("upsert: got %+v, %v", e, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopen and read back.
	c2, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer c2.Close()
	e, ok = c2.Get("suntv.in")
	if !ok || e.Language != "ta" {
		t.Errorf("after reopen: got %+v, %v", e, ok)
	}
}
