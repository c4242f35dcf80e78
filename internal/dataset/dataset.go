// Package dataset holds the channel dataset: the JSON file of channels the
// enrichment run reads, annotates with languages, and writes back.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/channellang/channel-lang/internal/langdetect"
)

// Channel is one channel record. Language is empty until an enrichment run
// assigns one; "unknown" means a run finished without a verdict.
type Channel struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	TVGID    string `json:"tvgId"`
	Language string `json:"language,omitempty"`

	// LanguageSource records which strategy assigned Language
	// (name-explicit, web, cached-*, pattern). Empty for hand-curated rows.
	LanguageSource string `json:"languageSource,omitempty"`
}

// NeedsLanguage reports whether an enrichment run should process c.
// "unknown" counts as needing work so later runs can retry with a warmer
// cache or better site availability.
func (c Channel) NeedsLanguage() bool {
	return c.Language == "" || c.Language == langdetect.Unknown
}

// Load reads a channel dataset from path.
func Load(path string) ([]Channel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset load: %w", err)
	}
	var channels []Channel
	if err := json.Unmarshal(data, &channels); err != nil {
		return nil, fmt.Errorf("dataset load %s: %w", path, err)
	}
	return channels, nil
}

// Save writes channels to path as JSON using temp-file-then-rename so readers
// never see a partially-written file.
func Save(path string, channels []Channel) error {
	data, err := json.MarshalIndent(channels, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(filepath.Clean(path))
	tmp, err := os.CreateTemp(dir, ".dataset-*.json.tmp")
	if err != nil {
		return fmt.Errorf("dataset save: create temp: %w", err)
	}
	tmpName := tmp.Name()
	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		os.Remove(tmpName)
		if writeErr != nil {
			return fmt.Errorf("dataset save: write: %w", writeErr)
		}
		return fmt.Errorf("dataset save: close: %w", closeErr)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("dataset save: rename: %w", err)
	}
	return nil
}

// SplitByLanguage writes one dataset file per language next to path, named
// <stem>.<code>.json (e.g. channels.ta.json). Channels without a language go
// into <stem>.unknown.json. Returns the per-language counts.
func SplitByLanguage(path string, channels []Channel) (map[string]int, error) {
	byLang := make(map[string][]Channel)
	for _, c := range channels {
		code := c.Language
		if code == "" {
			code = langdetect.Unknown
		}
		byLang[code] = append(byLang[code], c)
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	if ext == "" {
		ext = ".json"
	}

	codes := make([]string, 0, len(byLang))
	for code := range byLang {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	counts := make(map[string]int, len(byLang))
	for _, code := range codes {
		out := stem + "." + code + ext
		if err := Save(out, byLang[code]); err != nil {
			return counts, fmt.Errorf("split %s: %w", code, err)
		}
		counts[code] = len(byLang[code])
	}
	return counts, nil
}
