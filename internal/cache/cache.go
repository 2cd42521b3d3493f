package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/leakgate/leakgate/internal/types"
)

// Entry pairs the hash of a file's reconstructed added content with the
// findings produced for it. Fragments are already redacted, so persisting
// them is safe.
type Entry struct {
	Hash     string          `json:"hash"`
	Findings []types.Finding `json:"findings"`
}

type DB struct {
	// Path from the diff -> scan result for that content
	Entries map[string]Entry `json:"entries"`
}

func defaultPath(root string) string {
	// Prefer storing cache under .git to avoid accidental commits
	// Fall back to repo root if .git does not exist
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "leakgate_cache.json")
	}
	return filepath.Join(root, ".leakgate_cache.json")
}

func Load(root string) (DB, error) {
	var db DB
	b, err := os.ReadFile(defaultPath(root))
	if err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if err := json.Unmarshal(b, &db); err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string]Entry{}
	}
	return db, nil
}

func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	b, _ := json.MarshalIndent(db, "", "  ")
	return os.WriteFile(defaultPath(root), b, 0o644)
}
