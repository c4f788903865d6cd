// Package mapping persists per-account classification mappings and loads
// historical trend maps from spreadsheets.
package mapping

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/insightdelivered/statement-ledger/internal/models"
)

// Store keeps one JSON file per account identity under Dir, named
// <storage key>_mapping.json. Saves always replace the whole file; there
// is no merging and no concurrent-writer protection, so the last writer
// wins. Colliding storage keys (see models.AccountIdentity.StorageKey)
// overwrite each other, a documented limitation.
type Store struct {
	Dir string
}

// NewStore returns a store rooted at dir ("." if empty).
func NewStore(dir string) *Store {
	if dir == "" {
		dir = "."
	}
	return &Store{Dir: dir}
}

func (s *Store) path(identity models.AccountIdentity) string {
	return filepath.Join(s.Dir, identity.StorageKey()+"_mapping.json")
}

// Load reads the mapping set for an identity. A missing file is the
// normal first-run condition and yields an empty set, not an error.
func (s *Store) Load(identity models.AccountIdentity) (models.MappingSet, error) {
	data, err := os.ReadFile(s.path(identity))
	if os.IsNotExist(err) {
		return models.MappingSet{}, nil
	}
	if err != nil {
		return models.MappingSet{}, fmt.Errorf("read mapping file: %w", err)
	}

	var set models.MappingSet
	if err := json.Unmarshal(data, &set); err != nil {
		return models.MappingSet{}, fmt.Errorf("decode mapping file %q: %w", s.path(identity), err)
	}
	return set, nil
}

// Save overwrites the identity's mapping file with the given set.
func (s *Store) Save(identity models.AccountIdentity, set models.MappingSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode mapping set: %w", err)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create mappings directory: %w", err)
	}
	if err := os.WriteFile(s.path(identity), data, 0o644); err != nil {
		return fmt.Errorf("write mapping file: %w", err)
	}
	return nil
}
