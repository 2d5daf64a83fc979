package bunt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/autoquote/pkg/domain"
	"github.com/tidwall/buntdb"
)

// DefaultPrefix namespaces the keys written by the store.
const DefaultPrefix = "autoquote:settings:"

// Store implements ports.SettingsStore on an embedded buntdb database.
type Store struct {
	db     *buntdb.DB
	prefix string
	owned  bool
}

// Open opens (or creates) the database file at path; ":memory:" keeps it in memory.
func Open(path string) (*Store, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb at %s: %w", path, err)
	}
	return &Store{db: db, prefix: DefaultPrefix, owned: true}, nil
}

// New wraps an already opened database. Close leaves it open.
func New(db *buntdb.DB) *Store {
	return &Store{db: db, prefix: DefaultPrefix}
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

// Save persists the blob as JSON.
func (s *Store) Save(ctx context.Context, name string, blob map[string]any) error {
	data, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	err = s.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(s.key(name), string(data), nil)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save to buntdb: %w", err)
	}
	return nil
}

// Load retrieves the blob.
func (s *Store) Load(ctx context.Context, name string) (map[string]any, error) {
	var val string
	err := s.db.View(func(tx *buntdb.Tx) error {
		var err error
		val, err = tx.Get(s.key(name))
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return nil, domain.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from buntdb: %w", err)
	}

	blob := make(map[string]any)
	if err := json.Unmarshal([]byte(val), &blob); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSettings, err)
	}
	return blob, nil
}

// Delete removes the blob.
func (s *Store) Delete(ctx context.Context, name string) error {
	err := s.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(s.key(name))
		return err
	})
	// deleting a nonexistent key is not considered an error
	if err != nil && !errors.Is(err, buntdb.ErrNotFound) {
		return fmt.Errorf("failed to delete from buntdb: %w", err)
	}
	return nil
}

// List returns the stored names in key order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	names := []string{}
	err := s.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendGreaterOrEqual("", s.prefix, func(key, _ string) bool {
			name, ok := strings.CutPrefix(key, s.prefix)
			if !ok {
				return false
			}
			names = append(names, name)
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return names, nil
}

// Close closes the database if the store opened it.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}
