package memory

import (
	"context"
	"sync"

	"github.com/aretw0/autoquote/pkg/domain"
)

// Store implements ports.SettingsStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]map[string]any
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]map[string]any),
	}
}

// Save persists the blob in memory.
func (s *Store) Save(ctx context.Context, name string, blob map[string]any) error {
	// Copy to ensure isolation, similar to serialization
	copied := copyBlob(blob)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Load retrieves the blob from memory.
func (s *Store) Load(ctx context.Context, name string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.data[name]
	if !ok {
		return nil, domain.ErrSettingsNotFound
	}

	// Copy on read so caller can't mutate store state directly
	return copyBlob(blob), nil
}

// Delete removes the blob.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	return names, nil
}

func copyBlob(blob map[string]any) map[string]any {
	copied := make(map[string]any, len(blob))
	for k, v := range blob {
		copied[k] = v
	}
	return copied
}
