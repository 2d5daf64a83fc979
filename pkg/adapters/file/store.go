package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/autoquote/pkg/domain"
	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// Format selects the on-disk encoding of a settings file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Store implements ports.SettingsStore using the local filesystem.
// It stores each blob as a YAML (default) or JSON file in a configured directory.
type Store struct {
	BasePath string
	Format   Format
}

// Option configures the Store.
type Option func(*Store)

// WithFormat sets the encoding used for new files.
func WithFormat(format Format) Option {
	return func(s *Store) {
		s.Format = format
	}
}

// NewStore creates a new Store with the given base path.
// If basePath is empty, it defaults to ".autoquote/settings".
func NewStore(basePath string, opts ...Option) *Store {
	if basePath == "" {
		basePath = filepath.Join(".autoquote", "settings")
	}
	s := &Store{BasePath: basePath, Format: FormatYAML}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// lockRetry is the polling interval while another process holds the lock.
const lockRetry = 10 * time.Millisecond

// lock takes the directory-wide write lock shared by every process using BasePath.
func (s *Store) lock(ctx context.Context) (*flock.Flock, error) {
	fl := flock.New(filepath.Join(s.BasePath, ".lock"))
	locked, err := fl.TryLockContext(ctx, lockRetry)
	if err != nil {
		return nil, fmt.Errorf("failed to lock settings directory: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("failed to lock settings directory: %s", s.BasePath)
	}
	return fl, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.BasePath, name+"."+string(s.Format))
}

// Save persists the blob to a file.
func (s *Store) Save(ctx context.Context, name string, blob map[string]any) error {
	if err := validName(name); err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure settings directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if s.Format == FormatJSON {
		data, err = json.MarshalIndent(blob, "", "  ")
	} else {
		data, err = yaml.Marshal(blob)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	fl, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer fl.Unlock()

	// Write then rename so a concurrent Load never sees a partial file.
	tmp := s.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp, s.path(name)); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}

// Load retrieves the blob from its file.
func (s *Store) Load(ctx context.Context, name string) (map[string]any, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	blob := make(map[string]any)
	if s.Format == FormatJSON {
		err = json.Unmarshal(data, &blob)
	} else {
		err = yaml.Unmarshal(data, &blob)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSettings, err)
	}
	return blob, nil
}

// Delete removes the settings file.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}

	if _, err := os.Stat(s.BasePath); os.IsNotExist(err) {
		return nil
	}
	fl, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer fl.Unlock()

	err = os.Remove(s.path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete settings file: %w", err)
	}
	return nil
}

// List returns the names of all stored blobs in the store format.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	ext := "." + string(s.Format)
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ext {
			names = append(names, strings.TrimSuffix(entry.Name(), ext))
		}
	}
	return names, nil
}

func validName(name string) error {
	if name == "" {
		return fmt.Errorf("settings name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid settings name %q", name)
	}
	return nil
}
