package ports

import (
	"context"
)

// SettingsStore defines the interface for the host key-value settings blob.
// Blobs are opaque: stores keep every key they are given, known or not.
type SettingsStore interface {
	// Save persists the blob for a given extension name.
	Save(ctx context.Context, name string, blob map[string]any) error

	// Load retrieves the blob for a given extension name.
	// Returns domain.ErrSettingsNotFound if nothing was saved yet.
	Load(ctx context.Context, name string) (map[string]any, error)

	// Delete removes the blob for a given extension name.
	Delete(ctx context.Context, name string) error

	// List returns the names of every stored blob.
	List(ctx context.Context) ([]string, error)
}
