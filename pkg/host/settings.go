package host

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aretw0/autoquote/pkg/domain"
	"github.com/aretw0/autoquote/pkg/ports"
)

// SettingsManager reads and writes the settings blob of one extension.
// Updates are read-modify-write and serialized within the process; keys
// the blob carries for other purposes are preserved.
type SettingsManager struct {
	store ports.SettingsStore
	opts  options
	mu    sync.Mutex
}

// NewSettingsManager creates a manager over store.
func NewSettingsManager(store ports.SettingsStore, opts ...Option) *SettingsManager {
	return &SettingsManager{store: store, opts: newOptions(opts)}
}

// Name returns the key the settings are stored under.
func (m *SettingsManager) Name() string {
	return m.opts.name
}

// Load returns the current snapshot. A store with no entry yields the defaults,
// and stored colors that cannot be used fall back to theirs.
func (m *SettingsManager) Load(ctx context.Context) (domain.Settings, error) {
	s, _, err := m.load(ctx)
	return s, err
}

func (m *SettingsManager) load(ctx context.Context) (domain.Settings, map[string]any, error) {
	blob, err := m.store.Load(ctx, m.opts.name)
	if errors.Is(err, domain.ErrSettingsNotFound) {
		return domain.DefaultSettings(), nil, nil
	}
	if err != nil {
		return domain.Settings{}, nil, fmt.Errorf("failed to load settings: %w", err)
	}

	s, reset, err := domain.DecodeStored(blob)
	if err != nil {
		return domain.Settings{}, nil, err
	}
	if len(reset) > 0 {
		m.opts.logger.Warn("invalid colors replaced by defaults", "name", m.opts.name, "keys", reset)
	}
	return s, blob, nil
}

// Update applies fn to the current snapshot and saves the result.
// It returns the snapshots before and after the change.
func (m *SettingsManager) Update(ctx context.Context, fn func(*domain.Settings) error) (old, updated domain.Settings, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, blob, err := m.load(ctx)
	if err != nil {
		return old, old, err
	}

	updated = old
	if err := fn(&updated); err != nil {
		return old, old, err
	}
	if err := updated.Validate(); err != nil {
		return old, old, err
	}

	if err := m.store.Save(ctx, m.opts.name, updated.Merge(blob)); err != nil {
		return old, old, fmt.Errorf("failed to save settings: %w", err)
	}

	if diff := domain.Diff(old, updated); !diff.IsEmpty() {
		m.opts.logger.Debug("settings updated", "name", m.opts.name, "diff", diff)
	}
	return old, updated, nil
}

// Set decodes the weakly typed key and value onto the current settings.
func (m *SettingsManager) Set(ctx context.Context, key string, value any) (old, updated domain.Settings, err error) {
	return m.Update(ctx, func(s *domain.Settings) error {
		blob := s.Encode()
		if _, ok := blob[key]; !ok {
			return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidSettings, key)
		}
		blob[key] = value
		next, err := domain.Decode(blob)
		if err != nil {
			return err
		}
		*s = next
		return nil
	})
}

// Toggle flips the enabled flag and returns the new state.
func (m *SettingsManager) Toggle(ctx context.Context) (bool, error) {
	_, updated, err := m.Update(ctx, func(s *domain.Settings) error {
		s.Enabled = !s.Enabled
		return nil
	})
	if err != nil {
		return false, err
	}
	m.opts.metrics.observeToggle(updated.Enabled)
	return updated.Enabled, nil
}

// Reset removes the stored settings so the defaults apply again.
func (m *SettingsManager) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx, m.opts.name); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	return nil
}
