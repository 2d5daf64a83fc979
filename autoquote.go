package autoquote

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/autoquote/internal/logging"
	"github.com/aretw0/autoquote/pkg/adapters/memory"
	"github.com/aretw0/autoquote/pkg/domain"
	"github.com/aretw0/autoquote/pkg/host"
	"github.com/aretw0/autoquote/pkg/ports"
)

// Extension is the high-level entry point: it rewrites submitted input and,
// when a page is attached, keeps its paragraphs decorated as settings change.
type Extension struct {
	store    ports.SettingsStore
	page     ports.Page
	logger   *slog.Logger
	metrics  *host.Metrics
	name     string
	debounce time.Duration

	settings  *host.SettingsManager
	composer  *host.Composer
	decorator *host.Decorator
	debouncer *host.Debouncer

	mu      sync.Mutex
	ctx     context.Context
	applied domain.Settings
	started bool
}

// Option defines a functional option for configuring the Extension.
type Option func(*Extension)

// WithStore sets where settings are kept. The default is an in-memory store.
func WithStore(store ports.SettingsStore) Option {
	return func(e *Extension) {
		e.store = store
	}
}

// WithPage attaches the page whose paragraphs get decorated.
func WithPage(page ports.Page) Option {
	return func(e *Extension) {
		e.page = page
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extension) {
		e.logger = logger
	}
}

// WithMetrics records activity in m.
func WithMetrics(m *host.Metrics) Option {
	return func(e *Extension) {
		e.metrics = m
	}
}

// WithName sets the key the settings are stored under.
func WithName(name string) Option {
	return func(e *Extension) {
		e.name = name
	}
}

// WithDebounce sets the delay applied to color changes.
func WithDebounce(d time.Duration) Option {
	return func(e *Extension) {
		e.debounce = d
	}
}

// New initializes an Extension.
func New(opts ...Option) *Extension {
	e := &Extension{
		name:     domain.ExtensionName,
		debounce: host.DefaultDebounce,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = memory.NewStore()
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}

	hostOpts := []host.Option{
		host.WithLogger(e.logger),
		host.WithMetrics(e.metrics),
		host.WithName(e.name),
	}
	e.settings = host.NewSettingsManager(e.store, hostOpts...)
	e.composer = host.NewComposer(e.settings, hostOpts...)
	if e.page != nil {
		e.decorator = host.NewDecorator(e.page, hostOpts...)
	}
	e.debouncer = host.NewDebouncer(e.debounce, e.sync)
	return e
}

// Submit handles a submit event of the chat input.
func (e *Extension) Submit(ctx context.Context, raw string) (host.Submission, error) {
	return e.composer.Submit(ctx, raw)
}

// Settings returns the current settings snapshot.
func (e *Extension) Settings(ctx context.Context) (domain.Settings, error) {
	return e.settings.Load(ctx)
}

// SettingsManager exposes the settings read-modify-write operations.
func (e *Extension) SettingsManager() *host.SettingsManager {
	return e.settings
}

// Metrics returns the metrics given with WithMetrics, or nil.
func (e *Extension) Metrics() *host.Metrics {
	return e.metrics
}

// Start decorates the attached page according to the stored settings and
// keeps decorating added paragraphs until ctx is done or Close is called.
func (e *Extension) Start(ctx context.Context) error {
	if e.decorator == nil {
		return fmt.Errorf("autoquote: no page attached")
	}
	s, err := e.settings.Load(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.ctx = ctx
	e.applied = s
	e.started = true
	e.mu.Unlock()

	e.decorator.Start(ctx, s)
	e.logger.Debug("extension started", "name", e.name)
	return nil
}

// Configure changes the settings. When a page is being decorated, color
// changes are applied after the debounce delay and everything else at once.
func (e *Extension) Configure(ctx context.Context, fn func(*domain.Settings) error) (domain.Settings, error) {
	old, updated, err := e.settings.Update(ctx, fn)
	if err != nil {
		return old, err
	}

	diff := domain.Diff(old, updated)
	if !diff.AffectsAnnotation() || !e.isStarted() {
		return updated, nil
	}

	if colorsOnly(diff) {
		e.debouncer.Trigger()
	} else {
		e.debouncer.Stop()
		e.sync()
	}
	return updated, nil
}

// Reload applies settings changed outside the Extension, e.g. by another process
// sharing the store. It does nothing before Start.
func (e *Extension) Reload() {
	e.sync()
}

// Flush applies a pending color change now.
func (e *Extension) Flush() bool {
	return e.debouncer.Flush()
}

// Close stops decorating and drops pending changes.
func (e *Extension) Close() {
	e.mu.Lock()
	e.started = false
	e.mu.Unlock()

	e.debouncer.Stop()
	if e.decorator != nil {
		e.decorator.Stop()
	}
}

func (e *Extension) isStarted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.started
}

// sync brings the page from the last applied settings to the stored ones.
func (e *Extension) sync() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return
	}

	latest, err := e.settings.Load(e.ctx)
	if err != nil {
		e.logger.Warn("failed to reload settings", "err", err)
		return
	}
	e.decorator.Update(e.ctx, e.applied, latest)
	e.applied = latest
}

func colorsOnly(diff domain.SettingsDiff) bool {
	for k := range diff {
		switch k {
		case domain.KeyHighlightNamesColor, domain.KeyMessageTextColor,
			domain.KeyMessageNamesColor, domain.KeyMessageQuotesColor:
		default:
			return false
		}
	}
	return true
}
