package host

import (
	"context"
	"sync"

	"github.com/aretw0/autoquote/pkg/annotate"
	"github.com/aretw0/autoquote/pkg/domain"
	"github.com/aretw0/autoquote/pkg/ports"
)

// Decorator annotates the chat paragraphs of a page and keeps newly added
// paragraphs annotated while it observes.
type Decorator struct {
	page    ports.Page
	watcher *ScopedWatcher
	opts    options

	mu  sync.Mutex
	cfg annotate.Config
}

// NewDecorator creates a decorator for page.
func NewDecorator(page ports.Page, opts ...Option) *Decorator {
	return &Decorator{
		page:    page,
		watcher: NewScopedWatcher(),
		opts:    newOptions(opts),
	}
}

// Apply re-annotates every paragraph with cfg, removing earlier markers
// first so a color change replaces the previous one. It returns the number
// of paragraphs whose markup changed.
func (d *Decorator) Apply(cfg annotate.Config) int {
	d.mu.Lock()
	d.cfg = cfg
	d.mu.Unlock()

	n := d.each(d.page.Paragraphs(), "apply", func(markup string) string {
		return annotate.Annotate(annotate.Unannotate(markup), cfg)
	})
	d.opts.metrics.observeParagraphs("apply", string(cfg.Variant), n)
	return n
}

// Remove strips every marker from every paragraph.
func (d *Decorator) Remove() int {
	n := d.each(d.page.Paragraphs(), "remove", annotate.Unannotate)
	d.opts.metrics.observeParagraphs("remove", "", n)
	return n
}

// Observe annotates paragraphs added to the page from now on with cfg,
// replacing any previous observation.
func (d *Decorator) Observe(ctx context.Context, cfg annotate.Config) {
	d.mu.Lock()
	d.cfg = cfg
	d.mu.Unlock()

	d.watcher.Acquire(ctx, d.page, func(batch []ports.Paragraph) {
		n := d.each(batch, "observe", func(markup string) string {
			return annotate.Annotate(markup, cfg)
		})
		d.opts.metrics.observeParagraphs("observe", string(cfg.Variant), n)
	})
	d.opts.logger.Debug("observing added paragraphs", "variant", cfg.Variant)
}

// Observing reports whether added paragraphs are being annotated.
func (d *Decorator) Observing() bool {
	return d.watcher.Active()
}

// Stop ends the observation started by Observe.
func (d *Decorator) Stop() {
	d.watcher.Release()
}

// Start brings the page in line with s: annotate and observe when an
// annotation variant is enabled, otherwise do nothing.
func (d *Decorator) Start(ctx context.Context, s domain.Settings) {
	cfg, ok := s.AnnotationConfig()
	if !ok {
		return
	}
	// Observe first so a paragraph added during Apply is not missed.
	d.Observe(ctx, cfg)
	d.Apply(cfg)
}

// Update reacts to a settings change. Changes that do not touch the
// annotation leave the page alone; otherwise the page is reannotated with
// the new setup, or cleaned and unobserved when annotation was turned off.
func (d *Decorator) Update(ctx context.Context, old, updated domain.Settings) {
	diff := domain.Diff(old, updated)
	if !diff.AffectsAnnotation() {
		return
	}

	cfg, ok := updated.AnnotationConfig()
	if !ok {
		d.Stop()
		n := d.Remove()
		d.opts.logger.Info("annotation disabled", "paragraphs", n)
		return
	}

	d.Observe(ctx, cfg)
	n := d.Apply(cfg)
	d.opts.logger.Info("annotation updated", "variant", cfg.Variant, "paragraphs", n)
}

// Config returns the setup of the last Apply or Observe.
func (d *Decorator) Config() annotate.Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg
}

// each rewrites every paragraph through fn. Failures are logged and skipped.
func (d *Decorator) each(paragraphs []ports.Paragraph, op string, fn func(string) string) int {
	changed := 0
	for _, p := range paragraphs {
		before := p.HTML()
		after := fn(before)
		if after == before {
			continue
		}
		if err := p.SetHTML(after); err != nil {
			d.opts.metrics.observeFailure(op)
			d.opts.logger.Warn("failed to update paragraph", "op", op, "err", err)
			continue
		}
		changed++
	}
	return changed
}
