package fswatch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/aretw0/autoquote/internal/logging"
	"github.com/aretw0/autoquote/pkg/ports"
	"github.com/fsnotify/fsnotify"
)

const (
	// Ext is the extension of the files treated as paragraphs.
	Ext = ".html"

	// DefaultSettle is how long new files are collected before a batch is delivered.
	DefaultSettle = 100 * time.Millisecond
)

// Paragraph is a chat paragraph stored in its own file.
type Paragraph struct {
	path string
}

// Path returns the file backing the paragraph.
func (p *Paragraph) Path() string {
	return p.path
}

// HTML returns the file content, or an empty string when it cannot be read.
func (p *Paragraph) HTML() string {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return ""
	}
	return string(data)
}

// SetHTML rewrites the file in place.
func (p *Paragraph) SetHTML(markup string) error {
	if err := os.WriteFile(p.path, []byte(markup), 0644); err != nil {
		return fmt.Errorf("failed to write paragraph %s: %w", p.path, err)
	}
	return nil
}

// Page implements ports.Page over a directory: every *.html file is one
// paragraph and files created while watching are reported by Added.
type Page struct {
	dir    string
	settle time.Duration
	logger *slog.Logger
}

// Option configures the Page.
type Option func(*Page)

// WithSettle sets how long creations are collected into one batch.
func WithSettle(d time.Duration) Option {
	return func(p *Page) {
		if d > 0 {
			p.settle = d
		}
	}
}

// WithLogger sets the logger for watch errors.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Page) {
		p.logger = logger
	}
}

// NewPage creates a page over dir, which must exist.
func NewPage(dir string, opts ...Option) (*Page, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open page directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("page path %s is not a directory", dir)
	}

	p := &Page{
		dir:    dir,
		settle: DefaultSettle,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Paragraphs returns the current paragraphs sorted by file name.
func (p *Page) Paragraphs() []ports.Paragraph {
	paths := p.scan()
	out := make([]ports.Paragraph, len(paths))
	for i, path := range paths {
		out[i] = &Paragraph{path: path}
	}
	return out
}

func (p *Page) scan() []string {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		p.logger.Warn("failed to read page directory", "dir", p.dir, "err", err)
		return nil
	}

	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == Ext {
			paths = append(paths, filepath.Join(p.dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths
}

// Added watches the directory and delivers files created after the call.
// Rewrites of existing files are not reported. When the watcher cannot
// start the error is logged and the returned channel is already closed.
func (p *Page) Added(ctx context.Context) <-chan []ports.Paragraph {
	out := make(chan []ports.Paragraph, 1)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Error("failed to create watcher", "err", err)
		close(out)
		return out
	}
	if err := watcher.Add(p.dir); err != nil {
		p.logger.Error("failed to watch page directory", "dir", p.dir, "err", err)
		_ = watcher.Close()
		close(out)
		return out
	}

	// Snapshot after Add so a file created in between is reported rather than lost.
	known := make(map[string]struct{})
	for _, path := range p.scan() {
		known[path] = struct{}{}
	}

	go p.watch(ctx, watcher, known, out)
	return out
}

func (p *Page) watch(ctx context.Context, watcher *fsnotify.Watcher, known map[string]struct{}, out chan<- []ports.Paragraph) {
	defer close(out)
	defer watcher.Close()

	settle := time.NewTimer(p.settle)
	settle.Stop()
	armed := false
	var pending []ports.Paragraph

	for {
		select {
		case <-ctx.Done():
			return

		case evt, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Write) {
				continue
			}
			if filepath.Ext(evt.Name) != Ext {
				continue
			}
			if _, seen := known[evt.Name]; seen {
				continue
			}
			if info, err := os.Stat(evt.Name); err != nil || info.IsDir() {
				continue
			}
			known[evt.Name] = struct{}{}
			pending = append(pending, &Paragraph{path: evt.Name})
			if !armed {
				settle.Reset(p.settle)
				armed = true
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Warn("page watcher error", "dir", p.dir, "err", err)

		case <-settle.C:
			armed = false
			batch := pending
			pending = nil
			select {
			case out <- batch:
			case <-ctx.Done():
				return
			}
		}
	}
}
