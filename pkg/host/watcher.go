package host

import (
	"context"
	"sync"

	"github.com/aretw0/autoquote/pkg/ports"
)

// ScopedWatcher owns at most one subscription to a page's added paragraphs.
// Acquiring a new subscription releases the previous one first.
type ScopedWatcher struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScopedWatcher creates an idle watcher.
func NewScopedWatcher() *ScopedWatcher {
	return &ScopedWatcher{}
}

// Acquire starts delivering batches added to page to fn until Release, the
// next Acquire, or ctx is done. fn runs on the watcher goroutine and must not
// call Acquire or Release.
func (w *ScopedWatcher) Acquire(ctx context.Context, page ports.Page, fn func([]ports.Paragraph)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.releaseLocked()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	added := page.Added(ctx)

	go func() {
		defer close(done)
		for batch := range added {
			fn(batch)
		}
	}()

	w.cancel = cancel
	w.done = done
}

// Release stops the current subscription and waits for its goroutine.
// Releasing an idle watcher does nothing.
func (w *ScopedWatcher) Release() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.releaseLocked()
}

func (w *ScopedWatcher) releaseLocked() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
	w.cancel = nil
	w.done = nil
}

// Active reports whether a subscription is still delivering.
func (w *ScopedWatcher) Active() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.done == nil {
		return false
	}
	select {
	case <-w.done:
		return false
	default:
		return true
	}
}
