package host_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/autoquote/pkg/adapters/memory"
	"github.com/aretw0/autoquote/pkg/host"
	"github.com/aretw0/autoquote/pkg/ports"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	mu  sync.Mutex
	got []string
}

func (r *recorder) record(batch []ports.Paragraph) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range batch {
		r.got = append(r.got, p.HTML())
	}
}

func (r *recorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.got...)
}

func TestScopedWatcher_AcquireRelease(t *testing.T) {
	page := memory.NewPage()
	w := host.NewScopedWatcher()
	assert.False(t, w.Active())

	rec := &recorder{}
	w.Acquire(context.Background(), page, rec.record)
	assert.True(t, w.Active())
	assert.Equal(t, 1, page.Subscribers())

	page.Append("a")
	assert.Eventually(t, func() bool { return len(rec.seen()) == 1 }, time.Second, 5*time.Millisecond)

	w.Release()
	assert.False(t, w.Active())
	assert.Eventually(t, func() bool { return page.Subscribers() == 0 }, time.Second, 5*time.Millisecond)

	page.Append("b")
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, []string{"a"}, rec.seen())

	assert.NotPanics(t, w.Release, "releasing twice is fine")
}

func TestScopedWatcher_ReplacesPrevious(t *testing.T) {
	page := memory.NewPage()
	w := host.NewScopedWatcher()
	defer w.Release()

	first, second := &recorder{}, &recorder{}
	w.Acquire(context.Background(), page, first.record)
	w.Acquire(context.Background(), page, second.record)

	assert.Eventually(t, func() bool { return page.Subscribers() == 1 }, time.Second, 5*time.Millisecond)

	page.Append("x")
	assert.Eventually(t, func() bool { return len(second.seen()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Empty(t, first.seen())
}

func TestScopedWatcher_ParentContext(t *testing.T) {
	page := memory.NewPage()
	w := host.NewScopedWatcher()

	ctx, cancel := context.WithCancel(context.Background())
	w.Acquire(ctx, page, func([]ports.Paragraph) {})
	cancel()

	assert.Eventually(t, func() bool { return !w.Active() }, time.Second, 5*time.Millisecond)
	w.Release()
}
