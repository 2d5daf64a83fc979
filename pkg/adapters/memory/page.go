package memory

import (
	"context"
	"sync"

	"github.com/aretw0/autoquote/pkg/ports"
)

// DefaultAddedBuffer is the number of batches buffered per subscriber.
const DefaultAddedBuffer = 16

// Paragraph is an in-memory chat paragraph.
type Paragraph struct {
	mu     sync.RWMutex
	markup string
}

// NewParagraph creates a paragraph holding markup.
func NewParagraph(markup string) *Paragraph {
	return &Paragraph{markup: markup}
}

// HTML returns the current markup.
func (p *Paragraph) HTML() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.markup
}

// SetHTML replaces the markup.
func (p *Paragraph) SetHTML(markup string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.markup = markup
	return nil
}

type subscriber struct {
	ch   chan []ports.Paragraph
	done chan struct{}
}

// Page implements ports.Page in memory. Append plays the role of the host
// inserting new messages into the document.
type Page struct {
	mu         sync.RWMutex
	paragraphs []*Paragraph

	subMu  sync.Mutex
	subs   map[int]*subscriber
	nextID int
}

// NewPage creates a page with one paragraph per markup.
func NewPage(markups ...string) *Page {
	p := &Page{subs: make(map[int]*subscriber)}
	for _, m := range markups {
		p.paragraphs = append(p.paragraphs, NewParagraph(m))
	}
	return p
}

// Paragraphs returns every paragraph on the page.
func (p *Page) Paragraphs() []ports.Paragraph {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]ports.Paragraph, len(p.paragraphs))
	for i, para := range p.paragraphs {
		out[i] = para
	}
	return out
}

// Append adds paragraphs to the page and notifies every subscriber with one batch.
func (p *Page) Append(markups ...string) []*Paragraph {
	added := make([]*Paragraph, len(markups))
	batch := make([]ports.Paragraph, len(markups))
	for i, m := range markups {
		added[i] = NewParagraph(m)
		batch[i] = added[i]
	}

	p.mu.Lock()
	p.paragraphs = append(p.paragraphs, added...)
	p.mu.Unlock()

	p.subMu.Lock()
	defer p.subMu.Unlock()
	for _, s := range p.subs {
		select {
		case s.ch <- batch:
		case <-s.done:
		}
	}
	return added
}

// Added returns a channel receiving the paragraphs appended after the call.
func (p *Page) Added(ctx context.Context) <-chan []ports.Paragraph {
	s := &subscriber{
		ch:   make(chan []ports.Paragraph, DefaultAddedBuffer),
		done: make(chan struct{}),
	}

	p.subMu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = s
	p.subMu.Unlock()

	go func() {
		<-ctx.Done()
		close(s.done)

		p.subMu.Lock()
		delete(p.subs, id)
		p.subMu.Unlock()
		close(s.ch)
	}()

	return s.ch
}

// Subscribers returns the number of active Added channels.
func (p *Page) Subscribers() int {
	p.subMu.Lock()
	defer p.subMu.Unlock()
	return len(p.subs)
}
