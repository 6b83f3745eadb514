package pipeline

import (
	"context"
	"sync"
)

// Mailbox is an unbounded FIFO. Push never blocks, so the UI loop can hand
// off work without waiting on the consumer.
type Mailbox[T any] struct {
	mu     sync.Mutex
	items  []T
	notify chan struct{}
}

// NewMailbox creates an empty mailbox
func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{notify: make(chan struct{}, 1)}
}

// Push appends v
func (m *Mailbox[T]) Push(v T) {
	m.mu.Lock()
	m.items = append(m.items, v)
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
}

// Drain removes and returns everything queued, oldest first
func (m *Mailbox[T]) Drain() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.items
	m.items = nil
	return items
}

// Len reports the number of queued items
func (m *Mailbox[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Wait blocks until something is queued or ctx ends
func (m *Mailbox[T]) Wait(ctx context.Context) bool {
	for {
		if m.Len() > 0 {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-m.notify:
		}
	}
}
