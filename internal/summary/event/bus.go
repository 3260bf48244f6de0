package event

import (
	"errors"
	"sync"

	"github.com/officialforloop/summary-report/internal/summary/entity"
)

var (
	ErrBusClosed = errors.New("event bus is closed")
	ErrBusFull   = errors.New("event bus is full")
)

// Bus is a buffered in-process channel of diagnostics.
type Bus struct {
	mu     sync.RWMutex
	closed bool
	ch     chan entity.Diagnostic
}

func NewBus(buffer int) *Bus {
	if buffer < 1 {
		buffer = 1
	}

	return &Bus{
		ch: make(chan entity.Diagnostic, buffer),
	}
}

// Publish enqueues a diagnostic without waiting. When the buffer is full the
// diagnostic is dropped and ErrBusFull is returned.
func (b *Bus) Publish(diag entity.Diagnostic) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	select {
	case b.ch <- diag:
		return nil
	default:
		return ErrBusFull
	}
}

func (b *Bus) Subscribe() <-chan entity.Diagnostic {
	return b.ch
}

func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	close(b.ch)
}
