package event

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/officialforloop/summary-report/internal/summary/entity"
)

// Writer persists a single diagnostic, typically to the error log file.
type Writer interface {
	Append(ctx context.Context, diag entity.Diagnostic) error
}

type ConsumerConfig struct {
	MaxRetries  int
	BaseBackoff time.Duration
}

// DiagnosticConsumer drains the bus into a Writer on a single goroutine so
// lines land in the log in publish order.
type DiagnosticConsumer struct {
	bus         *Bus
	writer      Writer
	maxRetries  int
	baseBackoff time.Duration
	wg          sync.WaitGroup
}

func NewDiagnosticConsumer(bus *Bus, writer Writer, cfg ConsumerConfig) *DiagnosticConsumer {
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = 100 * time.Millisecond
	}

	return &DiagnosticConsumer{
		bus:         bus,
		writer:      writer,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
}

func (c *DiagnosticConsumer) Start() {
	c.wg.Add(1)
	go c.worker()
}

// Stop closes the bus and waits until every queued diagnostic is written
// or ctx expires.
func (c *DiagnosticConsumer) Stop(ctx context.Context) error {
	if c.bus != nil {
		c.bus.Close()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *DiagnosticConsumer) worker() {
	defer c.wg.Done()

	for diag := range c.bus.Subscribe() {
		c.write(diag)
	}
}

func (c *DiagnosticConsumer) write(diag entity.Diagnostic) {
	if c.writer == nil {
		return
	}

	backoff := c.baseBackoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err := c.writer.Append(context.Background(), diag)
		if err == nil {
			return
		}

		if attempt == c.maxRetries {
			slog.Error("failed to write diagnostic after retries", "file", diag.File, "kind", diag.Kind, "error", err)
			return
		}

		if !sleepBackoff(backoff) {
			return
		}
		backoff *= 2
	}
}

func sleepBackoff(d time.Duration) bool {
	if d <= 0 {
		return false
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	<-timer.C
	return true
}
