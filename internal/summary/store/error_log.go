package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/officialforloop/summary-report/internal/summary/entity"
)

// ErrorLog appends one timestamped line per diagnostic to a plain text file.
type ErrorLog struct {
	mu   sync.Mutex
	path string
}

func NewErrorLog(path string) *ErrorLog {
	return &ErrorLog{path: path}
}

// Append writes "<RFC3339Nano UTC timestamp> - <message>" followed by a newline.
// Each line goes out in a single write call on an O_APPEND descriptor.
func (l *ErrorLog) Append(ctx context.Context, diag entity.Diagnostic) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ts := diag.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	line := fmt.Sprintf("%s - %s\n", ts.UTC().Format(time.RFC3339Nano), diag.Message())

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create error log directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open error log: %w", err)
	}

	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("append error log: %w", err)
	}

	return f.Close()
}
