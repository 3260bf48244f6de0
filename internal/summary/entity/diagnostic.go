package entity

import (
	"fmt"
	"time"
)

// Diagnostic describes why an input file contributed no users.
type Diagnostic struct {
	Time time.Time
	Kind DiagnosticKind
	File string
	Err  error
}

// Message renders the human readable line written to the error log.
func (d Diagnostic) Message() string {
	switch d.Kind {
	case DiagnosticInvalidFormat:
		return fmt.Sprintf("Invalid file format: %s", d.File)
	case DiagnosticReadFailed:
		if d.Err != nil {
			return fmt.Sprintf("Failed to read file: %s (%v)", d.File, d.Err)
		}
		return fmt.Sprintf("Failed to read file: %s", d.File)
	case DiagnosticInvalidJSON:
		return fmt.Sprintf("Invalid JSON in file: %s", d.File)
	case DiagnosticNotAnArray:
		return fmt.Sprintf("File %s does not contain an array", d.File)
	case DiagnosticNoValidUsers:
		return fmt.Sprintf("No valid users found in file: %s", d.File)
	default:
		return fmt.Sprintf("Unknown problem with file: %s", d.File)
	}
}

// Status maps the diagnostic to the per-file status reported in metrics.
func (d Diagnostic) Status() FileStatus {
	if d.Kind == DiagnosticInvalidFormat {
		return FileStatusRejected
	}
	return FileStatusFailed
}
