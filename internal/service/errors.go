package service

import (
	"errors"
	"fmt"
)

// --- Error Definitions ---
// All tracking errors cross the service boundary as values; nothing in this
// package panics past its own frame.
var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrBackendFailure         = errors.New("storage backend failure")
	ErrMigrationFailed        = errors.New("migration failed")
	ErrInvalidPagination      = errors.New("page and pageSize must be at least 1")
	ErrExportUnavailable      = errors.New("history export is not configured")
)

// ValidationError reports the first violated session rule. Field is a
// stable identifier the UI can map to a specific input; Reason is the
// human-readable message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
