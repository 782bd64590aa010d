package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a single-row lookup yields no row, or more
	// than one row where exactly one was expected.
	ErrNotFound = errors.New("entity not found")

	// ErrConcurrency is returned when a write is rejected because the stored
	// row no longer matches the version the caller read.
	ErrConcurrency = errors.New("concurrency conflict")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")
)

// FieldFailure describes one violated validation rule.
type FieldFailure struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ValidationError carries every failing rule of a rejected request.
type ValidationError struct {
	Failures []FieldFailure
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		if f.Param != "" {
			parts = append(parts, fmt.Sprintf("%s failed on '%s=%s'", f.Field, f.Rule, f.Param))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed on '%s'", f.Field, f.Rule))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NotFound wraps ErrNotFound with the kind of entity and the key that was looked up.
func NotFound(kind string, key interface{}) error {
	return fmt.Errorf("%s %v: %w", kind, key, ErrNotFound)
}
