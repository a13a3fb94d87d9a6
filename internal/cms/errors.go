package cms

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/daniilsolovey/municipal-portal/internal/db"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrConflict           = db.ErrConflict
)

// ValidationError carries per-field messages keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " " + e.Fields[k]
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

func notFound(entity string, id int) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
}

// Message returns the text shown to the user for err. Backend failures surface their message
// unchanged.
func Message(err error) string {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return "please correct the highlighted fields"
	case errors.Is(err, ErrInvalidCredentials):
		return ErrInvalidCredentials.Error()
	case errors.Is(err, ErrConflict):
		return "a record with the same unique value already exists"
	}

	return err.Error()
}
