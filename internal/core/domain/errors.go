package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error kinds. Every error returned by the core wraps exactly one of these,
// so callers can classify with errors.Is regardless of the concrete cause.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrQuestionNotFound     = fmt.Errorf("question %w", ErrNotFound)
	ErrAnswerNotFound       = fmt.Errorf("answer %w", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("notification %w", ErrNotFound)

	ErrUserExists      = fmt.Errorf("%w: user already exists", ErrConflict)
	ErrDuplicateAnswer = fmt.Errorf("%w: you have already answered this question", ErrConflict)
	ErrQuestionClosed  = fmt.Errorf("%w: cannot answer a closed question", ErrConflict)

	ErrSelfVote         = fmt.Errorf("%w: cannot vote on your own content", ErrForbidden)
	ErrSelfAnswer       = fmt.Errorf("%w: cannot answer your own question", ErrForbidden)
	ErrNotAuthor        = fmt.Errorf("%w: only the author can do this", ErrForbidden)
	ErrNotQuestionOwner = fmt.Errorf("%w: only the question owner can accept answers", ErrForbidden)
	ErrNotRecipient     = fmt.Errorf("%w: not the recipient of this notification", ErrForbidden)
	ErrAdminProtected   = fmt.Errorf("%w: admin users cannot be banned or deleted", ErrForbidden)
	ErrBanned           = fmt.Errorf("%w: account is banned", ErrForbidden)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
)

// ValidationError reports per-field input problems. It unwraps to ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Add records a field message and returns the receiver for chaining.
func (e *ValidationError) Add(field, msg string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
	return e
}

// OrNil returns nil when no field has been recorded.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ErrorKind is the machine-readable classification surfaced to API clients.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "not_found"
	KindForbidden    ErrorKind = "forbidden"
	KindValidation   ErrorKind = "validation_failed"
	KindConflict     ErrorKind = "conflict"
	KindUnauthorized ErrorKind = "unauthorized"
	KindUnexpected   ErrorKind = "unexpected"
)

// KindOf classifies err. Anything not wrapping a known kind is unexpected.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	default:
		return KindUnexpected
	}
}
