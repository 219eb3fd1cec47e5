// Package apperr defines the error kinds surfaced to API callers.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindMissingField     Kind = "missing_field"
	KindInvalidReference Kind = "invalid_reference"
	KindInvalidTimestamp Kind = "invalid_timestamp"
	KindInvalidInterval  Kind = "invalid_interval"
	KindConflictDetected Kind = "conflict_detected"
	KindDuplicateName    Kind = "duplicate_name"
	KindNotFound         Kind = "not_found"
	KindNoFields         Kind = "no_fields"
)

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrMissingField     = &Error{Kind: KindMissingField}
	ErrInvalidReference = &Error{Kind: KindInvalidReference}
	ErrInvalidTimestamp = &Error{Kind: KindInvalidTimestamp}
	ErrInvalidInterval  = &Error{Kind: KindInvalidInterval}
	ErrConflictDetected = &Error{Kind: KindConflictDetected}
	ErrDuplicateName    = &Error{Kind: KindDuplicateName}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrNoFields         = &Error{Kind: KindNoFields}
)

// Error is a classified failure with a message meant for the caller.
type Error struct {
	Kind    Kind
	Message string
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// KindOf returns the kind of the first *Error in err's chain, or "" when err
// is unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
