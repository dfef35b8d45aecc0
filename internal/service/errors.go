package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errors surfaced by services beyond the storage sentinels in model.
var (
	// ErrSelfDelete is returned when an administrator tries to delete
	// their own account.
	ErrSelfDelete = errors.New("users cannot delete their own account")
)

// ValidationError carries field-keyed messages for malformed input or an
// invariant violation. Handlers map it to a 400 response body.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = message
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
