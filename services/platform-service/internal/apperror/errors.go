// Package apperror defines the error categories surfaced by provisioning and
// tenant resolution. Callers match them with errors.Is against the sentinel
// values and errors.As against the typed errors.
package apperror

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrConflict       = errors.New("resource already exists")
	ErrPersistence    = errors.New("persistence failure")
	ErrNotFound       = errors.New("resource not found")
	ErrTenantNotFound = errors.New("tenant not found")
)

// ValidationError reports invalid input. Fields maps a field name to a
// readable message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(names, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConflictError reports a uniqueness violation on Field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConflict, e.Field)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// PersistenceError wraps a failed database operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersistence, e.Op, e.Err)
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Validation builds a ValidationError for a single field.
func Validation(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Conflict builds a ConflictError.
func Conflict(field string) error {
	return &ConflictError{Field: field}
}

// Persistence wraps err as a PersistenceError for op. A nil err stays nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
