package record

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStorageCorrupt     = errors.New("stored collection is corrupted")
)

// ConflictError indicates a uniqueness constraint violation on `Field`.
type ConflictError struct {
	Singular string
	Field    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("a %s with this %s already exists", e.Singular, e.Field)
}

// NotFoundError wraps ErrNotFound with the kind name for user-facing messages.
type NotFoundError struct {
	Singular string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Singular)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
