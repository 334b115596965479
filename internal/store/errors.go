package store

import (
	"errors"
	"fmt"
)

// ErrNotFound marks operations that targeted a row that does not exist. It is
// always wrapped inside one of the typed operation errors below.
var ErrNotFound = errors.New("not found")

// CreationError reports a failed create, identified by the entity involved.
type CreationError struct {
	Entity string
	ID     string
	Err    error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("create %s %q: %v", e.Entity, e.ID, e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// RetrievalError reports a failed read.
type RetrievalError struct {
	Entity string
	ID     string
	Err    error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("get %s %q: %v", e.Entity, e.ID, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// UpdateError reports a failed update.
type UpdateError struct {
	Entity string
	ID     string
	Err    error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("update %s %q: %v", e.Entity, e.ID, e.Err)
}

func (e *UpdateError) Unwrap() error {
	return e.Err
}

// DeletionError reports a failed delete that was not a referential conflict.
type DeletionError struct {
	Entity string
	ID     string
	Err    error
}

func (e *DeletionError) Error() string {
	return fmt.Sprintf("delete %s %q: %v", e.Entity, e.ID, e.Err)
}

func (e *DeletionError) Unwrap() error {
	return e.Err
}

// ConflictError is the domain conflict surfaced by the persistence layer:
// the row is still referenced, so the write was refused and rolled back.
type ConflictError struct {
	Entity string
	ID     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q is still referenced and cannot be removed", e.Entity, e.ID)
}
