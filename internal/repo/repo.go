// Package repo holds the record-access primitives. Every method works
// through the *gorm.DB handle a unit of work hands it and never manages
// transactions on its own.
package repo

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// AccessError wraps any low-level record-access failure. Stores catch it and
// reclassify it into their per-operation errors.
type AccessError struct {
	Op  string
	Err error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("record access %s: %v", e.Op, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

func accessErr(op string, err error) error {
	return &AccessError{Op: op, Err: err}
}

// IsConflict reports whether err is a referential-integrity violation, i.e.
// the row is still referenced by another table. The message checks cover the
// sqlite and postgres drivers, which do not both translate into
// gorm.ErrForeignKeyViolated.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "violates foreign key constraint") ||
		strings.Contains(msg, "SQLSTATE 23503")
}

// IsDuplicate reports whether err is a unique-constraint violation.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
