// Package uow owns the transaction boundary: one Run call is one
// begin/commit-or-rollback cycle on a single pooled connection.
package uow

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ndmitriev/online-store/internal/logging"
)

// ConnectionError reports that a transaction could not be started at all,
// e.g. the pool is exhausted or the database is down.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("acquire unit of work: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps any failure raised inside a unit of work after the
// transaction was opened. The transaction has been rolled back by the time
// the caller sees it.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("unit of work failed: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

type UnitOfWork struct {
	db *gorm.DB
}

func New(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Run opens a transaction, executes work with it and commits on a nil return.
// On error the transaction is rolled back and the cause comes back wrapped in
// a PersistenceError. A rollback's own failure is logged and swallowed so the
// original error is never masked. Exactly one commit or one rollback happens
// per call.
func (u *UnitOfWork) Run(ctx context.Context, work func(tx *gorm.DB) error) error {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return &ConnectionError{Err: tx.Error}
	}

	committed := false
	defer func() {
		if r := recover(); r != nil {
			u.rollback(ctx, tx)
			panic(r)
		}
		if !committed {
			u.rollback(ctx, tx)
		}
	}()

	if err := work(tx); err != nil {
		return &PersistenceError{Err: err}
	}

	if err := tx.Commit().Error; err != nil {
		// The failed commit already finished the transaction; the deferred
		// rollback becomes a no-op on gorm's side.
		committed = true
		return &PersistenceError{Err: err}
	}
	committed = true
	return nil
}

func (u *UnitOfWork) rollback(ctx context.Context, tx *gorm.DB) {
	if err := tx.Rollback().Error; err != nil {
		logging.FromContext(ctx).Error("rollback failed", "error", err)
	}
}

// RunValue is the value-returning form of Run. The result of work is only
// handed back once the transaction committed.
func RunValue[T any](ctx context.Context, u *UnitOfWork, work func(tx *gorm.DB) (T, error)) (T, error) {
	var out T
	err := u.Run(ctx, func(tx *gorm.DB) error {
		v, err := work(tx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
