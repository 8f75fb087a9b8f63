package service

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// SessionLock grants exclusive edit rights to the project. Every read of a
// snapshot and every write goes through it, so one operation finishes before
// the next starts.
type SessionLock struct {
	sem *semaphore.Weighted
}

// NewSessionLock creates an unlocked SessionLock.
func NewSessionLock() *SessionLock {
	return &SessionLock{sem: semaphore.NewWeighted(1)}
}

// Do runs fn while holding the lock. Waiting stops when ctx is done.
func (l *SessionLock) Do(ctx context.Context, fn func() error) error {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("failed to acquire session lock: %w", err)
	}
	defer l.sem.Release(1)

	return fn()
}

// withTx runs fn inside a database transaction, committing when fn succeeds
// and rolling back otherwise.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
