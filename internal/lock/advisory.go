// Package lock provides MySQL advisory locks that keep two loads from
// writing the same database at once.
package lock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrLockTimeout is returned when another session holds the lock.
var ErrLockTimeout = errors.New("lock acquisition timed out")

// Timeout values for Acquire, in seconds.
const (
	// TimeoutImmediate fails at once if the lock is taken.
	TimeoutImmediate = 0
	// TimeoutShort is the default for detecting a concurrent load.
	TimeoutShort = 1
	// TimeoutInfinite waits until the lock is free. MySQL treats any
	// negative value as infinite.
	TimeoutInfinite = -1
)

// AdvisoryLock is a named MySQL lock taken with GET_LOCK(). MySQL ties the
// lock to a session, so the lock pins one connection from the pool until it
// is released.
type AdvisoryLock struct {
	db   *sql.DB
	conn *sql.Conn
	name string
}

// NewAdvisoryLock creates a lock with the given name. Nothing is acquired
// until Acquire is called.
func NewAdvisoryLock(db *sql.DB, name string) *AdvisoryLock {
	return &AdvisoryLock{db: db, name: name}
}

// LoadLockName returns "godatagen:load:{database}" with every character
// outside [A-Za-z0-9_-] replaced by an underscore.
func LoadLockName(database string) string {
	sanitized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, database)
	return "godatagen:load:" + sanitized
}

// NewLoadLock creates the lock guarding loads into database.
func NewLoadLock(db *sql.DB, database string) *AdvisoryLock {
	return NewAdvisoryLock(db, LoadLockName(database))
}

// Acquire tries to take the lock, waiting up to timeoutSeconds. It reports
// false without error when another session holds the lock.
//
// GET_LOCK() returns 1 when obtained, 0 on timeout and NULL on error.
func (a *AdvisoryLock) Acquire(ctx context.Context, timeoutSeconds int) (bool, error) {
	if a.conn != nil {
		return true, nil
	}

	conn, err := a.db.Conn(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to reserve connection for lock %q: %w", a.name, err)
	}

	var result sql.NullInt64
	if err := conn.QueryRowContext(ctx, "SELECT GET_LOCK(?, ?)", a.name, timeoutSeconds).Scan(&result); err != nil {
		conn.Close()
		return false, fmt.Errorf("failed to execute GET_LOCK: %w", err)
	}
	if !result.Valid {
		conn.Close()
		return false, fmt.Errorf("GET_LOCK returned NULL for lock %q (possible database error)", a.name)
	}

	switch result.Int64 {
	case 1:
		a.conn = conn
		return true, nil
	case 0:
		conn.Close()
		return false, nil
	default:
		conn.Close()
		return false, fmt.Errorf("unexpected GET_LOCK return value: %d", result.Int64)
	}
}

// Release gives the lock back and returns its connection to the pool. It
// reports false when the lock was not held.
//
// RELEASE_LOCK() returns 1 when released, 0 when another session owns the
// lock and NULL when no such lock exists.
func (a *AdvisoryLock) Release(ctx context.Context) (bool, error) {
	if a.conn == nil {
		return false, nil
	}
	conn := a.conn
	a.conn = nil
	defer conn.Close()

	var result sql.NullInt64
	if err := conn.QueryRowContext(ctx, "SELECT RELEASE_LOCK(?)", a.name).Scan(&result); err != nil {
		return false, fmt.Errorf("failed to execute RELEASE_LOCK: %w", err)
	}
	if !result.Valid {
		return false, fmt.Errorf("RELEASE_LOCK returned NULL for lock %q (lock did not exist)", a.name)
	}
	return result.Int64 == 1, nil
}

// IsHeld reports whether this instance holds the lock.
func (a *AdvisoryLock) IsHeld() bool {
	return a.conn != nil
}

// Name returns the name of the lock.
func (a *AdvisoryLock) Name() string {
	return a.name
}

// WithLock runs fn while holding the lock and releases it afterwards, also
// when fn panics. It returns ErrLockTimeout if the lock is held elsewhere.
func (a *AdvisoryLock) WithLock(ctx context.Context, timeoutSeconds int, fn func() error) error {
	acquired, err := a.Acquire(ctx, timeoutSeconds)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		return fmt.Errorf("%w: lock %q is held by another session", ErrLockTimeout, a.name)
	}

	defer func() {
		// fn may have been cancelled through ctx; release on a fresh context
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = a.Release(releaseCtx)
	}()

	return fn()
}
