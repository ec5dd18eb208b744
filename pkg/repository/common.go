package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// ErrNotFound is returned when a feed or article does not exist
var ErrNotFound = errors.New("not found")

// recountUnreadSQL recomputes cached unread counters, callers append a WHERE clause when needed
const recountUnreadSQL = `UPDATE feeds SET unread_count = (
	SELECT COUNT(*) FROM articles WHERE articles.feed_id = feeds.id AND articles.is_read = 0)`

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	if e.err == nil {
		return "critical error"
	}
	return e.err.Error()
}

func (e *criticalError) Unwrap() error { return e.err }

// Is matches any criticalError, this is how repeater recognizes termination errors
func (e *criticalError) Is(target error) bool {
	_, ok := target.(*criticalError)
	return ok
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// withRetry runs a write, retrying with backoff while sqlite reports lock contention
func withRetry(ctx context.Context, op string, fn func() error) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		if err := fn(); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: err}
		}
		return nil
	}, &criticalError{})
	if err == nil {
		return nil
	}

	var ce *criticalError
	if errors.As(err, &ce) {
		err = ce.err
	}
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// notFound maps sql.ErrNoRows to ErrNotFound
func notFound(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// checkAffected returns ErrNotFound when an update touched nothing
func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
