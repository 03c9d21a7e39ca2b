package extension

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Progress status constants reported via ProgressEvent.
const (
	StatusStarting = "starting"
	StatusEnabled  = "enabled"
	StatusFailed   = "failed"
)

// ProgressEvent is emitted by the enabler for each requirement processed.
type ProgressEvent struct {
	Requirement Requirement
	Status      string
	Duration    time.Duration
	Error       error
}

// sqlExecFunc executes a single enable statement.
type sqlExecFunc func(ctx context.Context, sql string) error

// Enabler ensures a set of required extensions is registered with the
// database engine. Enabling is idempotent: an already-enabled extension
// is a no-op, not an error.
type Enabler struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
	onProgress  func(ProgressEvent)
	execSQL     sqlExecFunc
}

// Option configures an Enabler.
type Option func(*Enabler)

// WithLockTimeout sets a lock_timeout for each enable statement so the
// bootstrap fails fast instead of queueing behind long-running DDL.
func WithLockTimeout(d time.Duration) Option {
	return func(e *Enabler) { e.lockTimeout = d }
}

// WithProgressCallback sets a function called for each requirement processed.
func WithProgressCallback(fn func(ProgressEvent)) Option {
	return func(e *Enabler) { e.onProgress = fn }
}

// New creates an Enabler with the given pool and options.
func New(pool *pgxpool.Pool, opts ...Option) *Enabler {
	e := &Enabler{pool: pool}

	for _, opt := range opts {
		opt(e)
	}

	// Set the default after options are applied, so tests can override it.
	if e.execSQL == nil {
		e.execSQL = e.enableExtension
	}

	return e
}

// EnableAll processes requirements in declared order, failing fast on the
// first rejected enable request. Re-running against an already-bootstrapped
// database converges to the same end state without error.
func (e *Enabler) EnableAll(ctx context.Context, reqs []Requirement) error {
	for _, r := range reqs {
		if err := e.enableOne(ctx, r); err != nil {
			return err
		}
	}

	return nil
}

// enableOne builds and verifies the enable statement, executes it, and
// fires progress events.
func (e *Enabler) enableOne(ctx context.Context, r Requirement) error {
	sql, err := enableStatement(r.Name)
	if err != nil {
		return fmt.Errorf("extension %q: %w", r.Name, err)
	}

	e.fireProgress(ProgressEvent{Requirement: r, Status: StatusStarting})

	start := time.Now()
	execErr := e.execSQL(ctx, sql)
	duration := time.Since(start)

	if execErr != nil {
		e.fireProgress(ProgressEvent{
			Requirement: r,
			Status:      StatusFailed,
			Duration:    duration,
			Error:       execErr,
		})

		return fmt.Errorf("extension %q: %w: %w", r.Name, ErrExtensionUnavailable, execErr)
	}

	e.fireProgress(ProgressEvent{
		Requirement: r,
		Status:      StatusEnabled,
		Duration:    duration,
	})

	return nil
}

// IsEnabled reports whether the named extension is registered in the
// pg_extension catalog.
func (e *Enabler) IsEnabled(ctx context.Context, name string) (bool, error) {
	var exists bool

	err := e.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM pg_extension WHERE extname = $1)`,
		name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking extension %s: %w", name, err)
	}

	return exists, nil
}

// enableExtension runs a single enable statement inside a transaction so
// the lock_timeout, when set, is scoped to that statement only.
func (e *Enabler) enableExtension(ctx context.Context, sql string) error {
	return execInTransaction(ctx, e.pool, func(tx pgx.Tx) error {
		if e.lockTimeout > 0 {
			if err := setLockTimeout(ctx, tx, e.lockTimeout); err != nil {
				return err
			}
		}

		if _, err := tx.Exec(ctx, sql); err != nil {
			return fmt.Errorf("executing SQL: %w", err)
		}

		return nil
	})
}

func (e *Enabler) fireProgress(event ProgressEvent) {
	if e.onProgress != nil {
		e.onProgress(event)
	}
}
