package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aqasim81/ragdb-bootstrap/internal/database"
	"github.com/aqasim81/ragdb-bootstrap/internal/extension"
)

// State describes where a bootstrap run is in its lifecycle. There are
// only two: the transition from Pending to Ready happens once, when all
// requirements are confirmed and the banner has been emitted. A failed
// run simply never leaves Pending.
type State string

// Bootstrap lifecycle states.
const (
	StatePending State = "pending"
	StateReady   State = "ready"
)

// Outcome is the result of a bootstrap run. It is transient: constructed
// after all requirements are processed and reported to the caller, never
// persisted.
type Outcome struct {
	Succeeded bool
	Message   string
}

// ExtensionEnabler abstracts the capability enabler for testability.
type ExtensionEnabler interface {
	EnableAll(ctx context.Context, reqs []extension.Requirement) error
}

// CompletionNotifier announces a successful bootstrap and returns the
// emitted message. It is never invoked on failure.
type CompletionNotifier interface {
	NotifyReady() string
}

// lockReleaser is returned by lockFn and must be released when done.
type lockReleaser interface {
	Release(ctx context.Context) error
}

// lockFunc acquires the bootstrap lock and returns a releaser.
type lockFunc func(ctx context.Context) (lockReleaser, error)

// Runner executes the bootstrap sequence: enable every required
// extension, then announce readiness. Control flow is strictly linear
// and the notifier is never reached on an error path.
type Runner struct {
	pool        *pgxpool.Pool
	enabler     ExtensionEnabler
	notifier    CompletionNotifier
	acquireLock lockFunc
	state       State
}

// New creates a Runner with the given pool, enabler, and notifier.
func New(pool *pgxpool.Pool, enabler ExtensionEnabler, notifier CompletionNotifier) *Runner {
	r := &Runner{
		pool:     pool,
		enabler:  enabler,
		notifier: notifier,
		state:    StatePending,
	}

	r.acquireLock = func(ctx context.Context) (lockReleaser, error) {
		return database.TryAcquireLock(ctx, r.pool)
	}

	return r
}

// State returns the runner's current lifecycle state.
func (r *Runner) State() State {
	return r.state
}

// Run executes the bootstrap under the advisory lock. On success it
// returns the Outcome carrying the emitted banner; on failure the error
// identifies the first requirement that could not be satisfied and the
// returned Outcome is zero-valued.
func (r *Runner) Run(ctx context.Context, reqs []extension.Requirement) (Outcome, error) {
	lock, err := r.acquireLock(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("acquiring bootstrap lock: %w", err)
	}
	defer lock.Release(ctx) //nolint:errcheck // best-effort release on return

	if err := r.enabler.EnableAll(ctx, reqs); err != nil {
		return Outcome{}, err
	}

	message := r.notifier.NotifyReady()
	r.state = StateReady

	return Outcome{Succeeded: true, Message: message}, nil
}
