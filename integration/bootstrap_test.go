//go:build integration

package integration

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqasim81/ragdb-bootstrap/internal/bootstrap"
	"github.com/aqasim81/ragdb-bootstrap/internal/extension"
	"github.com/aqasim81/ragdb-bootstrap/internal/notify"
)

func defaultRequirements() []extension.Requirement {
	return extension.RequirementsFromNames([]string{"pg_trgm", "btree_gin"})
}

func TestEnableAll_freshDatabase_enablesExtensions(t *testing.T) {
	t.Parallel()

	pool := SetupPostgres(t)
	ctx := context.Background()
	enabler := extension.New(pool)

	err := enabler.EnableAll(ctx, defaultRequirements())
	require.NoError(t, err)

	for _, name := range []string{"pg_trgm", "btree_gin"} {
		enabled, err := enabler.IsEnabled(ctx, name)
		require.NoError(t, err)
		assert.True(t, enabled, "extension %s should be enabled", name)
	}
}

func TestEnableAll_rerun_isIdempotent(t *testing.T) {
	t.Parallel()

	pool := SetupPostgres(t)
	ctx := context.Background()
	enabler := extension.New(pool)

	require.NoError(t, enabler.EnableAll(ctx, defaultRequirements()))
	require.NoError(t, enabler.EnableAll(ctx, defaultRequirements()))

	enabled, err := enabler.IsEnabled(ctx, "pg_trgm")
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestEnableAll_reversedOrder_sameEndState(t *testing.T) {
	t.Parallel()

	pool := SetupPostgres(t)
	ctx := context.Background()
	enabler := extension.New(pool)

	reversed := extension.RequirementsFromNames([]string{"btree_gin", "pg_trgm"})

	require.NoError(t, enabler.EnableAll(ctx, reversed))

	for _, name := range []string{"pg_trgm", "btree_gin"} {
		enabled, err := enabler.IsEnabled(ctx, name)
		require.NoError(t, err)
		assert.True(t, enabled)
	}
}

func TestEnableAll_unknownExtension_failsFastWithName(t *testing.T) {
	t.Parallel()

	pool := SetupPostgres(t)
	ctx := context.Background()
	enabler := extension.New(pool)

	reqs := extension.RequirementsFromNames([]string{"no_such_extension", "btree_gin"})

	err := enabler.EnableAll(ctx, reqs)
	require.Error(t, err)
	assert.ErrorIs(t, err, extension.ErrExtensionUnavailable)
	assert.Contains(t, err.Error(), "no_such_extension")

	// Fail-fast: the second requirement was never attempted.
	enabled, err := enabler.IsEnabled(ctx, "btree_gin")
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestIsEnabled_notEnabled_returnsFalse(t *testing.T) {
	t.Parallel()

	pool := SetupPostgres(t)
	enabler := extension.New(pool)

	enabled, err := enabler.IsEnabled(context.Background(), "pg_trgm")
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestRunner_endToEnd_emitsBanner(t *testing.T) {
	t.Parallel()

	pool := SetupPostgres(t)
	ctx := context.Background()

	out := new(bytes.Buffer)
	enabler := extension.New(pool)
	notifier := notify.NewNotifier(out, testDB, testUser, false)
	runner := bootstrap.New(pool, enabler, notifier)

	outcome, err := runner.Run(ctx, defaultRequirements())
	require.NoError(t, err)

	assert.True(t, outcome.Succeeded)
	assert.Equal(t, bootstrap.StateReady, runner.State())
	assert.Contains(t, out.String(), "RAG Database Initialized Successfully!")
	assert.Contains(t, out.String(), "Database: rag_db")
	assert.Contains(t, out.String(), "User: rag_user")
}

func TestRunner_rerun_producesIdenticalBanner(t *testing.T) {
	t.Parallel()

	pool := SetupPostgres(t)
	ctx := context.Background()

	first := new(bytes.Buffer)
	second := new(bytes.Buffer)

	run := func(out *bytes.Buffer) bootstrap.Outcome {
		enabler := extension.New(pool)
		notifier := notify.NewNotifier(out, testDB, testUser, false)
		runner := bootstrap.New(pool, enabler, notifier)

		outcome, err := runner.Run(ctx, defaultRequirements())
		require.NoError(t, err)

		return outcome
	}

	outcome1 := run(first)
	outcome2 := run(second)

	assert.Equal(t, outcome1, outcome2)
	assert.Equal(t, first.String(), second.String())
}

func TestRunner_enablerFails_noBannerEmitted(t *testing.T) {
	t.Parallel()

	pool := SetupPostgres(t)
	ctx := context.Background()

	out := new(bytes.Buffer)
	enabler := extension.New(pool)
	notifier := notify.NewNotifier(out, testDB, testUser, false)
	runner := bootstrap.New(pool, enabler, notifier)

	reqs := extension.RequirementsFromNames([]string{"no_such_extension"})

	_, err := runner.Run(ctx, reqs)
	require.Error(t, err)
	assert.Empty(t, out.String())
	assert.Equal(t, bootstrap.StatePending, runner.State())
}
