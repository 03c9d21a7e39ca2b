package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/aqasim81/ragdb-bootstrap/internal/bootstrap"
	"github.com/aqasim81/ragdb-bootstrap/internal/config"
	"github.com/aqasim81/ragdb-bootstrap/internal/database"
	"github.com/aqasim81/ragdb-bootstrap/internal/extension"
	"github.com/aqasim81/ragdb-bootstrap/internal/notify"
)

// errDatabaseURLRequired is returned when no database URL is configured.
var errDatabaseURLRequired = errors.New( //nolint:gochecknoglobals // sentinel error
	"database URL is required (set --database-url, RAGBOOT_DATABASE_URL, or database_url in config)",
)

var runCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "run",
	Short: "Enable required extensions and announce readiness",
	Long: `Run the bootstrap: enable each configured extension in order with
CREATE EXTENSION IF NOT EXISTS, failing fast on the first rejection,
then print the confirmation banner. Safe to re-run against an
already-bootstrapped database.`,
	RunE: runRun,
}

func init() { //nolint:gochecknoinits // standard Cobra pattern for flag registration
	runCmd.Flags().Duration("lock-timeout", 0, "override per-statement lock timeout (e.g., 10s)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg := AppConfig

	if cfg.DatabaseURL == "" {
		return errDatabaseURLRequired
	}

	lockTimeout := cfg.LockTimeout
	if cmd.Flags().Changed("lock-timeout") {
		lockTimeout, _ = cmd.Flags().GetDuration("lock-timeout")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()

	pool, err := connectDB(ctx, cfg, out)
	if err != nil {
		return err
	}
	defer pool.Close()

	enabler := extension.New(pool,
		extension.WithLockTimeout(lockTimeout),
		extension.WithProgressCallback(func(event extension.ProgressEvent) {
			switch event.Status {
			case extension.StatusStarting:
				fmt.Fprintf(out, "  Enabling %s ... ", event.Requirement.Name)
			case extension.StatusEnabled:
				fmt.Fprintf(out, "done (%s)\n", event.Duration.Truncate(time.Millisecond))
			case extension.StatusFailed:
				fmt.Fprintf(out, "FAILED\n")
				fmt.Fprintf(out, "    Error: %v\n", event.Error)
			}
		}),
	)

	notifier := notify.NewNotifier(out, cfg.DatabaseName, cfg.UserName, colorEnabled(out))
	runner := bootstrap.New(pool, enabler, notifier)

	if _, err := runner.Run(ctx, extension.RequirementsFromNames(cfg.Extensions)); err != nil {
		return err
	}

	return nil
}

// connectDB opens a connection pool, printing the redacted URL first so
// operators can see which database is being bootstrapped.
func connectDB(ctx context.Context, cfg *config.Config, out io.Writer) (*pgxpool.Pool, error) {
	fmt.Fprintf(out, "Connecting to %s\n", config.RedactURL(cfg.DatabaseURL))

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return pool, nil
}

// colorEnabled reports whether out is a terminal that should get colour.
func colorEnabled(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}

	return notify.ColorEnabled(f)
}
