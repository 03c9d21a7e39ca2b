package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aqasim81/ragdb-bootstrap/internal/extension"
)

// errExtensionsMissing is returned when verify finds unenabled extensions.
var errExtensionsMissing = errors.New("required extensions are missing (run 'ragboot run')") //nolint:gochecknoglobals // sentinel error

var verifyCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "verify",
	Short: "Check that required extensions are enabled",
	Long: `Verify inspects the pg_extension catalog and reports each configured
extension as enabled or missing. It never mutates the database.`,
	RunE: runVerify,
}

func init() { //nolint:gochecknoinits // standard Cobra pattern for flag registration
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	cfg := AppConfig

	if cfg.DatabaseURL == "" {
		return errDatabaseURLRequired
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

	enabler := extension.New(pool)
	missing := 0

	for _, name := range cfg.Extensions {
		enabled, err := enabler.IsEnabled(ctx, name)
		if err != nil {
			return fmt.Errorf("verifying extension %s: %w", name, err)
		}

		if enabled {
			fmt.Fprintf(out, "  %s: enabled\n", name)
		} else {
			fmt.Fprintf(out, "  %s: missing\n", name)
			missing++
		}
	}

	if missing > 0 {
		return fmt.Errorf("%w: %d of %d", errExtensionsMissing, missing, len(cfg.Extensions))
	}

	fmt.Fprintf(out, "All %d extension(s) enabled.\n", len(cfg.Extensions))

	return nil
}
