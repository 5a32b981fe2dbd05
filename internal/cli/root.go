package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/swapify/pkg/swapify"
)

var rootCmd = &cobra.Command{
	Use:   "swapify",
	Short: "Adjust South migrations to work with custom user models",
	Long: `swapify rewrites South migrations that hard-code a model such as 'auth.User'
so they resolve the model from a Django setting instead (a swappable model).

Patched files receive a marker line ("# SWAPIFIED: AUTH_USER_MODEL") and are
skipped on later runs, so swapify can be re-run safely.

Configuration precedence (highest first):
  1. Command-line flags
  2. SWAPIFY_MODEL / SWAPIFY_VAR_NAME environment variables (.env is loaded)
  3. swapify.yaml in <DIR> (or --config)
  4. Defaults (model auth.User)

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid model identifier or configuration
  11 - One or more files could not be read or written`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.SetFlagErrorFunc(flagUsageError)
}

// flagUsageError marks flag parsing failures as usage errors and appends the
// command's usage text.
func flagUsageError(cmd *cobra.Command, err error) error {
	return fmt.Errorf("%w: %w\n\n%s", swapify.ErrUsage, err, cmd.UsageString())
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
