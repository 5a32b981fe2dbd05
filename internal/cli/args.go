package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/swapify/pkg/swapify"
)

// RequireMigrationDir validates that exactly one <DIR> argument is provided.
// Returns a usage error with examples if missing or too many.
func RequireMigrationDir(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`%w: missing required argument: <DIR>

Usage: %s

Example:
  %s ./myproject`, swapify.ErrUsage, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: accepts 1 arg(s), received %d", swapify.ErrUsage, len(args))
	}
	return nil
}
