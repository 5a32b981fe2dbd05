package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/swapify/internal/logging"
	"github.com/vvka-141/swapify/internal/tui"
	"github.com/vvka-141/swapify/pkg/swapify"
)

var listCmd = &cobra.Command{
	Use:   "list <DIR>",
	Short: "List migrations that still need patching",
	Long: `List scans <DIR> with the same rules as apply and prints the migrations that
still reference the model as a literal. No file is modified.

Examples:
  swapify list ./myproject
  swapify list ./myproject --model accounts.Member`,
	Args: RequireMigrationDir,
	RunE: runList,
}

var listFlags modelFlags

func init() {
	rootCmd.AddCommand(listCmd)
	registerModelFlags(listCmd, &listFlags)
}

func runList(cmd *cobra.Command, args []string) error {
	dir := args[0]
	logger := logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), getVerboseFlag(cmd))

	opts, err := resolveOptions(dir, listFlags, 0, false)
	if err != nil {
		return err
	}

	tr, sc, err := buildScanner(opts)
	if err != nil {
		return err
	}
	logOptionsVerbose(logger, dir, opts, tr)

	scan, err := sc.FindCandidates(dir)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	logScanFailures(logger, scan.Failures)

	printCandidates(tui.NewPrinter(cmd.OutOrStdout()), scan.Candidates)

	if len(scan.Failures) > 0 {
		return fmt.Errorf("%w: %d file(s) could not be read", swapify.ErrFileAccess, len(scan.Failures))
	}
	return nil
}

func printCandidates(p *tui.Printer, candidates []string) {
	if len(candidates) == 0 {
		p.Success("All your migration files are good!")
		return
	}

	p.Title("The following files need fixing:")
	for _, path := range candidates {
		p.Line("\t%s", path)
	}
}
