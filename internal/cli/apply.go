package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/swapify/internal/files/filesystem"
	"github.com/vvka-141/swapify/internal/logging"
	"github.com/vvka-141/swapify/internal/services"
	"github.com/vvka-141/swapify/internal/tui"
	"github.com/vvka-141/swapify/pkg/swapify"
)

var applyCmd = &cobra.Command{
	Use:   "apply <DIR>",
	Short: "Rewrite migrations to use the swappable model",
	Long: `Apply scans <DIR> for South migrations that still reference the model as a
literal and rewrites each of them in place.

A file is rewritten when:
  - it lives in a directory whose path ends in "migrations"
  - it is a .py file mentioning the model (e.g. auth.User)
  - it carries no "# SWAPIFIED: <SETTING>" marker yet

With --dry-run nothing is written; each rewritten file is printed between
separator lines instead.

Files that cannot be read or written are reported and skipped; the remaining
files are still processed and the command exits with code 11.

Examples:
  # Patch every migration under the project
  swapify apply ./myproject

  # Preview the result
  swapify apply ./myproject --dry-run

  # Custom user model with an explicit setting name
  swapify apply ./myproject --model accounts.Member --var-name MEMBER_MODEL

  # Leave third-party apps alone and use four workers
  swapify apply ./myproject --exclude "vendor/**" --workers 4`,
	Args: RequireMigrationDir,
	RunE: runApply,
}

type applyFlagValues struct {
	modelFlags
	dryRun  bool
	workers int
}

var applyFlags applyFlagValues

func init() {
	rootCmd.AddCommand(applyCmd)

	registerModelFlags(applyCmd, &applyFlags.modelFlags)
	applyCmd.Flags().BoolVar(&applyFlags.dryRun, "dry-run", false,
		"Print rewritten files to stdout without changing them")
	applyCmd.Flags().IntVar(&applyFlags.workers, "workers", swapify.DefaultWorkers,
		"Number of files processed in parallel")
}

func runApply(cmd *cobra.Command, args []string) error {
	dir := args[0]
	logger := logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), getVerboseFlag(cmd))

	opts, err := resolveOptions(dir, applyFlags.modelFlags, applyFlags.workers, cmd.Flags().Changed("workers"))
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
	logger.Verbose("Found %d candidate(s)", len(scan.Candidates))

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	patcher := services.NewPatchService(tr, filesystem.NewOSFileSystem(), logger, opts.Workers)
	report := patcher.Patch(ctx, scan.Candidates, applyFlags.dryRun)

	printPatchReport(tui.NewPrinter(cmd.OutOrStdout()), report)

	failed := len(scan.Failures) + len(report.Failed())
	if failed > 0 {
		return fmt.Errorf("%w: %d file(s) could not be processed", swapify.ErrFileAccess, failed)
	}
	return nil
}

// printPatchReport writes UPDATED lines, or the framed rewritten text in
// dry-run mode. Failed files were already reported by the patch service.
func printPatchReport(p *tui.Printer, report swapify.PatchReport) {
	if !report.DryRun {
		for _, res := range report.Updated() {
			p.Success("UPDATED: " + res.Path)
		}
		return
	}

	separator := strings.Repeat("=", swapify.DryRunSeparatorWidth)
	for _, res := range report.Results {
		if res.Err != nil {
			continue
		}
		p.Line("%s", separator)
		p.Line("%s", res.Output)
		p.Line("%s", separator)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
