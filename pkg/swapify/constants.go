package swapify

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // All candidates processed
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid model identifier or configuration
	ExitFileAccessError = 11 // One or more files could not be read or written
)

const (
	// DefaultModel is the swappable model patched when --model is not given.
	DefaultModel = "auth.User"

	// DefaultWorkers processes candidates sequentially.
	DefaultWorkers = 1

	// MigrationsDirSuffix selects the directories whose files are collected.
	// Matched as a plain suffix of the directory path, so "old_migrations"
	// qualifies as well.
	MigrationsDirSuffix = "migrations"

	// MigrationFileExtension is the extension of migration source files.
	MigrationFileExtension = ".py"

	// DryRunSeparatorWidth is the width of the "=" line framing each file
	// printed in dry-run mode.
	DryRunSeparatorWidth = 80
)
