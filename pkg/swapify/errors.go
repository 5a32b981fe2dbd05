package swapify

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	t, err := transform.NewFromString(model, varName)
//	if errors.Is(err, swapify.ErrInvalidModelIdentifier) {
//	    // Report the malformed --model value
//	}
var (
	// ErrInvalidModelIdentifier indicates a model string that is not "<app_label>.<ModelName>".
	ErrInvalidModelIdentifier = errors.New("invalid model identifier")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUsage indicates the command line was malformed.
	ErrUsage = errors.New("usage error")

	// ErrFileAccess indicates a migration file could not be read or written.
	ErrFileAccess = errors.New("file access failed")
)

// usageErrorPatterns are message fragments cobra and pflag produce for
// command line misuse. They are not wrapped errors, so match on text.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"required flag",
	"invalid argument",
	"flag needs an argument",
	"missing required argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrInvalidModelIdentifier):
		return ExitConfigError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrFileAccess):
		return ExitFileAccessError
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
