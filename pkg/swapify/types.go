package swapify

import "context"

// FileFailure records a migration file that could not be read or written.
type FileFailure struct {
	Path string
	Err  error
}

// ScanResult contains the results of scanning a directory for candidates.
type ScanResult struct {
	// Candidates are the paths still requiring transformation, in walk order.
	Candidates []string

	// Failures are files that matched the directory and extension filters
	// but could not be read.
	Failures []FileFailure
}

// PatchResult is the outcome of transforming a single candidate.
type PatchResult struct {
	Path string

	// Output is the rewritten text. Populated for every successfully read file
	// so dry-run callers can print it.
	Output string

	// Changed reports whether Output differs from the file's previous text.
	Changed bool

	// Marked reports whether Output carries the idempotency marker.
	// An unmarked result means the file lacked the encoding declaration
	// anchor and was only partially patched.
	Marked bool

	// Written reports whether Output was written back to Path.
	Written bool

	Err error
}

// PatchReport collects per-file results in candidate order.
type PatchReport struct {
	DryRun  bool
	Results []PatchResult
}

// Updated returns the results that were written back to disk.
func (r PatchReport) Updated() []PatchResult {
	var updated []PatchResult
	for _, res := range r.Results {
		if res.Written {
			updated = append(updated, res)
		}
	}
	return updated
}

// Failed returns the results whose read or write failed.
func (r PatchReport) Failed() []PatchResult {
	var failed []PatchResult
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// CandidateScanner discovers migration files that still need patching.
// Implementations must be safe for concurrent use by multiple goroutines.
type CandidateScanner interface {
	// FindCandidates walks root and returns the files needing transformation.
	FindCandidates(root string) (ScanResult, error)
}

// FilePatcher rewrites candidate files.
type FilePatcher interface {
	// Patch transforms every path. When dryRun is true no file is modified.
	Patch(ctx context.Context, paths []string, dryRun bool) PatchReport
}
