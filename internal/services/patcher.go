package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/swapify/internal/files/filesystem"
	"github.com/vvka-141/swapify/pkg/swapify"
)

// Rewriter is the part of a transformer the patch service drives.
type Rewriter interface {
	Apply(text string) string
	IsAlreadyPatched(text string) bool
}

// PatchService reads, rewrites and writes back candidate migration files.
// Each file is handled independently: a failure on one path is recorded on
// its result and the remaining paths are still processed.
type PatchService struct {
	rewriter Rewriter
	fs       filesystem.FileSystemProvider
	logger   swapify.Logger
	workers  int
}

// NewPatchService creates a PatchService. workers bounds how many files are
// processed at once; values below 1 mean sequential processing.
// Panics on nil dependencies.
func NewPatchService(rewriter Rewriter, fs filesystem.FileSystemProvider, logger swapify.Logger, workers int) *PatchService {
	if rewriter == nil {
		panic("rewriter cannot be nil")
	}
	if fs == nil {
		panic("fs cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if workers < 1 {
		workers = swapify.DefaultWorkers
	}
	return &PatchService{
		rewriter: rewriter,
		fs:       fs,
		logger:   logger,
		workers:  workers,
	}
}

// Patch rewrites every path and returns the results in the order given.
// With dryRun set no file is written; the rewritten text is returned in each
// result's Output. Once ctx is cancelled, paths not yet started are reported
// with the context error.
func (s *PatchService) Patch(ctx context.Context, paths []string, dryRun bool) swapify.PatchReport {
	report := swapify.PatchReport{
		DryRun:  dryRun,
		Results: make([]swapify.PatchResult, len(paths)),
	}

	g := new(errgroup.Group)
	g.SetLimit(s.workers)

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			report.Results[i] = swapify.PatchResult{Path: path, Err: err}
			continue
		}
		i, path := i, path
		g.Go(func() error {
			report.Results[i] = s.patchFile(path, dryRun)
			return nil
		})
	}

	_ = g.Wait()
	return report
}

// patchFile performs one uninterrupted stat/read/apply/write cycle. The file
// is written back with the mode it had when stat'ed.
func (s *PatchService) patchFile(path string, dryRun bool) swapify.PatchResult {
	result := swapify.PatchResult{Path: path}

	info, err := s.fs.Stat(path)
	if err != nil {
		result.Err = fmt.Errorf("%w: stat %s: %w", swapify.ErrFileAccess, path, err)
		s.logger.Error("%v", result.Err)
		return result
	}

	content, err := s.fs.ReadFile(path)
	if err != nil {
		result.Err = fmt.Errorf("%w: read %s: %w", swapify.ErrFileAccess, path, err)
		s.logger.Error("%v", result.Err)
		return result
	}

	text := string(content)
	result.Output = s.rewriter.Apply(text)
	result.Changed = result.Output != text
	result.Marked = s.rewriter.IsAlreadyPatched(result.Output)

	if !result.Marked {
		s.logger.Warn("%s has no encoding declaration; patched without the swapify marker", path)
	}

	if dryRun {
		return result
	}
	if !result.Changed {
		s.logger.Verbose("%s has nothing to rewrite", path)
	}

	if err := s.fs.WriteFile(path, []byte(result.Output), info.Mode().Perm()); err != nil {
		result.Err = fmt.Errorf("%w: write %s: %w", swapify.ErrFileAccess, path, err)
		s.logger.Error("%v", result.Err)
		return result
	}

	result.Written = true
	s.logger.Verbose("wrote %s (%d bytes)", path, len(result.Output))
	return result
}

// Verify PatchService implements the interface at compile time
var _ swapify.FilePatcher = (*PatchService)(nil)
