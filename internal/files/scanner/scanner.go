package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vvka-141/swapify/internal/files/filesystem"
	"github.com/vvka-141/swapify/pkg/swapify"
)

// Matcher is the read-only view of a transformer the scanner needs.
type Matcher interface {
	Model() string
	IsAlreadyPatched(text string) bool
	UsesDynamicLookup(text string) bool
}

// Scanner discovers migration files that still need patching.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided matcher and fsProvider are also thread-safe.
type Scanner struct {
	matcher    Matcher
	fsProvider filesystem.FileSystemProvider
	excludes   []string
}

// NewScanner creates a scanner over the OS filesystem.
// Panics if matcher is nil.
func NewScanner(matcher Matcher) *Scanner {
	return NewScannerWithFS(matcher, filesystem.NewOSFileSystem())
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// Panics if matcher or fsProvider is nil.
func NewScannerWithFS(matcher Matcher, fsProvider filesystem.FileSystemProvider) *Scanner {
	if matcher == nil {
		panic("matcher cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		matcher:    matcher,
		fsProvider: fsProvider,
	}
}

// WithExcludes returns a copy of the scanner that skips files whose path
// relative to the scan root matches any of the doublestar patterns.
func (s *Scanner) WithExcludes(patterns []string) (*Scanner, error) {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: bad exclude pattern %q", swapify.ErrInvalidConfig, pattern)
		}
	}
	clone := *s
	clone.excludes = append([]string(nil), patterns...)
	return &clone, nil
}

// FindCandidates walks root and returns migration files that still need the
// swappable-model rewrite, in walk order. Unreadable files are reported in
// ScanResult.Failures and do not stop the walk; an unreadable root does.
func (s *Scanner) FindCandidates(root string) (swapify.ScanResult, error) {
	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return swapify.ScanResult{}, fmt.Errorf("%w: failed to open directory: %w", swapify.ErrFileAccess, err)
	}

	var result swapify.ScanResult

	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			result.Failures = append(result.Failures, walkFailure(root, err))
			return nil
		}
		if file.Info().IsDir() {
			return nil
		}

		relPath := file.RelativePath()
		path := filepath.Join(root, relPath)

		if !strings.HasSuffix(filepath.Dir(path), swapify.MigrationsDirSuffix) {
			return nil
		}
		if !strings.HasSuffix(file.Info().Name(), swapify.MigrationFileExtension) {
			return nil
		}
		if s.isExcluded(relPath) {
			return nil
		}

		content, err := file.ReadContent()
		if err != nil {
			result.Failures = append(result.Failures, swapify.FileFailure{
				Path: path,
				Err:  fmt.Errorf("%w: %w", swapify.ErrFileAccess, err),
			})
			return nil
		}

		if s.needsPatching(string(content)) {
			result.Candidates = append(result.Candidates, path)
		}
		return nil
	})
	if err != nil {
		return swapify.ScanResult{}, err
	}

	return result, nil
}

// needsPatching applies the candidate rules to a migration's text.
func (s *Scanner) needsPatching(text string) bool {
	if s.matcher.IsAlreadyPatched(text) {
		return false
	}
	if !strings.Contains(text, s.matcher.Model()) {
		return false
	}
	return !s.matcher.UsesDynamicLookup(text)
}

func (s *Scanner) isExcluded(relPath string) bool {
	slashPath := filepath.ToSlash(relPath)
	for _, pattern := range s.excludes {
		if ok, _ := doublestar.Match(pattern, slashPath); ok {
			return true
		}
	}
	return false
}

// walkFailure attributes a traversal error to the path it names when possible.
func walkFailure(root string, err error) swapify.FileFailure {
	path := root
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		path = pathErr.Path
	}
	return swapify.FileFailure{
		Path: path,
		Err:  fmt.Errorf("%w: %w", swapify.ErrFileAccess, err),
	}
}

// Verify Scanner implements the interface at compile time
var _ swapify.CandidateScanner = (*Scanner)(nil)
