package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// File represents an individual file with its metadata and content accessor
type File interface {
	// RelativePath returns the path relative to the walked root
	RelativePath() string

	// Info returns file metadata
	Info() FileInfo

	// ReadContent returns the file's content
	ReadContent() ([]byte, error)
}

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Walk traverses the directory tree, calling fn for each file and directory.
	// Directories are visited before their contents. If fn returns an error,
	// walking stops.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider opens directories and reads and rewrites migration files.
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the content of the file at path. An existing file
	// keeps its permission bits; perm applies only to new files.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}
