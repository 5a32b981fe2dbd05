// Package filesystem abstracts the file operations swapify needs: walking a
// tree of migration packages, reading migration text and writing it back.
//
// Implementations:
//   - OSFileSystem: production implementation backed by the os package
//   - MemoryFileSystem: in-memory implementation for tests
package filesystem
