// Package scanner finds South migration files that still reference the
// swappable model as a literal.
//
// The walk recurses through the whole tree but only collects files whose
// directory path ends in "migrations". A collected file is a candidate when it
// is a .py file that mentions the model, is not yet marked as patched and does
// not already use the setting-based ORM lookup.
//
// The scanner reads through filesystem.FileSystemProvider, so tests can run
// against filesystem.MemoryFileSystem.
package scanner
