// Package files groups the file-related sub-packages:
//   - filesystem: filesystem abstraction with OS and in-memory implementations
//   - scanner: discovery of migration files that still need patching
package files
