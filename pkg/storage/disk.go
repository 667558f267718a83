// Package storage abstracts where uploaded menu images live.
//
// Two drivers are available:
//   - "local" — local filesystem, served under /storage (default)
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2)
//
// The active driver is selected with STORAGE_DISK.
package storage

import (
	"context"
	"io"
)

// Disk is the driver interface. Paths are slash-separated keys relative
// to the disk root.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(ctx context.Context, path string, r io.Reader) error

	// Get returns a reader for the file at path. Caller must close it.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) bool

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
