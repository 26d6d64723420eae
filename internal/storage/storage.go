// Package storage keeps generated decks on local disk and optionally
// publishes them to S3. Storage is the port; LocalStorage and S3Storage
// are its implementations.
package storage

import (
	"context"
	"errors"
	"io"
)

// Static errors for storage operations.
var (
	// ErrNotFound is returned when a named file does not exist.
	ErrNotFound = errors.New("storage: file not found")
	// ErrExists is returned by Save when the name is already taken.
	ErrExists = errors.New("storage: file already exists")
	// ErrInvalidName is returned for names that are not a single path element.
	ErrInvalidName = errors.New("storage: invalid file name")
	// ErrS3NotConfigured is returned by Publish when no bucket is configured.
	ErrS3NotConfigured = errors.New("storage: S3 is not configured")
)

// Storage stores generated files by name.
type Storage interface {
	// Save writes data under a new name. Existing files are never replaced;
	// Save returns ErrExists instead.
	Save(ctx context.Context, name string, data io.Reader) error

	// Open returns a reader for the named file. The caller closes it.
	// Returns ErrNotFound if the file does not exist.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Remove deletes the named file. Removing a missing file is not an error.
	Remove(ctx context.Context, name string) error

	// Publish uploads the named file and returns its public URL.
	// Returns ErrS3NotConfigured when publishing is not available.
	Publish(ctx context.Context, name string) (url string, err error)
}
