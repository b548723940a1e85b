package storage

import (
	"context"
	"io"
)

// Storage is the backing store for uploaded item photos.
type Storage interface {
	// Save writes content at the given relative path, creating parents as needed.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the file at the given relative path for reading.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the file at the given relative path.
	// Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error
}
