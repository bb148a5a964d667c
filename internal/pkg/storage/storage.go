package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage abstracts where uploaded files live. The local backend is
// the default; an object-store backend can be swapped in behind the
// same interface.
type FileStorage interface {
	// Upload writes the file under the given relative path and returns
	// the stored path/key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// GetURL returns a URL for the stored file. Expiry only applies to
	// backends that sign their URLs.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}
