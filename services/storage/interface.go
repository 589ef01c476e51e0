package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotConfigured is returned when the blob storage connection string is
// absent; the upload endpoint maps it to a 503 without any network call.
var ErrNotConfigured = errors.New("storage service is not configured")

// Service stores uploaded photo bytes and returns a resolvable public URL
// per file. Uploads within one request run sequentially in input order.
type Service interface {
	// Configured reports whether a backing store is reachable at all;
	// false means the connection string was never supplied.
	Configured() bool

	UploadPhoto(ctx context.Context, filename string, data io.Reader) (string, error)
}
