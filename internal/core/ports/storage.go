package ports

import (
	"context"
	"io"
)

// StoredObject is a downloaded object. Callers must close Body.
type StoredObject struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// ObjectStorage is the file half of the remote backend.
type ObjectStorage interface {
	// Upload writes r at bucket/path, replacing any existing object.
	Upload(ctx context.Context, bucket, path string, r io.Reader, contentType string) error
	PublicURL(bucket, path string) string
	Open(ctx context.Context, bucket, path string) (*StoredObject, error)
	Remove(ctx context.Context, bucket, path string) error
}
