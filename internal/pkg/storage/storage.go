package storage

import (
	"context"
	"io"
)

// Storage is the minimal interface a photo backend must provide:
// save an object, delete it, resolve its public URL.
type Storage interface {
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	GetURL(key string) string
}
