// Package storage contains object storage abstractions for listing images (S3-compatible).
// Implementations must avoid using local disk and rely on streaming I/O only.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrForeignURL is returned by KeyFromURL for URLs outside the bucket.
var ErrForeignURL = errors.New("url does not belong to the bucket")

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size         int64
	ContentType  string
	CacheControl string
	Metadata     map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	URL          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
}

// Storage is an S3-compatible object store whose objects are publicly readable by URL.
type Storage interface {
	// Put uploads an object under the given key and returns its info, including the public URL.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes an object by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns all objects under prefix.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	// PublicURL returns the unauthenticated URL of key.
	PublicURL(key string) string
	// KeyFromURL is the inverse of PublicURL.
	KeyFromURL(u string) (string, error)
}
