package storage

import (
	"context"
	"io"
	"time"
)

// ObjectStore is a capability-scoped handle on a single bucket. The
// hydrator holds two: one built from assumed-role credentials for the
// producer bucket (read-only) and one from the runtime's own credentials
// for the consumer bucket (read-write). Components receive the handle
// they need explicitly; there is no shared global client.
type ObjectStore interface {
	// Bucket returns the bucket this store is scoped to
	Bucket() string

	// Stat returns metadata for a single object.
	// Returns an error wrapping ErrNotFound when the key does not exist.
	Stat(ctx context.Context, key string) (*ObjectInfo, error)

	// Walk calls fn for every object under prefix, in listing order,
	// paging through the bucket lazily. A non-nil error from fn stops
	// the walk and is returned unchanged.
	Walk(ctx context.Context, prefix string, fn func(ObjectInfo) error) error

	// Get opens an object for reading. The caller owns the body and must
	// close it on every exit path.
	Get(ctx context.Context, key string) (*Object, error)

	// Put writes an object, encrypting it under the store's configured
	// key. An empty contentType falls back to application/octet-stream.
	Put(ctx context.Context, key string, body io.Reader, contentType string) error

	// Close releases resources
	Close() error
}

// ObjectInfo represents metadata about a stored object
type ObjectInfo struct {
	Key          string    // Object key, identical in producer and consumer
	Size         int64     // Content length in bytes
	LastModified time.Time // Storage modification time
	ContentType  string    // MIME type; empty when the store never recorded one
}

// Object is a readable payload together with the metadata the store
// declared for it. Size comes from the store's metadata, not from
// counting bytes off the body.
type Object struct {
	Info ObjectInfo
	Body io.ReadCloser
}
