package repository

import (
	"context"
	"time"
)

// ObjectInfo describes one stored object as seen in a listing snapshot.
type ObjectInfo struct {
	Key          string
	LastModified time.Time
}

// ObjectStore defines the capability set the recipe repository needs from a
// flat, key-based object store. Implementations are provided by the
// infrastructure layer (e.g. MinIO/S3); an in-memory fake exists for tests.
type ObjectStore interface {
	// List returns one point-in-time snapshot of every object under prefix.
	// The snapshot is not re-validated by callers.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// Get reads an object's full contents.
	// Returns ErrObjectNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores an object, overwriting any existing one.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Delete removes an object. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists checks if an object exists.
	Exists(ctx context.Context, key string) (bool, error)

	// Copy copies an object within the bucket.
	Copy(ctx context.Context, srcKey, dstKey string) error

	// PresignGet creates a time-limited URL for downloading an object.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)

	// PresignPut creates a time-limited URL for direct client upload.
	PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error)

	// PresignDelete creates a time-limited URL for deleting an object.
	PresignDelete(ctx context.Context, key string, expiry time.Duration) (string, error)
}
