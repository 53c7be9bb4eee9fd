package storage

import (
	"context"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// Bucket is the injectable device-local state behind the ephemeral session
// store: a single named blob of JSON records. Modeling it as an interface
// keeps its lifecycle explicit (created on demo start, destroyed on
// migration or sign-out) and lets tests swap in a memory implementation.
type Bucket interface {
	// Get returns the raw bucket contents, or (nil, nil) when the bucket
	// does not exist yet.
	Get(ctx context.Context) ([]byte, error)

	// Set replaces the bucket contents atomically.
	Set(ctx context.Context, data []byte) error

	// Clear destroys the bucket. Clearing an absent bucket is not an error.
	Clear(ctx context.Context) error
}

// ArchiveStorage defines the interface for object storage used by the
// history export feature.
type ArchiveStorage interface {
	// UploadArchive stores an export archive under the given key.
	UploadArchive(ctx context.Context, objectKey string, body []byte, contentType string) error

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for downloading the archive directly from the provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an archive from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}
