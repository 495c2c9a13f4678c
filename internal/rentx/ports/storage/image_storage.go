// Package storage defines the listing image storage interface.
package storage

import (
	"context"
	"time"
)

// PresignedURL is a time-limited URL for a direct object operation.
type PresignedURL struct {
	URL       string
	Key       string
	ExpiresAt time.Time
}

// ImageStorage issues presigned URLs so clients upload and fetch listing
// images directly from object storage.
type ImageStorage interface {
	PresignUpload(ctx context.Context, userID, fileName, contentType string) (*PresignedURL, error)

	PresignDownload(ctx context.Context, key string) (*PresignedURL, error)
}
