// Package storage hands out presigned object-storage URLs for document
// content. Bytes never pass through the server.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PresignExpiry bounds the lifetime of every presigned URL.
const PresignExpiry = 15 * time.Minute

// ObjectStorage presigns uploads and downloads for object keys.
type ObjectStorage interface {
	PresignPut(ctx context.Context, key string) (string, error)
	PresignGet(ctx context.Context, key string) (string, error)
}

// NewKey returns a fresh object key for a document uploaded by uploaderID,
// partitioned by upload date.
func NewKey(uploaderID int64, now time.Time) string {
	return fmt.Sprintf("documents/%d/%04d/%02d/%02d/%s", uploaderID, now.Year(), now.Month(), now.Day(), uuid.NewString())
}
