// Package storage keeps blog cover images in an S3-compatible object store.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// PresignExpiry is the lifetime of presigned cover URLs.
const PresignExpiry = 15 * time.Minute

// ImageStore stores cover image objects by key.
type ImageStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string) (string, error)
}

// NewKey returns a fresh object key of the form covers/YYYY/M/D/<uuid><ext>.
func NewKey(now time.Time, ext string) string {
	return fmt.Sprintf("covers/%d/%d/%d/%v%s", now.Year(), now.Month(), now.Day(), uuid.New(), ext)
}
