package storage

import (
	"context"
	"time"
)

// URLSigner issues pre-signed URLs that let a client upload an object
// directly to the bucket.
type URLSigner interface {
	PresignPut(ctx context.Context, key string, contentType string, ttl time.Duration) (string, error)
}
