// Package storage holds backup manifests in an S3-compatible bucket.
// Objects are streamed; nothing is staged on local disk.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrObjectNotFound is returned when a key does not exist in the bucket.
var ErrObjectNotFound = errors.New("object not found")

// PutObjectOptions describe an upload. Size is the exact length, or -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the object store used by the backup flow.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get streams an object. A missing key yields ErrObjectNotFound.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes key. Removing a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a credential-free download URL valid for expiry.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// PutJSON encodes v and uploads it under key as application/json.
func PutJSON(ctx context.Context, s Storage, key string, v any, metadata map[string]string) (ObjectInfo, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Put(ctx, key, bytes.NewReader(body), PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "application/json",
		Metadata:    metadata,
	})
}
