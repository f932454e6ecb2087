package storage

import (
	"context"
	"io"
	"time"
)

// Package storage persists generated artifacts (encrypted clinical-history
// PDFs) and captured signature images in an S3-compatible object store.
// Implementations stream; nothing is staged on local disk.

// PutOptions are optional parameters for storing an object. Size should be
// exact when known; -1 lets the backend chunk as it supports.
type PutOptions struct {
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

// Storage is the object-store client interface. Safe for concurrent use.
type Storage interface {
	// Put stores an object under the given key.
	Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader with its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
}
