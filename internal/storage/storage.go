package storage

import (
	"context"
	"errors"
	"io"
)

// Package storage contains the object storage abstraction behind cloud-file
// uploads. Implementations must avoid using local disk and rely on streaming
// I/O only.

// ErrSharedLinkExists is returned by CreateSharedLink when the backend already
// issued a shareable link for the key. Callers fall back to ListSharedLinks.
var ErrSharedLinkExists = errors.New("shared link already exists")

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and
// the implementation will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key  string
	Size int64
	ETag string
}

// Storage is the capability interface the upload resolver depends on.
// Put overwrites any existing object at the key (last writer wins).
// Backends that sign their query parameters must issue share links in
// direct-download form themselves; callers only normalize unsigned view
// flags (a Dropbox-style dl=0) and never touch signed parameters.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// CreateSharedLink issues a shareable URL for the object at key.
	// Returns ErrSharedLinkExists if the backend already holds one.
	CreateSharedLink(ctx context.Context, key string) (string, error)
	// ListSharedLinks returns the shareable URLs already issued for key.
	ListSharedLinks(ctx context.Context, key string) ([]string, error)
}
