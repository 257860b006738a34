package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"examcracker/internal/storage"
)

var (
	ErrCloudUnavailable    = errors.New("cloud upload unavailable")
	ErrFileDataRequired    = errors.New("file_data is required for cloud-file uploads")
	ErrInvalidFileData     = errors.New("file_data is not valid base64")
	ErrInvalidUploadMethod = errors.New("upload_method must be link or cloud-file")
)

// ResolveInput describes one admin-supplied material to normalize into a
// retrievable link.
type ResolveInput struct {
	Method    string // "link" or "cloud-file"; empty defaults to "link"
	Name      string
	Link      string // used verbatim when Method is "link"
	FileData  string // base64-encoded payload for cloud-file uploads
	FileName  string // destination file name; falls back to Name
	Namespace string // fixed path prefix in the object store
}

// ResolvedUpload is the normalized result: a retrievable link plus the storage
// path, which is empty for link-based uploads.
type ResolvedUpload struct {
	Method      string
	Link        string
	StoragePath string
}

// UploadResolver normalizes admin-supplied material into a retrievable link,
// abstracting over the two upload methods.
type UploadResolver interface {
	// Resolve passes a link through verbatim or pushes the decoded payload to
	// the object store and returns a forced-download share link.
	Resolve(ctx context.Context, in ResolveInput) (ResolvedUpload, error)

	// CloudEnabled reports whether cloud-file uploads are available.
	CloudEnabled() bool
}

type uploadResolver struct {
	store storage.Storage
}

// NewUploadResolver constructs an UploadResolver. A nil store declares the
// cloud upload capability disabled up front: cloud-file requests then fail
// immediately instead of attempting a doomed external call.
func NewUploadResolver(store storage.Storage) UploadResolver {
	return &uploadResolver{store: store}
}

func (u *uploadResolver) CloudEnabled() bool {
	return u.store != nil
}

func (u *uploadResolver) Resolve(ctx context.Context, in ResolveInput) (ResolvedUpload, error) {
	method := in.Method
	if method == "" {
		method = "link"
	}

	switch method {
	case "link":
		// Pass the supplied link through verbatim; no external call.
		return ResolvedUpload{Method: method, Link: in.Link}, nil
	case "cloud-file":
		return u.resolveCloudFile(ctx, in)
	default:
		return ResolvedUpload{}, ErrInvalidUploadMethod
	}
}

func (u *uploadResolver) resolveCloudFile(ctx context.Context, in ResolveInput) (ResolvedUpload, error) {
	if u.store == nil {
		return ResolvedUpload{}, ErrCloudUnavailable
	}
	if in.FileData == "" {
		return ResolvedUpload{}, ErrFileDataRequired
	}

	payload, err := base64.StdEncoding.DecodeString(in.FileData)
	if err != nil {
		return ResolvedUpload{}, ErrInvalidFileData
	}

	fileName := in.FileName
	if fileName == "" {
		fileName = in.Name
	}
	key := in.Namespace + "/" + fileName

	// Overwrites any existing object at the key.
	if _, err := u.store.Put(ctx, key, bytes.NewReader(payload), storage.PutObjectOptions{
		Size: int64(len(payload)),
	}); err != nil {
		return ResolvedUpload{}, fmt.Errorf("cloud upload failed: %w", err)
	}

	link, err := u.store.CreateSharedLink(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrSharedLinkExists) {
			return ResolvedUpload{}, fmt.Errorf("create shared link failed: %w", err)
		}
		// A link was issued by a prior upload; reuse the first existing one.
		links, listErr := u.store.ListSharedLinks(ctx, key)
		if listErr != nil {
			return ResolvedUpload{}, fmt.Errorf("list shared links failed: %w", listErr)
		}
		if len(links) == 0 {
			return ResolvedUpload{}, fmt.Errorf("create shared link failed: %w", err)
		}
		link = links[0]
	}

	return ResolvedUpload{
		Method:      "cloud-file",
		Link:        ForceDownload(link),
		StoragePath: key,
	}, nil
}

// ForceDownload rewrites a share link's unsigned view flag into a
// direct-download flag so the link downloads instead of rendering an inline
// preview. Only the Dropbox-style dl indicator is rewritten: S3-style
// response-content-disposition parameters are part of the presigned
// signature, so the storage backend issues those in attachment form already
// and a textual rewrite here would invalidate the URL.
func ForceDownload(link string) string {
	link = strings.Replace(link, "?dl=0", "?dl=1", 1)
	link = strings.Replace(link, "&dl=0", "&dl=1", 1)
	return link
}
