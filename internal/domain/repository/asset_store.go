package repository

import (
	"context"
	"errors"
	"io"
)

var (
	ErrAssetNotFound   = errors.New("asset not found")
	ErrInvalidFilename = errors.New("invalid asset filename")
)

// Upload is a binary attached to a request.
type Upload struct {
	Filename    string // client-supplied name, used only for its extension
	ContentType string
	Size        int64
	Body        io.Reader
}

// RemovalResult describes a best-effort removal. It is deliberately not an
// error: callers log it and carry on.
type RemovalResult struct {
	Filename string
	Removed  bool
	Absent   bool
	Err      error
}

// OK reports whether the asset is gone, either removed now or already absent.
func (r RemovalResult) OK() bool { return r.Err == nil }

// AssetStore keeps profile pictures keyed by generated filename.
type AssetStore interface {
	// Store persists u under a new unique filename and returns that name.
	Store(ctx context.Context, u Upload) (string, error)
	// Open returns the stored bytes; ErrAssetNotFound when absent.
	Open(ctx context.Context, filename string) (io.ReadCloser, string, error)
	// Remove deletes filename; an absent file counts as success.
	Remove(ctx context.Context, filename string) RemovalResult
}
