package interfaces

import (
	"context"
	"io"
	"net/http"
)

// Doer is the transport capability the client dispatches requests through.
// Cancellation and timeouts are the transport's responsibility, driven by the
// request context.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Gateway is the set of client operations a DirectoryCodec may call back into.
type Gateway interface {
	// UploadBody posts body to the resolved upload URL and returns the new hash.
	UploadBody(ctx context.Context, body io.Reader, opts *UploadOptions, headers http.Header, forceRaw bool) (ContentHash, error)
	// Download returns the unread response for a successful download.
	Download(ctx context.Context, hash ContentHash, opts *DownloadOptions, headers http.Header) (*http.Response, error)
	// List returns the manifest listing of hash.
	List(ctx context.Context, hash ContentHash, opts *DownloadOptions) (*ListResult, error)
}

// DirectoryCodec encodes directories for a specific environment.
type DirectoryCodec interface {
	UploadDirectory(ctx context.Context, gw Gateway, dir Directory, opts *UploadOptions) (ContentHash, error)
	DownloadDirectory(ctx context.Context, gw Gateway, hash ContentHash) (Directory, error)
}
