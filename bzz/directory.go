package bzz

import (
	"context"

	"github.com/ruteri/bzz-gateway-client/interfaces"
)

// NotImplementedDirectories is the DirectoryCodec of a client built without
// an environment-specific codec. Every call fails with
// interfaces.ErrNotImplemented.
type NotImplementedDirectories struct{}

func (NotImplementedDirectories) UploadDirectory(context.Context, interfaces.Gateway, interfaces.Directory, *interfaces.UploadOptions) (interfaces.ContentHash, error) {
	return "", interfaces.ErrNotImplemented
}

func (NotImplementedDirectories) DownloadDirectory(context.Context, interfaces.Gateway, interfaces.ContentHash) (interfaces.Directory, error) {
	return nil, interfaces.ErrNotImplemented
}

// UploadDirectory uploads dir through the configured DirectoryCodec.
func (c *Client) UploadDirectory(ctx context.Context, dir interfaces.Directory, opts *interfaces.UploadOptions) (interfaces.ContentHash, error) {
	if opts == nil {
		opts = &interfaces.UploadOptions{}
	}
	return c.dirs.UploadDirectory(ctx, c, dir, opts)
}

// DownloadDirectory downloads the manifest hash through the configured DirectoryCodec.
func (c *Client) DownloadDirectory(ctx context.Context, hash interfaces.ContentHash) (interfaces.Directory, error) {
	return c.dirs.DownloadDirectory(ctx, c, hash)
}
