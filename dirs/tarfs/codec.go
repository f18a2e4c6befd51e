package tarfs

import (
	"bytes"
	"context"
	"net/http"
	"strconv"

	"github.com/ruteri/bzz-gateway-client/interfaces"
)

// Codec uploads and downloads directories as TAR streams.
type Codec struct{}

var _ interfaces.DirectoryCodec = (*Codec)(nil)

// New returns a TAR directory codec.
func New() *Codec {
	return &Codec{}
}

// UploadDirectory posts dir as a TAR archive. opts.DefaultPath selects the
// entry served at the manifest root.
func (c *Codec) UploadDirectory(ctx context.Context, gw interfaces.Gateway, dir interfaces.Directory, opts *interfaces.UploadOptions) (interfaces.ContentHash, error) {
	var buf bytes.Buffer
	if err := WriteTar(&buf, dir); err != nil {
		return "", err
	}

	headers := http.Header{}
	headers.Set(interfaces.HeaderContentType, MediaType)
	headers.Set(interfaces.HeaderContentLength, strconv.Itoa(buf.Len()))
	return gw.UploadBody(ctx, &buf, opts, headers, false)
}

// DownloadDirectory fetches the manifest hash as a TAR archive.
func (c *Codec) DownloadDirectory(ctx context.Context, gw interfaces.Gateway, hash interfaces.ContentHash) (interfaces.Directory, error) {
	headers := http.Header{}
	headers.Set(interfaces.HeaderAccept, MediaType)

	// The trailing slash addresses the manifest itself rather than its root entry.
	resp, err := gw.Download(ctx, hash+"/", nil, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return ReadTar(resp.Body)
}
