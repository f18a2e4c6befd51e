package bzz

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/ruteri/bzz-gateway-client/interfaces"
	"github.com/ruteri/bzz-gateway-client/protocol"
)

// Hash resolves domain to the content hash it currently points to.
func (c *Client) Hash(ctx context.Context, domain string) (interfaces.ContentHash, error) {
	resp, err := c.get(ctx, protocol.HashURL(c.url, domain), nil)
	if err != nil {
		return "", err
	}
	text, err := ResText(resp)
	if err != nil {
		return "", err
	}
	return interfaces.NewContentHash(text), nil
}

// List returns the manifest listing of hash, below opts.Path when set.
func (c *Client) List(ctx context.Context, hash interfaces.ContentHash, opts *interfaces.DownloadOptions) (*interfaces.ListResult, error) {
	var path string
	if opts != nil {
		path = opts.Path
	}

	resp, err := c.get(ctx, protocol.ListURL(c.url, hash, path), nil)
	if err != nil {
		return nil, err
	}

	var result interfaces.ListResult
	if err := ResJSON(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Download fetches hash with the given headers and returns the unread
// response. The caller must close its body.
func (c *Client) Download(ctx context.Context, hash interfaces.ContentHash, opts *interfaces.DownloadOptions, headers http.Header) (*http.Response, error) {
	resp, err := c.get(ctx, protocol.DownloadURL(c.url, hash, opts, false), headers)
	if err != nil {
		return nil, err
	}
	return ResOrError(resp)
}

// DownloadData fetches hash and reads the whole body.
func (c *Client) DownloadData(ctx context.Context, hash interfaces.ContentHash, opts *interfaces.DownloadOptions) ([]byte, error) {
	resp, err := c.Download(ctx, hash, opts, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response: %w", err)
	}
	return data, nil
}

// UploadBody posts body to the upload URL resolved from opts and forceRaw
// and returns the hash assigned by the gateway.
func (c *Client) UploadBody(ctx context.Context, body io.Reader, opts *interfaces.UploadOptions, headers http.Header, forceRaw bool) (interfaces.ContentHash, error) {
	resp, err := c.request(ctx, http.MethodPost, protocol.UploadURL(c.url, opts, forceRaw), body, headers)
	if err != nil {
		return "", err
	}
	text, err := ResText(resp)
	if err != nil {
		return "", err
	}
	return interfaces.NewContentHash(text), nil
}

// UploadFile uploads a single file. Without opts.ContentType the body is
// uploaded in raw mode and no content type is sent.
func (c *Client) UploadFile(ctx context.Context, data []byte, opts *interfaces.UploadOptions) (interfaces.ContentHash, error) {
	if opts == nil {
		opts = &interfaces.UploadOptions{}
	}

	headers := http.Header{}
	headers.Set(interfaces.HeaderContentLength, strconv.Itoa(len(data)))
	raw := opts.ContentType == ""
	if !raw {
		headers.Set(interfaces.HeaderContentType, opts.ContentType)
	}

	return c.UploadBody(ctx, bytes.NewReader(data), opts, headers, raw)
}

// Upload dispatches on the payload: []byte and string are uploaded as a
// single file, interfaces.Directory through the DirectoryCodec.
func (c *Client) Upload(ctx context.Context, data any, opts *interfaces.UploadOptions) (interfaces.ContentHash, error) {
	switch v := data.(type) {
	case []byte:
		return c.UploadFile(ctx, v, opts)
	case string:
		return c.UploadFile(ctx, []byte(v), opts)
	case interfaces.Directory:
		return c.UploadDirectory(ctx, v, opts)
	case map[string]interfaces.DirectoryEntry:
		return c.UploadDirectory(ctx, interfaces.Directory(v), opts)
	default:
		return "", fmt.Errorf("%w: %T", interfaces.ErrUnsupportedUpload, data)
	}
}

// DeleteResource removes path from the manifest hash and returns the hash
// of the resulting manifest. The original manifest is left unchanged.
func (c *Client) DeleteResource(ctx context.Context, hash interfaces.ContentHash, path string) (interfaces.ContentHash, error) {
	resp, err := c.request(ctx, http.MethodDelete, protocol.DeleteURL(c.url, hash, path), nil, nil)
	if err != nil {
		return "", err
	}
	text, err := ResText(resp)
	if err != nil {
		return "", err
	}
	return interfaces.NewContentHash(text), nil
}
