// Package multipart implements interfaces.DirectoryCodec the way form-based
// environments do: uploads are multipart/form-data bodies with one part per
// entry, downloads walk the manifest listing and fetch each entry.
package multipart

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sort"
	"strconv"

	"github.com/ruteri/bzz-gateway-client/interfaces"
)

// Codec uploads directories as multipart forms.
type Codec struct{}

var _ interfaces.DirectoryCodec = (*Codec)(nil)

// New returns a multipart directory codec.
func New() *Codec {
	return &Codec{}
}

// UploadDirectory posts dir as a multipart form. Each part is named after
// its entry path and carries the entry content type.
func (c *Codec) UploadDirectory(ctx context.Context, gw interfaces.Gateway, dir interfaces.Directory, opts *interfaces.UploadOptions) (interfaces.ContentHash, error) {
	var buf bytes.Buffer
	contentType, err := WriteForm(&buf, dir)
	if err != nil {
		return "", err
	}

	headers := http.Header{}
	headers.Set(interfaces.HeaderContentType, contentType)
	headers.Set(interfaces.HeaderContentLength, strconv.Itoa(buf.Len()))
	return gw.UploadBody(ctx, &buf, opts, headers, false)
}

// WriteForm encodes dir as multipart/form-data and returns the content type
// including the boundary.
func WriteForm(w io.Writer, dir interfaces.Directory) (string, error) {
	paths := make([]string, 0, len(dir))
	for p := range dir {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	mw := multipart.NewWriter(w)
	for _, p := range paths {
		entry := dir[p]
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p, p))
		if entry.ContentType != "" {
			h.Set(interfaces.HeaderContentType, entry.ContentType)
		}
		part, err := mw.CreatePart(h)
		if err != nil {
			return "", fmt.Errorf("failed to create part %s: %w", p, err)
		}
		if _, err := part.Write(entry.Data); err != nil {
			return "", fmt.Errorf("failed to write part %s: %w", p, err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}
	return mw.FormDataContentType(), nil
}

// DownloadDirectory lists the manifest hash recursively and downloads every
// entry through the default protocol.
func (c *Codec) DownloadDirectory(ctx context.Context, gw interfaces.Gateway, hash interfaces.ContentHash) (interfaces.Directory, error) {
	dir := interfaces.Directory{}
	if err := c.collect(ctx, gw, hash, "", dir); err != nil {
		return nil, err
	}
	return dir, nil
}

func (c *Codec) collect(ctx context.Context, gw interfaces.Gateway, hash interfaces.ContentHash, prefix string, dir interfaces.Directory) error {
	list, err := gw.List(ctx, hash, &interfaces.DownloadOptions{Path: prefix})
	if err != nil {
		return err
	}

	for _, entry := range list.Entries {
		// The root entry mirrors the default path and is not part of the directory.
		if entry.Path == "" {
			continue
		}
		if _, seen := dir[entry.Path]; seen {
			continue
		}
		data, err := download(ctx, gw, hash, entry.Path)
		if err != nil {
			return err
		}
		dir[entry.Path] = interfaces.DirectoryEntry{
			Data:        data,
			ContentType: entry.ContentType,
			Size:        int64(len(data)),
		}
	}

	for _, p := range list.CommonPrefixes {
		if p == prefix {
			continue
		}
		if err := c.collect(ctx, gw, hash, p, dir); err != nil {
			return err
		}
	}
	return nil
}

func download(ctx context.Context, gw interfaces.Gateway, hash interfaces.ContentHash, path string) ([]byte, error) {
	resp, err := gw.Download(ctx, hash, &interfaces.DownloadOptions{Path: path}, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	return data, nil
}
