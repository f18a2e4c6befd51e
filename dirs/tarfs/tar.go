package tarfs

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ruteri/bzz-gateway-client/interfaces"
)

// MediaType is the content type of TAR uploads and downloads.
const MediaType = "application/x-tar"

// ContentTypeRecord is the PAX record carrying an entry's content type.
const ContentTypeRecord = "SCHILY.xattr.user.swarm.content-type"

// WriteTar writes dir as a TAR archive, entries sorted by path.
func WriteTar(w io.Writer, dir interfaces.Directory) error {
	paths := make([]string, 0, len(dir))
	for p := range dir {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	tw := tar.NewWriter(w)
	for _, p := range paths {
		entry := dir[p]
		hdr := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     strings.TrimPrefix(p, "/"),
			Mode:     0644,
			Size:     int64(len(entry.Data)),
		}
		if entry.ContentType != "" {
			hdr.PAXRecords = map[string]string{ContentTypeRecord: entry.ContentType}
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("failed to write tar header for %s: %w", p, err)
		}
		if _, err := tw.Write(entry.Data); err != nil {
			return fmt.Errorf("failed to write tar entry %s: %w", p, err)
		}
	}
	return tw.Close()
}

// ReadTar reads the regular files of a TAR archive into a Directory.
func ReadTar(r io.Reader) (interfaces.Directory, error) {
	dir := interfaces.Directory{}
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return dir, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("failed to read tar entry %s: %w", hdr.Name, err)
		}
		dir[hdr.Name] = interfaces.DirectoryEntry{
			Data:        data,
			ContentType: hdr.PAXRecords[ContentTypeRecord],
			Size:        hdr.Size,
		}
	}
}
