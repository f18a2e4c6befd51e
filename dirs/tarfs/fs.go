package tarfs

import (
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"

	"github.com/ruteri/bzz-gateway-client/interfaces"
	"github.com/spf13/afero"
)

// ReadDirectory loads every regular file below root into a Directory keyed
// by slash-separated relative path. Content types are guessed from file
// extensions.
func ReadDirectory(fs afero.Fs, root string) (interfaces.Directory, error) {
	dir := interfaces.Directory{}
	err := afero.Walk(fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		data, err := afero.ReadFile(fs, p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		dir[filepath.ToSlash(rel)] = interfaces.DirectoryEntry{
			Data:        data,
			ContentType: mime.TypeByExtension(filepath.Ext(p)),
			Size:        info.Size(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dir, nil
}

// WriteDirectory writes dir below root. Entry paths cannot escape root.
func WriteDirectory(fs afero.Fs, root string, dir interfaces.Directory) error {
	for p, entry := range dir {
		clean := path.Clean("/" + p)
		if clean == "/" {
			continue
		}
		target := filepath.Join(root, filepath.FromSlash(clean))

		if err := fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", p, err)
		}
		if err := afero.WriteFile(fs, target, entry.Data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", p, err)
		}
	}
	return nil
}
