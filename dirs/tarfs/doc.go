// Package tarfs implements interfaces.DirectoryCodec for server environments
// by streaming directories to and from the gateway as TAR archives.
//
// Entry content types travel in the PAX record ContentTypeRecord. ReadDirectory
// and WriteDirectory bridge a Directory and an afero.Fs, so the same code
// serves the OS filesystem and in-memory filesystems.
//
//	dir, err := tarfs.ReadDirectory(afero.NewOsFs(), "./site")
//	client, err := bzz.NewClient(&bzz.ClientConfig{URL: gateway, Directories: tarfs.New()})
//	hash, err := client.UploadDirectory(ctx, dir, &interfaces.UploadOptions{DefaultPath: "index.html"})
package tarfs
