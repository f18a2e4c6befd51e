package tarfs

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ruteri/bzz-gateway-client/interfaces"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDirectory() interfaces.Directory {
	return interfaces.Directory{
		"index.html":    {Data: []byte("<h1>index</h1>"), ContentType: "text/html", Size: 14},
		"css/style.css": {Data: []byte("body {}"), ContentType: "text/css", Size: 7},
		"raw.bin":       {Data: []byte{0x00, 0x01}, Size: 2},
	}
}

func TestWriteReadTar(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTar(&buf, testDirectory()))

	dir, err := ReadTar(&buf)
	require.NoError(t, err)
	assert.Equal(t, testDirectory(), dir)
}

func TestWriteTar_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, WriteTar(&a, testDirectory()))
	require.NoError(t, WriteTar(&b, testDirectory()))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestReadTar_Invalid(t *testing.T) {
	_, err := ReadTar(strings.NewReader(strings.Repeat("x", 1024)))
	assert.Error(t, err)
}

func TestReadWriteDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	root := filepath.FromSlash("/site")
	require.NoError(t, WriteDirectory(fs, root, testDirectory()))

	data, err := afero.ReadFile(fs, filepath.Join(root, "css", "style.css"))
	require.NoError(t, err)
	assert.Equal(t, "body {}", string(data))

	dir, err := ReadDirectory(fs, root)
	require.NoError(t, err)
	require.Len(t, dir, 3)
	assert.Equal(t, []byte("<h1>index</h1>"), dir["index.html"].Data)
	assert.Equal(t, int64(14), dir["index.html"].Size)
	assert.True(t, strings.HasPrefix(dir["index.html"].ContentType, "text/html"))
	assert.Equal(t, []byte("body {}"), dir["css/style.css"].Data)
}

func TestWriteDirectory_StaysBelowRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	root := filepath.FromSlash("/out/site")
	dir := interfaces.Directory{
		"../../etc/passwd": {Data: []byte("nope")},
		"":                 {Data: []byte("root entry")},
	}
	require.NoError(t, WriteDirectory(fs, root, dir))

	exists, err := afero.Exists(fs, filepath.FromSlash("/etc/passwd"))
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = afero.Exists(fs, filepath.Join(root, "etc", "passwd"))
	require.NoError(t, err)
	assert.True(t, exists)
}
