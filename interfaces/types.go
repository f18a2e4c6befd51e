package interfaces

import (
	"strings"
	"time"
)

// ContentHash references immutable content or a manifest on the network.
type ContentHash string

// String returns the hash as issued by the gateway.
func (h ContentHash) String() string {
	return string(h)
}

// NewContentHash trims the surrounding whitespace gateways append to plain
// text hash responses.
func NewContentHash(s string) ContentHash {
	return ContentHash(strings.TrimSpace(s))
}

// BzzMode selects the addressing protocol of a download.
type BzzMode string

const (
	ModeDefault   BzzMode = "default"
	ModeImmutable BzzMode = "immutable"
	ModeRaw       BzzMode = "raw"
)

// Protocol prefixes understood by the gateway.
const (
	ProtocolDefault   = "bzz:/"
	ProtocolImmutable = "bzz-immutable:/"
	ProtocolRaw       = "bzz-raw:/"
	ProtocolList      = "bzz-list:/"
	ProtocolHash      = "bzz-hash:/"
	ProtocolFeed      = "bzz-feed:/"
	ProtocolResource  = "bzz-resource:/"
)

// HTTP header names set by the client.
const (
	HeaderAccept        = "Accept"
	HeaderContentLength = "Content-Length"
	HeaderContentType   = "Content-Type"
)

// DownloadOptions configures a download or listing.
type DownloadOptions struct {
	// Mode selects the protocol prefix, unknown values behave like ModeDefault.
	Mode BzzMode
	// Path addresses a sub-resource within a manifest.
	Path string
	// ContentType is sent as the content_type query parameter in raw mode only.
	ContentType string
}

// UploadOptions configures an upload.
type UploadOptions struct {
	// ContentType of a single file upload. Unset means the body is uploaded raw.
	ContentType string
	// ManifestHash is the base manifest to add the upload to.
	ManifestHash ContentHash
	// Path of the uploaded entry within ManifestHash. Ignored without ManifestHash.
	Path string
	// DefaultPath is the directory entry served at the manifest root.
	DefaultPath string
	// Encrypt requests an encrypted upload.
	Encrypt bool
}

// ListEntry describes a single manifest entry.
type ListEntry struct {
	Hash        ContentHash `json:"hash"`
	Path        string      `json:"path"`
	ContentType string      `json:"contentType"`
	Size        int64       `json:"size"`
	ModTime     time.Time   `json:"mod_time"`
}

// ListResult is the manifest listing returned by the gateway. Either field
// may be absent.
type ListResult struct {
	CommonPrefixes []string    `json:"common_prefixes,omitempty"`
	Entries        []ListEntry `json:"entries,omitempty"`
}

// DirectoryEntry is a single file of a directory upload or download.
type DirectoryEntry struct {
	Data        []byte
	ContentType string
	Size        int64
}

// Directory maps manifest paths to entries.
type Directory map[string]DirectoryEntry
