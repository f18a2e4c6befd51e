package protocol

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ruteri/bzz-gateway-client/interfaces"
)

// Query parameter names understood by the gateway.
const (
	ParamContentType     = "content_type"
	ParamDefaultPath     = "defaultpath"
	ParamUser            = "user"
	ParamTopic           = "topic"
	ParamName            = "name"
	ParamTime            = "time"
	ParamLevel           = "level"
	ParamProtocolVersion = "protocolVersion"
	ParamSignature       = "signature"

	FlagMeta     = "meta"
	FlagManifest = "manifest"

	// encryptAddr is the address segment that requests an encrypted upload.
	encryptAddr = "encrypt"
)

var modeProtocols = map[interfaces.BzzMode]string{
	interfaces.ModeDefault:   interfaces.ProtocolDefault,
	interfaces.ModeImmutable: interfaces.ProtocolImmutable,
	interfaces.ModeRaw:       interfaces.ProtocolRaw,
}

// ModeProtocol returns the protocol prefix for mode. Unset or unknown modes
// map to the default protocol.
func ModeProtocol(mode interfaces.BzzMode) string {
	if p, ok := modeProtocols[mode]; ok {
		return p
	}
	return interfaces.ProtocolDefault
}

// NormalizeBaseURL validates a gateway URL and ensures it ends with a slash.
func NormalizeBaseURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s", interfaces.ErrInvalidGatewayURL, err.Error())
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not absolute", interfaces.ErrInvalidGatewayURL, raw)
	}
	s := u.String()
	if !strings.HasSuffix(s, "/") {
		s += "/"
	}
	return s, nil
}

func resolveMode(mode interfaces.BzzMode, forceRaw bool) interfaces.BzzMode {
	if forceRaw {
		return interfaces.ModeRaw
	}
	if _, ok := modeProtocols[mode]; ok {
		return mode
	}
	return interfaces.ModeDefault
}

// DownloadURL returns the URL of hash, optionally within opts.Path.
// forceRaw overrides opts.Mode.
func DownloadURL(base string, hash interfaces.ContentHash, opts *interfaces.DownloadOptions, forceRaw bool) string {
	if opts == nil {
		opts = &interfaces.DownloadOptions{}
	}
	mode := resolveMode(opts.Mode, forceRaw)

	var b strings.Builder
	b.WriteString(base)
	b.WriteString(ModeProtocol(mode))
	b.WriteString(hash.String())
	if opts.Path != "" {
		b.WriteString("/")
		b.WriteString(opts.Path)
	}
	if mode == interfaces.ModeRaw && opts.ContentType != "" {
		b.WriteString("?")
		b.WriteString(ParamContentType)
		b.WriteString("=")
		b.WriteString(escapeContentType(opts.ContentType))
	}
	return b.String()
}

// escapeContentType query-escapes a media type but keeps its '/' literal.
func escapeContentType(contentType string) string {
	return strings.ReplaceAll(url.QueryEscape(contentType), "%2F", "/")
}

// UploadURL returns the URL to post new content to. With opts.ManifestHash
// set the URL targets an update of that manifest at opts.Path, otherwise
// opts.Path is ignored.
func UploadURL(base string, opts *interfaces.UploadOptions, forceRaw bool) string {
	if opts == nil {
		opts = &interfaces.UploadOptions{}
	}
	mode := interfaces.ModeDefault
	if forceRaw {
		mode = interfaces.ModeRaw
	}

	var b strings.Builder
	b.WriteString(base)
	b.WriteString(ModeProtocol(mode))
	switch {
	case opts.ManifestHash != "":
		b.WriteString(opts.ManifestHash.String())
		b.WriteString("/")
		b.WriteString(opts.Path)
	case opts.Encrypt:
		b.WriteString(encryptAddr)
	}
	if opts.DefaultPath != "" {
		b.WriteString("?")
		b.WriteString(url.Values{ParamDefaultPath: {opts.DefaultPath}}.Encode())
	}
	return b.String()
}

// DeleteURL returns the URL of path within manifest, to be used with DELETE.
func DeleteURL(base string, manifest interfaces.ContentHash, path string) string {
	return UploadURL(base, &interfaces.UploadOptions{ManifestHash: manifest, Path: path}, false)
}

// HashURL returns the URL resolving domain to a content hash.
func HashURL(base, domain string) string {
	return base + interfaces.ProtocolHash + domain
}

// ListURL returns the URL listing hash, optionally below path.
func ListURL(base string, hash interfaces.ContentHash, path string) string {
	u := base + interfaces.ProtocolList + hash.String()
	if path != "" {
		u += "/" + path
	}
	return u
}

// FeedHashURL returns the URL of the feed referenced by a feed manifest.
func FeedHashURL(base string, hash interfaces.ContentHash, flag string) string {
	u := base + interfaces.ProtocolFeed + hash.String()
	if flag != "" {
		u += "?" + url.Values{flag: {"1"}}.Encode()
	}
	return u
}

// FeedURL returns the bzz-feed:/ URL for params. A non-empty flag is added
// as flag=1, e.g. FlagMeta for a metadata read.
func FeedURL(base string, params interfaces.FeedParams, flag string) string {
	q := FeedQuery(params)
	if flag != "" {
		q.Set(flag, "1")
	}
	u := base + interfaces.ProtocolFeed
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// FeedQuery encodes the non-zero fields of params.
func FeedQuery(params interfaces.FeedParams) url.Values {
	q := url.Values{}
	if params.User != "" {
		q.Set(ParamUser, params.User)
	}
	if params.Topic != "" {
		q.Set(ParamTopic, params.Topic)
	}
	if params.Name != "" {
		q.Set(ParamName, params.Name)
	}
	if params.Time != 0 {
		q.Set(ParamTime, strconv.FormatUint(params.Time, 10))
	}
	if params.Level != 0 {
		q.Set(ParamLevel, strconv.FormatUint(uint64(params.Level), 10))
	}
	return q
}

// FeedUpdateURL returns the URL a signed feed update is posted to.
func FeedUpdateURL(base string, meta *interfaces.FeedUpdateRequest, signature string) string {
	q := url.Values{}
	q.Set(ParamTopic, meta.Feed.Topic)
	q.Set(ParamUser, meta.Feed.User)
	q.Set(ParamLevel, strconv.FormatUint(uint64(meta.Epoch.Level), 10))
	q.Set(ParamTime, strconv.FormatUint(meta.Epoch.Time, 10))
	q.Set(ParamProtocolVersion, strconv.FormatUint(uint64(meta.ProtocolVersion), 10))
	q.Set(ParamSignature, signature)
	return base + interfaces.ProtocolFeed + "?" + q.Encode()
}

// ResourceURL returns the bzz-resource:/ URL of hash. With meta set it
// addresses the update template of the resource.
func ResourceURL(base string, hash interfaces.ContentHash, meta bool) string {
	u := base + interfaces.ProtocolResource + hash.String()
	if meta {
		u += "/" + FlagMeta
	}
	return u
}
