package bzz

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ruteri/bzz-gateway-client/interfaces"
	"github.com/ruteri/bzz-gateway-client/protocol"
)

// DefaultTimeout applies to the http.Client built when no transport is configured.
const DefaultTimeout = 30 * time.Second

// ClientConfig configures a Client.
type ClientConfig struct {
	// URL of the gateway, e.g. "http://localhost:8500".
	URL string
	// HTTPClient is the transport. Defaults to an http.Client with Timeout.
	HTTPClient interfaces.Doer
	// Directories encodes directory uploads and downloads. Defaults to a
	// codec failing with interfaces.ErrNotImplemented.
	Directories interfaces.DirectoryCodec
	// Log receives request diagnostics. Defaults to a discarding logger.
	Log *slog.Logger
	// Timeout of the default transport. Ignored when HTTPClient is set.
	Timeout time.Duration
}

// Client talks to a bzz gateway.
type Client struct {
	url  string
	doer interfaces.Doer
	dirs interfaces.DirectoryCodec
	log  *slog.Logger
}

var _ interfaces.Gateway = (*Client)(nil)

// NewClient validates cfg and returns a ready Client.
func NewClient(cfg *ClientConfig) (*Client, error) {
	base, err := protocol.NormalizeBaseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	doer := cfg.HTTPClient
	if doer == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		doer = &http.Client{Timeout: timeout}
	}

	dirs := cfg.Directories
	if dirs == nil {
		dirs = NotImplementedDirectories{}
	}

	log := cfg.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		url:  base,
		doer: doer,
		dirs: dirs,
		log:  log,
	}, nil
}

// URL returns the normalized gateway URL, ending with a slash.
func (c *Client) URL() string {
	return c.url
}

func (c *Client) request(ctx context.Context, method, url string, body io.Reader, headers http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("could not initialize request: %w", err)
	}
	for name, values := range headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	if cl := req.Header.Get(interfaces.HeaderContentLength); cl != "" {
		if n, err := strconv.ParseInt(cl, 10, 64); err == nil {
			req.ContentLength = n
		}
	}

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		c.log.Debug("Gateway request failed",
			slog.String("method", method),
			slog.String("url", url),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return nil, err
	}

	c.log.Debug("Gateway request",
		slog.String("method", method),
		slog.String("url", url),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))
	return resp, nil
}

func (c *Client) get(ctx context.Context, url string, headers http.Header) (*http.Response, error) {
	return c.request(ctx, http.MethodGet, url, nil, headers)
}
