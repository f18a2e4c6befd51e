package bzz

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ruteri/bzz-gateway-client/digest"
	"github.com/ruteri/bzz-gateway-client/interfaces"
	"github.com/ruteri/bzz-gateway-client/protocol"
)

// GetFeedMetadata reads the update template for the next update of the feed.
func (c *Client) GetFeedMetadata(ctx context.Context, params interfaces.FeedParams) (*interfaces.FeedUpdateRequest, error) {
	resp, err := c.get(ctx, protocol.FeedURL(c.url, params, protocol.FlagMeta), nil)
	if err != nil {
		return nil, err
	}

	var meta interfaces.FeedUpdateRequest
	if err := ResJSON(resp, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// GetFeedChunk returns the unread response carrying the latest feed value.
// The caller must close its body.
func (c *Client) GetFeedChunk(ctx context.Context, params interfaces.FeedParams) (*http.Response, error) {
	resp, err := c.get(ctx, protocol.FeedURL(c.url, params, ""), nil)
	if err != nil {
		return nil, err
	}
	return ResOrError(resp)
}

// GetFeedContent reads the latest feed value.
func (c *Client) GetFeedContent(ctx context.Context, params interfaces.FeedParams) ([]byte, error) {
	resp, err := c.GetFeedChunk(ctx, params)
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

// CreateFeedManifest stores a manifest pointing at the feed and returns its hash.
func (c *Client) CreateFeedManifest(ctx context.Context, params interfaces.FeedParams) (interfaces.ContentHash, error) {
	resp, err := c.request(ctx, http.MethodPost, protocol.FeedURL(c.url, params, protocol.FlagManifest), http.NoBody, nil)
	if err != nil {
		return "", err
	}

	// The gateway answers with a JSON string.
	var hash string
	if err := ResJSON(resp, &hash); err != nil {
		return "", err
	}
	return interfaces.NewContentHash(hash), nil
}

// PostSignedFeedUpdate publishes data as the update described by meta with
// the caller-produced signature over digest.FeedDigest(meta, data).
func (c *Client) PostSignedFeedUpdate(ctx context.Context, meta *interfaces.FeedUpdateRequest, data []byte, signature []byte) error {
	if _, err := digest.EncodeFeedUpdate(meta, data); err != nil {
		return err
	}
	if len(signature) != crypto.SignatureLength {
		return &interfaces.InvalidLengthError{Field: "signature", Expected: crypto.SignatureLength, Actual: len(signature)}
	}

	headers := http.Header{}
	headers.Set(interfaces.HeaderContentLength, strconv.Itoa(len(data)))
	headers.Set(interfaces.HeaderContentType, "application/octet-stream")

	url := protocol.FeedUpdateURL(c.url, meta, hexutil.Encode(signature))
	resp, err := c.request(ctx, http.MethodPost, url, bytes.NewReader(data), headers)
	if err != nil {
		return err
	}
	return discard(resp)
}

// GetResourceMetadata reads the update template of the legacy resource hash.
func (c *Client) GetResourceMetadata(ctx context.Context, hash interfaces.ContentHash) (*interfaces.ResourceUpdateRequest, error) {
	resp, err := c.get(ctx, protocol.ResourceURL(c.url, hash, true), nil)
	if err != nil {
		return nil, err
	}

	var meta interfaces.ResourceUpdateRequest
	if err := ResJSON(resp, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// PostSignedResourceUpdate publishes data as the legacy resource update
// described by meta with the caller-produced signature over
// digest.ResourceDigest(meta, data).
func (c *Client) PostSignedResourceUpdate(ctx context.Context, meta *interfaces.ResourceUpdateRequest, data []byte, signature []byte) error {
	if _, err := digest.EncodeResourceUpdate(meta, data); err != nil {
		return err
	}

	body, err := json.Marshal(interfaces.SignedResourceUpdate{
		ResourceUpdateRequest: *meta,
		Data:                  hexutil.Encode(data),
		Signature:             hexutil.Encode(signature),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal resource update: %w", err)
	}

	headers := http.Header{}
	headers.Set(interfaces.HeaderContentLength, strconv.Itoa(len(body)))
	headers.Set(interfaces.HeaderContentType, "application/json")

	resp, err := c.request(ctx, http.MethodPost, protocol.ResourceURL(c.url, "", false), bytes.NewReader(body), headers)
	if err != nil {
		return err
	}
	return discard(resp)
}
