package bzz

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/ruteri/bzz-gateway-client/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client, err := NewClient(&ClientConfig{URL: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/", client.URL())

	_, err = NewClient(&ClientConfig{URL: "example.com"})
	assert.ErrorIs(t, err, interfaces.ErrInvalidGatewayURL)
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "Not Found", StatusText(newResponse(http.StatusNotFound, "")))
	assert.Equal(t, "Custom reason", StatusText(&http.Response{StatusCode: 400, Status: "400 Custom reason"}))
	assert.Equal(t, "Bad Request", StatusText(&http.Response{StatusCode: 400}))
}

func TestResOrError(t *testing.T) {
	ok := newResponse(http.StatusOK, "OK")
	res, err := ResOrError(ok)
	require.NoError(t, err)
	assert.Same(t, ok, res)

	_, err = ResOrError(&http.Response{StatusCode: 400, Status: "400 Bad request", Body: http.NoBody})
	var httpErr *interfaces.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, "Bad request", httpErr.Message)
	assert.Equal(t, "Bad request", err.Error())
}

func TestResJSONAndText(t *testing.T) {
	var v map[string]bool
	require.NoError(t, ResJSON(newResponse(http.StatusOK, `{"test":true}`), &v))
	assert.Equal(t, map[string]bool{"test": true}, v)

	text, err := ResText(newResponse(http.StatusOK, "OK"))
	require.NoError(t, err)
	assert.Equal(t, "OK", text)

	var httpErr *interfaces.HTTPError
	assert.ErrorAs(t, ResJSON(newResponse(http.StatusBadRequest, ""), &v), &httpErr)
	_, err = ResText(newResponse(http.StatusBadRequest, ""))
	assert.ErrorAs(t, err, &httpErr)

	err = ResJSON(newResponse(http.StatusOK, "not json"), &v)
	require.Error(t, err)
	assert.False(t, errors.As(err, &httpErr))
}

func TestHash(t *testing.T) {
	client, doer := setupTestClient(t)
	expectedHash := "7a90587bfc04ac4c64aeb1a96bc84f053d3d84cefc79012c9a07dd5230dc1fa4"
	doer.On("Do", requestTo(http.MethodGet, testURL+"bzz-hash:/theswarm.test")).
		Return(newResponse(http.StatusOK, expectedHash+"\n"), nil).Once()

	hash, err := client.Hash(context.Background(), "theswarm.test")
	require.NoError(t, err)
	assert.Equal(t, interfaces.ContentHash(expectedHash), hash)
	doer.AssertExpectations(t)
	doer.AssertNumberOfCalls(t, "Do", 1)
}

func TestList(t *testing.T) {
	client, doer := setupTestClient(t)
	body := `{"common_prefixes":["dir/"],"entries":[{"hash":"abcd","path":"index.html","contentType":"text/html","size":12,"mod_time":"2018-10-08T10:37:28+02:00"}]}`
	doer.On("Do", requestTo(http.MethodGet, testURL+"bzz-list:/test")).Return(newResponse(http.StatusOK, body), nil).Once()
	doer.On("Do", requestTo(http.MethodGet, testURL+"bzz-list:/test/a")).Return(newResponse(http.StatusOK, `{"entries":[]}`), nil).Once()

	res, err := client.List(context.Background(), "test", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"dir/"}, res.CommonPrefixes)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, interfaces.ContentHash("abcd"), res.Entries[0].Hash)
	assert.Equal(t, "index.html", res.Entries[0].Path)
	assert.Equal(t, "text/html", res.Entries[0].ContentType)
	assert.Equal(t, int64(12), res.Entries[0].Size)
	assert.Equal(t, 2018, res.Entries[0].ModTime.Year())

	res, err = client.List(context.Background(), "test", &interfaces.DownloadOptions{Path: "a"})
	require.NoError(t, err)
	assert.Empty(t, res.Entries)
	assert.Nil(t, res.CommonPrefixes)
	doer.AssertExpectations(t)
}

func TestList_Errors(t *testing.T) {
	client, doer := setupTestClient(t)
	doer.On("Do", requestTo(http.MethodGet, testURL+"bzz-list:/missing")).Return(newResponse(http.StatusNotFound, ""), nil).Once()
	doer.On("Do", requestTo(http.MethodGet, testURL+"bzz-list:/garbage")).Return(newResponse(http.StatusOK, "<html>"), nil).Once()

	_, err := client.List(context.Background(), "missing", nil)
	var httpErr *interfaces.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Not Found", httpErr.Message)

	_, err = client.List(context.Background(), "garbage", nil)
	require.Error(t, err)
	assert.False(t, errors.As(err, &httpErr))
}

func TestDownload(t *testing.T) {
	client, doer := setupTestClient(t)
	doer.On("Do", requestTo(http.MethodGet, testURL+"bzz-raw:/test")).Return(newResponse(http.StatusOK, "OK"), nil).Once()

	headers := http.Header{}
	headers.Set(interfaces.HeaderAccept, "application/json")
	res, err := client.Download(context.Background(), "test", &interfaces.DownloadOptions{Mode: interfaces.ModeRaw}, headers)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, "OK", string(body))

	doer.AssertNumberOfCalls(t, "Do", 1)
	req := capturedRequest(doer, 0)
	assert.Equal(t, "application/json", req.Header.Get(interfaces.HeaderAccept))
	assert.Len(t, req.Header, 1)
}

func TestDownload_DefaultMode(t *testing.T) {
	client, doer := setupTestClient(t)
	doer.On("Do", requestTo(http.MethodGet, testURL+"bzz:/test")).Return(newResponse(http.StatusOK, "OK"), nil).Once()

	data, err := client.DownloadData(context.Background(), "test", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("OK"), data)
	doer.AssertExpectations(t)
}

func TestDownload_Errors(t *testing.T) {
	client, doer := setupTestClient(t)
	transportErr := errors.New("connection refused")
	doer.On("Do", requestTo(http.MethodGet, testURL+"bzz:/no")).Return(nil, transportErr).Once()
	doer.On("Do", requestTo(http.MethodGet, testURL+"bzz:/missing")).Return(newResponse(http.StatusNotFound, ""), nil).Once()

	_, err := client.Download(context.Background(), "no", nil, nil)
	assert.Equal(t, transportErr, err)

	_, err = client.DownloadData(context.Background(), "missing", nil)
	var httpErr *interfaces.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Not Found", httpErr.Message)
}

func TestUploadBody(t *testing.T) {
	client, doer := setupTestClient(t)
	doer.On("Do", requestTo(http.MethodPost, testURL+"bzz-raw:/1234/")).Return(newResponse(http.StatusOK, "5678"), nil).Once()

	headers := http.Header{}
	headers.Set(interfaces.HeaderContentLength, "4")
	hash, err := client.UploadBody(context.Background(), nil, &interfaces.UploadOptions{ManifestHash: "1234"}, headers, true)
	require.NoError(t, err)
	assert.Equal(t, interfaces.ContentHash("5678"), hash)

	req := capturedRequest(doer, 0)
	assert.Equal(t, "4", req.Header.Get(interfaces.HeaderContentLength))
	assert.Equal(t, int64(4), req.ContentLength)
}

func TestUploadFile(t *testing.T) {
	client, doer := setupTestClient(t)
	doer.On("Do", requestTo(http.MethodPost, testURL+"bzz-raw:/")).Return(newResponse(http.StatusOK, "1234"), nil).Once()
	doer.On("Do", requestTo(http.MethodPost, testURL+"bzz:/")).Return(newResponse(http.StatusOK, "5678"), nil).Once()

	hash1, err := client.UploadFile(context.Background(), []byte("test"), nil)
	require.NoError(t, err)
	assert.Equal(t, interfaces.ContentHash("1234"), hash1)

	req1 := capturedRequest(doer, 0)
	assert.Equal(t, "4", req1.Header.Get(interfaces.HeaderContentLength))
	assert.Empty(t, req1.Header.Get(interfaces.HeaderContentType))
	assert.Len(t, req1.Header, 1)
	body1, err := io.ReadAll(req1.Body)
	require.NoError(t, err)
	assert.Equal(t, "test", string(body1))

	hash2, err := client.UploadFile(context.Background(), []byte("hello"), &interfaces.UploadOptions{ContentType: "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, interfaces.ContentHash("5678"), hash2)

	req2 := capturedRequest(doer, 1)
	assert.Equal(t, "5", req2.Header.Get(interfaces.HeaderContentLength))
	assert.Equal(t, "text/plain", req2.Header.Get(interfaces.HeaderContentType))
	assert.Len(t, req2.Header, 2)
	doer.AssertNumberOfCalls(t, "Do", 2)
}

func TestUploadFile_HTTPError(t *testing.T) {
	client, doer := setupTestClient(t)
	doer.On("Do", mock.Anything).Return(newResponse(http.StatusBadRequest, "nope"), nil).Once()

	_, err := client.UploadFile(context.Background(), []byte("test"), nil)
	var httpErr *interfaces.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Bad Request", httpErr.Message)
}

func TestUpload_Dispatch(t *testing.T) {
	client, doer := setupTestClient(t)
	doer.On("Do", requestTo(http.MethodPost, testURL+"bzz-raw:/")).Return(newResponse(http.StatusOK, "1234"), nil).Once()
	doer.On("Do", requestTo(http.MethodPost, testURL+"bzz:/")).Return(newResponse(http.StatusOK, "5678"), nil).Once()

	hash1, err := client.Upload(context.Background(), "test", nil)
	require.NoError(t, err)
	assert.Equal(t, interfaces.ContentHash("1234"), hash1)
	assert.Equal(t, "4", capturedRequest(doer, 0).Header.Get(interfaces.HeaderContentLength))

	hash2, err := client.Upload(context.Background(), []byte("hello"), &interfaces.UploadOptions{ContentType: "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, interfaces.ContentHash("5678"), hash2)
	assert.Equal(t, "text/plain", capturedRequest(doer, 1).Header.Get(interfaces.HeaderContentType))

	_, err = client.Upload(context.Background(), interfaces.Directory{}, nil)
	assert.ErrorIs(t, err, interfaces.ErrNotImplemented)

	_, err = client.Upload(context.Background(), map[string]interfaces.DirectoryEntry{}, nil)
	assert.ErrorIs(t, err, interfaces.ErrNotImplemented)

	_, err = client.Upload(context.Background(), 42, nil)
	assert.ErrorIs(t, err, interfaces.ErrUnsupportedUpload)

	doer.AssertNumberOfCalls(t, "Do", 2)
}

func TestDirectories_NotImplemented(t *testing.T) {
	client, doer := setupTestClient(t)

	_, err := client.UploadDirectory(context.Background(), interfaces.Directory{}, nil)
	assert.ErrorIs(t, err, interfaces.ErrNotImplemented)
	assert.EqualError(t, err, "must be implemented by extending client")

	_, err = client.DownloadDirectory(context.Background(), "test")
	assert.ErrorIs(t, err, interfaces.ErrNotImplemented)

	doer.AssertNotCalled(t, "Do", mock.Anything)
}

// stubDirectories records the gateway it was called with.
type stubDirectories struct {
	gw interfaces.Gateway
}

func (s *stubDirectories) UploadDirectory(ctx context.Context, gw interfaces.Gateway, dir interfaces.Directory, opts *interfaces.UploadOptions) (interfaces.ContentHash, error) {
	s.gw = gw
	return "dirhash", nil
}

func (s *stubDirectories) DownloadDirectory(ctx context.Context, gw interfaces.Gateway, hash interfaces.ContentHash) (interfaces.Directory, error) {
	s.gw = gw
	return interfaces.Directory{"a": {Data: []byte(hash)}}, nil
}

func TestDirectories_Override(t *testing.T) {
	codec := &stubDirectories{}
	client, err := NewClient(&ClientConfig{URL: testURL, HTTPClient: new(MockDoer), Directories: codec})
	require.NoError(t, err)

	hash, err := client.Upload(context.Background(), interfaces.Directory{"a": {}}, nil)
	require.NoError(t, err)
	assert.Equal(t, interfaces.ContentHash("dirhash"), hash)
	assert.Same(t, client, codec.gw)

	dir, err := client.DownloadDirectory(context.Background(), "xyz")
	require.NoError(t, err)
	assert.Equal(t, []byte("xyz"), dir["a"].Data)
}

func TestDeleteResource(t *testing.T) {
	client, doer := setupTestClient(t)
	doer.On("Do", requestTo(http.MethodDelete, testURL+"bzz:/1234/test")).Return(newResponse(http.StatusOK, "5678"), nil).Once()
	doer.On("Do", requestTo(http.MethodDelete, testURL+"bzz:/1234/missing")).Return(newResponse(http.StatusNotFound, ""), nil).Once()

	hash, err := client.DeleteResource(context.Background(), "1234", "test")
	require.NoError(t, err)
	assert.Equal(t, interfaces.ContentHash("5678"), hash)

	_, err = client.DeleteResource(context.Background(), "1234", "missing")
	var httpErr *interfaces.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	doer.AssertNumberOfCalls(t, "Do", 2)
}

func TestRequest_ContextCancelled(t *testing.T) {
	client, doer := setupTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doer.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Context().Err() != nil
	})).Return(nil, context.Canceled).Once()

	_, err := client.Hash(ctx, "theswarm.test")
	assert.ErrorIs(t, err, context.Canceled)
	doer.AssertExpectations(t)
}
