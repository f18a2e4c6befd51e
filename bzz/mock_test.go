package bzz

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testURL = "https://example.com/swarm-gateways/"

// MockDoer implements interfaces.Doer for testing
type MockDoer struct {
	mock.Mock
}

func (m *MockDoer) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func newResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func requestTo(method, url string) any {
	return mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == method && req.URL.String() == url
	})
}

func setupTestClient(t *testing.T) (*Client, *MockDoer) {
	doer := new(MockDoer)
	client, err := NewClient(&ClientConfig{URL: testURL, HTTPClient: doer})
	require.NoError(t, err)
	return client, doer
}

// capturedRequest returns the request of the i-th recorded call.
func capturedRequest(m *MockDoer, i int) *http.Request {
	return m.Calls[i].Arguments.Get(0).(*http.Request)
}
