package bzz

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/ruteri/bzz-gateway-client/interfaces"
)

// StatusText returns the reason phrase of resp, falling back to the
// standard text for its status code.
func StatusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// ResOrError returns resp when its status is 2xx. Otherwise the body is
// closed and an *interfaces.HTTPError is returned.
func ResOrError(resp *http.Response) (*http.Response, error) {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	if resp.Body != nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
	return nil, interfaces.NewHTTPError(resp.StatusCode, StatusText(resp))
}

// ResText reads the body of a successful response as text.
func ResText(resp *http.Response) (string, error) {
	resp, err := ResOrError(resp)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read response: %w", err)
	}
	return string(body), nil
}

// ResJSON decodes the body of a successful response into v.
func ResJSON(resp *http.Response, v any) error {
	resp, err := ResOrError(resp)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("could not parse response: %w", err)
	}
	return nil
}

// discard drains and closes the body of a successful response.
func discard(resp *http.Response) error {
	resp, err := ResOrError(resp)
	if err != nil {
		return err
	}
	io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}
