package interfaces

import (
	"errors"
	"fmt"
)

var (
	// ErrNotImplemented is returned by directory operations when the client was
	// built without an environment-specific DirectoryCodec.
	ErrNotImplemented = errors.New("must be implemented by extending client")

	// ErrInvalidGatewayURL is returned when the configured gateway URL is not absolute.
	ErrInvalidGatewayURL = errors.New("invalid gateway URL")

	// ErrUnsupportedUpload is returned when Upload receives a payload that is
	// neither flat bytes nor a Directory.
	ErrUnsupportedUpload = errors.New("unsupported upload payload")
)

// HTTPError is returned whenever the gateway responds with a non-2xx status.
type HTTPError struct {
	Status  int
	Message string
}

func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

func (e *HTTPError) Error() string {
	return e.Message
}

// InvalidInputError reports a value that cannot be decoded or does not fit
// its protocol field.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// InvalidLengthError reports a fixed-width field whose decoded length does
// not match the protocol width.
type InvalidLengthError struct {
	Field    string
	Expected int
	Actual   int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid %s length: expected %d bytes, got %d", e.Field, e.Expected, e.Actual)
}
