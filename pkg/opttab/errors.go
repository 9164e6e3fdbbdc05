package opttab

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNotFound matches HTTP errors carrying a 404 status.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a call was rejected before any request was sent.
	ErrInvalidInput = errors.New("invalid input")
)

const errorSnippetBytes = 512

// HTTPError is returned for any response outside the 2xx range.
// Body holds the raw response body; the remote error schema is not interpreted.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	snippet := bodySnippet(e.Body)
	if snippet == "" {
		return fmt.Sprintf("opttab: %s %s: http status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("opttab: %s %s: http status %d: %s", e.Method, e.Path, e.StatusCode, snippet)
}

// Is reports ErrNotFound for 404 responses.
func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// DecodeError is returned when a 2xx response body is not the expected JSON.
type DecodeError struct {
	Path string
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("opttab: decode %s response: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func bodySnippet(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > errorSnippetBytes {
		body = body[:errorSnippetBytes]
	}
	return strings.TrimSpace(string(body))
}
