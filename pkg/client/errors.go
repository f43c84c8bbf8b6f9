package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// ErrMissingToken is returned before any network call when an endpoint
// requires authentication and no token is stored.
var ErrMissingToken = errors.New("missing token: please log in")

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	text := strings.TrimSpace(string(e.Body))
	if text == "" {
		text = http.StatusText(e.StatusCode)
	}
	const maxLen = 200
	if utf8.RuneCountInString(text) > maxLen {
		text = string([]rune(text)[:maxLen-1]) + "…"
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, text)
}

// TransientError wraps a failure that may succeed on retry: a transport
// error or a 408/429/5xx response.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient returns true if err (or any wrapped error) is transient.
func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}
