package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/argentbank/argentctl/internal/common"
)

var (
	// ErrUnavailable indicates the backend could not be reached at all
	// (dial failure, timeout). No HTTP status was received.
	ErrUnavailable = errors.New("server unavailable")

	// ErrMissingToken indicates a 2xx login response that did not carry a
	// credential. Treated as a login failure.
	ErrMissingToken = errors.New("missing token in API response")
)

// RequestError reports a non-2xx backend response. The raw payload is
// preserved so callers can inspect the backend's own error message.
type RequestError struct {
	StatusCode int
	Message    string // backend-provided message, when the payload had one
	Body       string // raw response payload
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed: status %d", e.StatusCode)
}

// Unwrap maps authorization statuses onto the shared sentinel so callers can
// match with errors.Is(err, common.ErrUnauthorized).
func (e *RequestError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return common.ErrUnauthorized
	}
	return nil
}
