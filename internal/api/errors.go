package api

import (
	"errors"
	"net/http"
)

// genericFailure is the fallback message when the backend gives none.
const genericFailure = "Request failed"

// Error is a failed gateway call: a non-success envelope, a non-2xx
// status, or a malformed response. Message carries the server-supplied
// text when there is one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return genericFailure
}

// IsAuthError reports whether err is a rejection of the credential
// itself, meaning the stored token should be discarded and the user sent
// back through login.
func IsAuthError(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}
