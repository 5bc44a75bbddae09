package sessions

import (
	"errors"
	"fmt"
)

var (
	ErrEndpointNotSet = errors.New("pool management endpoint is not set")
	ErrEmptyCode      = errors.New("no code to execute")
	ErrEmptyUpload    = errors.New("upload returned no file metadata")
)

// APIError is returned for any non-2xx answer from the pool.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("pool %s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("pool %s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}
