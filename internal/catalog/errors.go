package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential reports that no configured source supplied a token.
	ErrMissingCredential = errors.New("tmdb read token missing")
	// ErrNotFound reports a search that produced no usable match.
	ErrNotFound = errors.New("no tmdb results")
	// ErrInvalidResponse reports a payload that does not match the expected shape.
	ErrInvalidResponse = errors.New("invalid tmdb response")
	// ErrTransport reports a network failure, including request timeouts.
	ErrTransport = errors.New("tmdb transport failure")
)

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Code     int
	Endpoint string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb %s returned HTTP %d", e.Endpoint, e.Code)
}

// Kind classifies err for structured logging.
func Kind(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.As(err, &statusErr):
		return "bad_status"
	case errors.Is(err, ErrInvalidResponse):
		return "invalid_response"
	case errors.Is(err, ErrTransport):
		return "transport"
	default:
		return "unknown"
	}
}
