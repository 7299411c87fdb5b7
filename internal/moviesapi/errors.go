package moviesapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound matches a StatusError carrying 404.
var ErrNotFound = errors.New("movie not found")

// StatusError is a non-2xx response from the API.
type StatusError struct {
	Code   int
	Status string // e.g. "503 Service Unavailable"
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("movies API error: %s", e.status())
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// StatusText is the reason phrase without the numeric code.
func (e *StatusError) StatusText() string {
	if text := strings.TrimSpace(strings.TrimPrefix(e.Status, fmt.Sprint(e.Code))); text != "" {
		return text
	}
	return http.StatusText(e.Code)
}

func (e *StatusError) status() string {
	if e.Status != "" {
		return e.Status
	}
	return fmt.Sprintf("%d %s", e.Code, http.StatusText(e.Code))
}

// TransportError wraps failures that happened before a response was received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
