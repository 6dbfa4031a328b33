package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport marks failures to exchange a request with the feed source.
	ErrTransport = errors.New("transport failure")
	// ErrMalformedPayload marks payloads that could not be decoded or validated.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrNotFound is returned when an album is absent even after a fresh fetch.
	ErrNotFound = errors.New("album not found")
	// ErrInvalidLimit is returned for non-positive list limits.
	ErrInvalidLimit = errors.New("limit must be a positive integer")
)

// TransportError describes a failed request. StatusCode is zero when no
// response was received.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %s returned status %d", e.Method, e.URL, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s %s failed", e.Method, e.URL)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrTransport) match any TransportError.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// PayloadError names the entry and field that failed validation. Entry is -1
// when the problem is in the feed envelope rather than a specific entry.
type PayloadError struct {
	Entry int
	Field string
	Err   error
}

func (e *PayloadError) Error() string {
	var msg string
	if e.Entry < 0 {
		msg = fmt.Sprintf("malformed payload: %s", e.Field)
	} else {
		msg = fmt.Sprintf("malformed payload: entry %d: %s", e.Entry, e.Field)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PayloadError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrMalformedPayload) match any PayloadError.
func (e *PayloadError) Is(target error) bool { return target == ErrMalformedPayload }
