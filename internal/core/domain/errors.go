package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for local preconditions. Wrap with %w so callers can
// test them with errors.Is.
var (
	// ErrFileNotFound means a caller-supplied media path does not exist.
	ErrFileNotFound = errors.New("media file not found")

	// ErrThumbnailRequired means no thumbnail path was given and
	// automatic extraction was disabled.
	ErrThumbnailRequired = errors.New("thumbnail required: no path given and auto-extract disabled")

	// ErrExtractorUnavailable means automatic extraction was requested
	// but no frame-extraction tool is installed.
	ErrExtractorUnavailable = errors.New("thumbnail extraction tool not available")
)

// TransportError is a network failure or a non-2xx HTTP response.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a platform-reported logical failure delivered inside an
// HTTP success response.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("platform error %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("platform error: %s", e.Message)
}

// ParseError is a response body that decoded but does not match the
// expected shape. Path is the dotted path of the offending field; it is
// empty for envelope-level problems.
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("parse: %s", e.Reason)
}

// MissingField builds the ParseError for a required field absent from a
// response.
func MissingField(path string) *ParseError {
	return &ParseError{Path: path, Reason: "missing required field"}
}

// MalformedEnvelope builds the ParseError for a body that lacks the
// expected envelope shape entirely.
func MalformedEnvelope(reason string) *ParseError {
	return &ParseError{Reason: reason}
}
