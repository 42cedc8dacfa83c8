package client

import (
	"errors"
	"fmt"
)

// ErrFetchFailed matches every error returned by a search that reached the
// transport: network failures, non-2xx statuses and unparseable bodies.
var ErrFetchFailed = errors.New("document search fetch failed")

// ErrInvalidParameters is returned before any request is sent when the
// request parameters are incomplete.
var ErrInvalidParameters = errors.New("invalid search parameters")

// NetworkError means the request could not be sent or the response not received.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("wordseer request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is reports ErrFetchFailed as a match.
func (e *NetworkError) Is(target error) bool { return target == ErrFetchFailed }

// HTTPStatusError represents a non-2xx response from the WordSeer API.
type HTTPStatusError struct {
	StatusCode int
	Message    string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("wordseer API error %d: %s", e.StatusCode, e.Message)
}

// Is reports ErrFetchFailed as a match.
func (e *HTTPStatusError) Is(target error) bool { return target == ErrFetchFailed }

// ParseError means the response body is not valid JSON or lacks the
// expected shape. Index is the offending record, or -1 for the envelope.
type ParseError struct {
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("parsing search results: record %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("parsing search results: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports ErrFetchFailed as a match.
func (e *ParseError) Is(target error) bool { return target == ErrFetchFailed }

// errorResponse is the JSON structure for API errors.
type errorResponse struct {
	Error string `json:"error"`
}
