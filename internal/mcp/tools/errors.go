package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/usestring/wordseer-mcp/internal/session"
	"github.com/usestring/wordseer-mcp/pkg/client"
)

// Error codes for MCP tool responses.
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeHTTPStatus   = "HTTP_STATUS"
	ErrCodeNetwork      = "NETWORK"
	ErrCodeParse        = "PARSE"
	ErrCodeTimeout      = "TIMEOUT"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapSearchError converts an error from a document search to a coded error.
func WrapSearchError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}

	var (
		statusErr *client.HTTPStatusError
		parseErr  *client.ParseError
		netErr    net.Error
	)
	switch {
	case errors.Is(err, client.ErrInvalidParameters), errors.Is(err, session.ErrNoIdentity):
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: err.Error(), Cause: err}
	case errors.As(err, &statusErr):
		coded = &CodedError{
			Code:    ErrCodeHTTPStatus,
			Message: fmt.Sprintf("server returned %d: %s", statusErr.StatusCode, statusErr.Message),
			Cause:   err,
		}
	case errors.As(err, &parseErr):
		coded = &CodedError{Code: ErrCodeParse, Message: "unreadable search response", Cause: err}
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		coded = &CodedError{Code: ErrCodeTimeout, Message: "request timed out", Cause: err}
	default:
		coded = &CodedError{Code: ErrCodeNetwork, Message: "request failed", Cause: err}
	}

	slog.Warn("wordseer search error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
