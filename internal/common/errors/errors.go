// Package errors provides standardized error handling for the assessment pipeline.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeConfiguration    ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeMissingIndicator ErrorCode = "MISSING_INDICATOR"
	ErrCodeUnknownIndicator ErrorCode = "UNKNOWN_INDICATOR"
	ErrCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	ErrCodeService          ErrorCode = "SERVICE_ERROR"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// Fixed user-visible messages.
const (
	MsgConfiguration = "Google API key not found in environment variables"
	MsgService       = "Failed to process business assessment"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the upstream cause, if any.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// HTTPStatus maps the error code to the response status of the HTTP surface.
func (e *StandardError) HTTPStatus() int {
	return HTTPStatus(e.Code)
}

// NewConfigurationError reports that the LLM credential is absent.
func NewConfigurationError() *StandardError {
	return &StandardError{
		Code:      ErrCodeConfiguration,
		Message:   MsgConfiguration,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingIndicatorError reports checklist indicators absent from a submission.
// missing holds "group.indicator" paths in taxonomy order.
func NewMissingIndicatorError(missing []string) *StandardError {
	meta := map[string]interface{}{"missing": missing}
	if len(missing) > 0 {
		if group, indicator, ok := strings.Cut(missing[0], "."); ok {
			meta["group"] = group
			meta["indicator"] = indicator
		}
	}
	return &StandardError{
		Code:      ErrCodeMissingIndicator,
		Message:   "Assessment checklist is missing required indicators",
		Details:   strings.Join(missing, ", "),
		Retryable: false,
		Metadata:  meta,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownIndicatorError reports checklist keys outside the fixed taxonomy.
func NewUnknownIndicatorError(unknown []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownIndicator,
		Message:   "Assessment checklist contains unknown indicators",
		Details:   strings.Join(unknown, ", "),
		Retryable: false,
		Metadata:  map[string]interface{}{"unknown": unknown},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError reports a malformed or incomplete submission.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid assessment request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewServiceError wraps an upstream LLM failure. It is never retried automatically.
func NewServiceError(err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeService,
		Message:   MsgService,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// HTTPStatus maps an error code to an HTTP status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeMissingIndicator, ErrCodeUnknownIndicator, ErrCodeInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// IsCode reports whether err is a StandardError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == code
}
