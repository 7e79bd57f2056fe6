// Package errors provides standardized error handling for the submission
// relay and catalog endpoints.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	ErrCodeMissingFields       ErrorCode = "MISSING_REQUIRED_FIELDS"
	ErrCodeFileTooLarge        ErrorCode = "FILE_TOO_LARGE"
	ErrCodeMailSendFailed      ErrorCode = "MAIL_SEND_FAILED"
	ErrCodeInputParsingFailed  ErrorCode = "INPUT_PARSING_FAILED"
	ErrCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrCodeHandoffIncomplete   ErrorCode = "HANDOFF_INCOMPLETE"
	ErrCodeCatalogLoadFailed   ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodePasswordTooShort    ErrorCode = "PASSWORD_TOO_SHORT"
	ErrCodeUnknown             ErrorCode = "UNKNOWN_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// HTTPStatus maps the error code onto the response contract: validation
// failures are client errors, transport failures are server errors.
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeValidationFailed, ErrCodeMissingFields, ErrCodeFileTooLarge,
		ErrCodeInputParsingFailed, ErrCodePasswordTooShort:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeHandoffIncomplete:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// NewMissingFieldsError reports absent required form fields, naming them
// comma-separated the way the registration and application relays expect.
func NewMissingFieldsError(prefix string, fields []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingFields,
		Message:   fmt.Sprintf("%s%s", prefix, strings.Join(fields, ", ")),
		Retryable: false,
		Metadata:  map[string]interface{}{"fields": fields},
		Timestamp: time.Now(),
	}
}

// NewValidationError reports a single invalid field.
func NewValidationError(field, message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now(),
	}
}

// NewFileTooLargeError reports an attachment over the allowed ceiling.
func NewFileTooLargeError(message string, size, limit int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeFileTooLarge,
		Message:   message,
		Details:   fmt.Sprintf("size=%d limit=%d", size, limit),
		Retryable: false,
		Timestamp: time.Now(),
	}
}

// NewMailSendError wraps a transport failure. Retryable by the caller in the
// sense of manual resubmission only; the relay itself never retries.
func NewMailSendError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMailSendFailed,
		Message:   "Error interno del servidor",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now(),
	}
}

// NewNotFoundError reports an unknown resource id.
func NewNotFoundError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now(),
	}
}

// AsStandardError converts any error into a StandardError, preserving it if
// it already is one.
func AsStandardError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeUnknown,
		Message:   "Error interno del servidor",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now(),
	}
}
