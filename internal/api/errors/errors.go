package errors

import (
	"net/http"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindBadRequest       ErrorKind = "bad_request"
	KindNotFound         ErrorKind = "not_found"
	KindMethodNotAllowed ErrorKind = "method_not_allowed"
	KindInternal         ErrorKind = "internal"
)

// Fixed error labels returned to clients.
const (
	MessageNotFound            = "Not found"
	MessageMethodNotAllowed    = "Method not allowed"
	MessageTranscriptionFailed = "Transcription failed"
	MessageInternal            = "Internal server error"
)

// APIError represents a structured API error response.
// It serializes as {"error": ..., "details": ...}.
type APIError struct {
	Kind    ErrorKind `json:"-"`
	Message string    `json:"error"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(message string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: message,
	}
}

// NewMethodNotAllowedError creates an error for a known path hit with the wrong method
func NewMethodNotAllowedError(message string) *APIError {
	return &APIError{
		Kind:    KindMethodNotAllowed,
		Message: message,
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// NewTranscriptionError wraps a failure from the save/inference path. The
// cause's text is passed through to the client as details.
func NewTranscriptionError(cause error) *APIError {
	details := "unknown error"
	if cause != nil && cause.Error() != "" {
		details = cause.Error()
	}
	return &APIError{
		Kind:    KindInternal,
		Message: MessageTranscriptionFailed,
		Details: details,
	}
}
