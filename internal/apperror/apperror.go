// Package apperror defines the error taxonomy shared by the outreach
// pipeline and the HTTP layer. Components return tagged *Error values so
// callers branch on an explicit code instead of matching message text.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is the stable discriminant exposed to API clients.
type Code string

const (
	CodeMissingParameters Code = "MISSING_PARAMETERS"
	CodeAuthFailed        Code = "AUTH_FAILED"
	CodeNoEmployeesFound  Code = "NO_EMPLOYEES_FOUND"
	CodeNoValidEmployees  Code = "NO_VALID_EMPLOYEES"
	CodeSearchTimeout     Code = "SEARCH_TIMEOUT"
	CodeDomainTimeout     Code = "DOMAIN_SEARCH_TIMEOUT"
	CodeDomainNotFound    Code = "DOMAIN_NOT_FOUND"
	CodeValidationError   Code = "VALIDATION_ERROR"
	CodeExtractionParse   Code = "EXTRACTION_PARSE_ERROR"
	CodeDraftParse        Code = "DRAFT_PARSE_ERROR"
	CodeServiceError      Code = "SERVICE_ERROR"
)

// Error carries a taxonomy code alongside a user-facing message and the
// wrapped cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a tagged error without a wrapped cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds a tagged error around an underlying cause.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the taxonomy code from an error chain, defaulting to
// SERVICE_ERROR for untagged failures.
func CodeOf(err error) Code {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Code
	}
	return CodeServiceError
}

// MessageOf extracts the user-facing message, falling back to a generic one.
func MessageOf(err error) string {
	var tagged *Error
	if errors.As(err, &tagged) && tagged.Message != "" {
		return tagged.Message
	}
	return "internal error"
}

// HTTPStatus maps a taxonomy code to the status the API returns for it.
func HTTPStatus(code Code) int {
	switch code {
	case CodeMissingParameters, CodeValidationError:
		return http.StatusBadRequest
	case CodeAuthFailed:
		return http.StatusUnauthorized
	case CodeNoEmployeesFound, CodeNoValidEmployees, CodeSearchTimeout, CodeDomainTimeout, CodeDomainNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
