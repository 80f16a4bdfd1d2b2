// Package domain defines the core domain models for FreteHub.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DomainError represents a business domain error with a structured error code.
// Codes follow the format FH-<AREA>-<NNNN>.
type DomainError struct {
	Code    string // Error code (e.g., "FH-SESS-4000")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
// Two domain errors match when their codes match.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// Area returns the AREA segment of the code ("SESS" for FH-SESS-4010).
func (e *DomainError) Area() string {
	parts := strings.SplitN(e.Code, "-", 3)
	if len(parts) < 3 {
		return ""
	}
	return parts[1]
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// GetErrorArea extracts the code area from an error if it's a DomainError.
func GetErrorArea(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Area()
	}
	return ""
}

// ============================================================================
// Session Errors (SESS)
// ============================================================================

var (
	// ErrEmptyToken indicates a login was attempted without a credential.
	ErrEmptyToken = NewDomainError("FH-SESS-4000", "session token is empty")

	// ErrNotAuthenticated indicates a protected operation ran without a session.
	ErrNotAuthenticated = NewDomainError("FH-SESS-4010", "not authenticated")

	// ErrSessionMalformed indicates persisted session data could not be decoded.
	ErrSessionMalformed = NewDomainError("FH-SESS-4220", "persisted session is malformed")

	// ErrStorageUnavailable indicates the session storage medium failed.
	ErrStorageUnavailable = NewDomainError("FH-SESS-5030", "session storage unavailable")
)

// ============================================================================
// Form Errors (FORM)
// These are programmer errors; user-facing validation never uses them.
// ============================================================================

var (
	// ErrUnknownField indicates a change was sent for a field the form does not declare.
	ErrUnknownField = NewDomainError("FH-FORM-4000", "unknown form field")

	// ErrFieldKind indicates a value of the wrong kind was sent for a field.
	ErrFieldKind = NewDomainError("FH-FORM-4001", "field value has the wrong kind")

	// ErrFormClosed indicates the form was used after it was closed.
	ErrFormClosed = NewDomainError("FH-FORM-4100", "form is closed")
)

// ============================================================================
// Transport Errors (NET)
// ============================================================================

var (
	// ErrRequestFailed indicates the request never completed.
	ErrRequestFailed = NewDomainError("FH-NET-5000", "request failed")

	// ErrUnexpectedResponse indicates the server answered with an unreadable body.
	ErrUnexpectedResponse = NewDomainError("FH-NET-5020", "unexpected response")

	// ErrUnauthorized indicates the server rejected the session credential.
	ErrUnauthorized = NewDomainError("FH-NET-4010", "unauthorized")
)

// ============================================================================
// Configuration Errors (CFG)
// ============================================================================

var (
	// ErrInvalidConfig indicates a configuration value is invalid.
	ErrInvalidConfig = NewDomainError("FH-CFG-4000", "invalid configuration")

	// ErrUnknownConfigKey indicates a configuration key does not exist.
	ErrUnknownConfigKey = NewDomainError("FH-CFG-4040", "unknown configuration key")
)
