package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind represents a category of client-visible failure. Classification happens
// once, at the transport boundary; callers branch on Kind, never on message text.
type Kind string

const (
	// KindTimeout indicates the call exceeded its per-call deadline.
	KindTimeout Kind = "timeout"
	// KindNetwork indicates a connection-level failure before any HTTP response.
	KindNetwork Kind = "network"
	// KindAuthRequired indicates a missing or rejected credential.
	KindAuthRequired Kind = "auth_required"
	// KindNotFound indicates the requested resource does not exist.
	KindNotFound Kind = "not_found"
	// KindServerInternal indicates a server-side fault (5xx).
	KindServerInternal Kind = "server_internal"
	// KindValidation indicates invalid input, rejected locally or by the server.
	KindValidation Kind = "validation"
	// KindUnknown is the fallback for anything unrecognized.
	KindUnknown Kind = "unknown"
)

// APIError represents a structured client error with a kind, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type APIError struct {
	// Kind categorizes the failure
	Kind Kind
	// Message is a human-readable error message (display payload only)
	Message string
	// HTTPStatus is the response status code, or 0 when no response was received
	HTTPStatus int
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// WithStatus returns a copy of the error annotated with an HTTP status code.
func (e *APIError) WithStatus(status int) *APIError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.HTTPStatus = status
	return &clone
}

// Timeout creates a new Timeout error.
func Timeout(message string) *APIError {
	return &APIError{
		Kind:    KindTimeout,
		Message: message,
	}
}

// Timeoutf creates a new Timeout error with formatted message.
func Timeoutf(format string, args ...any) *APIError {
	return &APIError{
		Kind:    KindTimeout,
		Message: fmt.Sprintf(format, args...),
	}
}

// Network creates a new Network error.
func Network(message string) *APIError {
	return &APIError{
		Kind:    KindNetwork,
		Message: message,
	}
}

// Networkf creates a new Network error with formatted message.
func Networkf(format string, args ...any) *APIError {
	return &APIError{
		Kind:    KindNetwork,
		Message: fmt.Sprintf(format, args...),
	}
}

// AuthRequired creates a new AuthRequired error.
func AuthRequired(message string) *APIError {
	return &APIError{
		Kind:    KindAuthRequired,
		Message: message,
	}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: message,
	}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// ServerInternal creates a new ServerInternal error.
func ServerInternal(message string) *APIError {
	return &APIError{
		Kind:    KindServerInternal,
		Message: message,
	}
}

// Validation creates a new Validation error.
func Validation(message string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
	}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Field:   field,
	}
}

// Unknown creates a new Unknown error.
func Unknown(message string) *APIError {
	return &APIError{
		Kind:    KindUnknown,
		Message: message,
	}
}

// Unknownf creates a new Unknown error with formatted message.
func Unknownf(format string, args ...any) *APIError {
	return &APIError{
		Kind:    KindUnknown,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an APIError, preserving the cause.
func Wrap(err error, kind Kind, message string) *APIError {
	if err == nil {
		return nil
	}
	return &APIError{
		Kind:    kind,
		Message: message,
		Cause:   err,
	}
}

// MessageTemplate describes a lazily formatted error message used with Wrapf.
type MessageTemplate struct {
	format string
	args   []any
}

// Messagef creates a lazily formatted message template for Wrapf.
func Messagef(format string, args ...any) MessageTemplate {
	return MessageTemplate{
		format: format,
		args:   args,
	}
}

func (mt MessageTemplate) String() string {
	if len(mt.args) == 0 {
		return mt.format
	}
	return fmt.Sprintf(mt.format, mt.args...)
}

// WrapTemplate wraps an existing error with an APIError using a preconstructed message template.
func WrapTemplate(err error, kind Kind, template MessageTemplate) *APIError {
	if err == nil {
		return nil
	}
	return &APIError{
		Kind:    kind,
		Message: template.String(),
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an APIError and formatted message.
func Wrapf(err error, kind Kind, format string, args ...any) *APIError {
	return WrapTemplate(err, kind, Messagef(format, args...))
}

// isKind checks if an error has a specific kind.
func isKind(err error, kind Kind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool {
	return isKind(err, KindTimeout)
}

// IsNetwork checks if an error is a Network error.
func IsNetwork(err error) bool {
	return isKind(err, KindNetwork)
}

// IsAuthRequired checks if an error is an AuthRequired error.
func IsAuthRequired(err error) bool {
	return isKind(err, KindAuthRequired)
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isKind(err, KindNotFound)
}

// IsServerInternal checks if an error is a ServerInternal error.
func IsServerInternal(err error) bool {
	return isKind(err, KindServerInternal)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isKind(err, KindValidation)
}

// IsInsufficientBalance checks if an error is the server's payment-required
// rejection. The check is status-based; the server's message text is carried
// for display but never inspected.
func IsInsufficientBalance(err error) bool {
	return GetStatus(err) == http.StatusPaymentRequired
}

// GetKind returns the Kind from an error. Non-APIError values, including nil,
// report KindUnknown so callers can always switch on the result.
func GetKind(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// GetStatus returns the HTTP status from an error, or 0 if no response was received.
func GetStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatus
	}
	return 0
}

// GetField returns the Field from an error, or empty string if not an APIError or no field set.
func GetField(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Field
	}
	return ""
}
