package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the application-wide error type. Every error that reaches a
// handler is either an *AppError or gets wrapped into one.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Domain   string      `json:"domain"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a bare AppError.
func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap attaches an underlying error to a new AppError.
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// MarshalJSON hides Err and HTTPCode from the wire representation.
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Domain  string      `json:"domain"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Domain:  e.Domain,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is re-exports errors.Is so callers don't need both imports.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As re-exports errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// --- Common factories ---

// InternalError wraps an unexpected system error.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
}

// ValidationError creates a 400 with field-level details.
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "validation", "Validation failed", http.StatusBadRequest).WithDetails(details)
}

// FieldValidationError creates a 400 for a single named field.
func FieldValidationError(domain, field, message string) *AppError {
	return New(CodeValidationFailed, domain, "Validation failed", http.StatusBadRequest).
		WithDetails(map[string]string{field: message})
}

// NewNotFoundError creates a 404. Unowned resources surface through this as
// well, so a caller can't tell "not mine" from "does not exist".
func NewNotFoundError(domain, message string) *AppError {
	return New(CodeNotFound, domain, message, http.StatusNotFound)
}

// NewAlreadyExistsError creates a duplicate-resource error. Kept at 400 for the
// user-create endpoint contract.
func NewAlreadyExistsError(domain, message string) *AppError {
	return New(CodeAlreadyExists, domain, message, http.StatusBadRequest)
}

// NewUnauthorizedError creates a 401.
func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, "auth", message, http.StatusUnauthorized)
}

// NewForbiddenError creates a 403.
func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, "auth", message, http.StatusForbidden)
}

// NewBadRequestError creates a generic 400.
func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, "request", message, http.StatusBadRequest)
}

// NewMethodNotAllowedError creates a 405.
func NewMethodNotAllowedError() *AppError {
	return New(CodeMethodNotAllowed, "request", "Method not allowed", http.StatusMethodNotAllowed)
}

// ErrInvalidCredentials is returned by the token endpoint as a 400, not a
// 401: the caller is not presenting a token yet.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Unable to authenticate with provided credentials",
	http.StatusBadRequest,
)
