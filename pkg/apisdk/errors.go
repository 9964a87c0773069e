package apisdk

import (
	"fmt"
	"net/http"

	"github.com/taskdeck/taskdeck/pkg/httpx"
)

// Error kinds. Every error response carries exactly one of these in its
// "kind" field so clients can switch on it instead of parsing detail text.
const (
	KindValidation   = "validation"
	KindConflict     = "conflict"
	KindNotFound     = "not_found"
	KindUnauthorized = "unauthorized"
	KindStoreFailure = "store_failure"
)

// FieldError pins a validation failure to the input field that caused it.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// APIError is the single error-response shape used across the whole API.
// It implements the error interface and is shared by the server (to write
// HTTP responses) and by the SDK client (to represent failures).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Kind discriminates the failure class
	Kind string `json:"kind"`

	// Detail is a human-readable description
	Detail string `json:"detail"`

	// Fields carries per-field validation failures, when applicable
	Fields []FieldError `json:"fields,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, e.StatusCode, e)
}

// Predefined errors. Detail strings are part of the public API surface and
// must not drift; clients and tests match on them.
var (
	// ErrTokenNotFound is returned when no bearer or body token was supplied.
	ErrTokenNotFound = &APIError{
		StatusCode: http.StatusUnauthorized,
		Kind:       KindUnauthorized,
		Detail:     "Token not found",
	}

	// ErrInvalidToken is returned for any signature, expiry or parse failure.
	ErrInvalidToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Kind:       KindUnauthorized,
		Detail:     "Invalid token",
	}

	// ErrInvalidRefreshToken is returned when the presented refresh token is
	// not in the server-side registry.
	ErrInvalidRefreshToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Kind:       KindUnauthorized,
		Detail:     "Invalid refresh token",
	}

	// ErrEmailTaken is returned when registering an email that already has
	// an account.
	ErrEmailTaken = &APIError{
		StatusCode: http.StatusBadRequest,
		Kind:       KindConflict,
		Detail:     "Email already there, No need to register again.",
	}

	// ErrUnknownEmail is returned at login for an email with no account.
	ErrUnknownEmail = &APIError{
		StatusCode: http.StatusBadRequest,
		Kind:       KindNotFound,
		Detail:     "User is not registered, Sign Up first",
	}

	// ErrWrongOldPassword is returned by a password change whose old password
	// does not match the stored one. Unlike a login failure this is a plain
	// bad-input 400, not a 401.
	ErrWrongOldPassword = &APIError{
		StatusCode: http.StatusBadRequest,
		Kind:       KindValidation,
		Detail:     "Enter correct old password password!",
	}

	// ErrBadCredentials is returned at login when the password does not match.
	ErrBadCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Kind:       KindUnauthorized,
		Detail:     "Email or password is invalid",
	}

	// ErrStoreFailure is the generic 500. Internals are logged server-side
	// only and never leak into the detail.
	ErrStoreFailure = &APIError{
		StatusCode: http.StatusInternalServerError,
		Kind:       KindStoreFailure,
		Detail:     "Database error",
	}
)

// NewValidationError builds a 400 validation error from field failures.
func NewValidationError(fields ...FieldError) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		Kind:       KindValidation,
		Detail:     "Invalid request body",
		Fields:     fields,
	}
}

// NewNotFound builds a 404 for a missing resource.
func NewNotFound(detail string) *APIError {
	return &APIError{
		StatusCode: http.StatusNotFound,
		Kind:       KindNotFound,
		Detail:     detail,
	}
}
