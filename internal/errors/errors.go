package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidInput is returned for malformed or missing fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmailTaken is returned when registering or updating to an email that already exists.
	ErrEmailTaken = errors.New("Email already registered")
	// ErrInvalidCredentials is returned on login when email or password is wrong.
	// One error for both cases so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("Invalid email or password")
	// ErrInvalidOldPassword is returned when a password change presents the wrong current password.
	ErrInvalidOldPassword = errors.New("Invalid old password")
	// ErrUnauthenticated is returned when no valid identity accompanies a request.
	ErrUnauthenticated = errors.New("Could not validate credentials")
	// ErrAccountDeactivated is returned when an authenticated user's account is disabled.
	ErrAccountDeactivated = errors.New("User account is deactivated")
	// ErrForbidden is returned when the caller's role does not allow the operation.
	ErrForbidden = errors.New("Insufficient privileges")
	// ErrUserNotFound is returned when no user matches the requested id.
	ErrUserNotFound = errors.New("User not found")
	// ErrSelfDelete is returned when a user attempts to delete their own account.
	ErrSelfDelete = errors.New("Cannot delete your own account")
	// ErrPageOutOfRange is returned when a pagination request exceeds the last page.
	ErrPageOutOfRange = errors.New("Page exceeds total pages")
)

type domainError struct {
	kind error
	msg  string
}

func (e *domainError) Error() string { return e.msg }
func (e *domainError) Unwrap() error { return e.kind }

// Invalid returns an ErrInvalidInput with a caller-facing message.
func Invalid(message string) error {
	return &domainError{kind: ErrInvalidInput, msg: message}
}

// Response is the standard JSON envelope for every API reply.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become
// generic 500s; their detail is for logs only and never reaches the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrInvalidOldPassword),
		errors.Is(err, ErrSelfDelete),
		errors.Is(err, ErrPageOutOfRange):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrAccountDeactivated),
		errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
