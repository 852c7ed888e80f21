package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCoordinate is returned when latitude or longitude is malformed or out of range.
	ErrInvalidCoordinate = errors.New("invalid coordinate format")
	// ErrInvalidRating is returned when a cleanliness rating is not an integer between 1 and 5.
	ErrInvalidRating = errors.New("cleanliness must be between 1 and 5")
	// ErrEmptyDescription is returned when a toilet description is blank after sanitizing.
	ErrEmptyDescription = errors.New("description is required")
	// ErrInvalidUsername is returned when a username does not match the allowed shape.
	ErrInvalidUsername = errors.New("username must be 3-20 characters, letters/numbers/underscore only")
	// ErrInvalidEmail is returned when an email address does not match the allowed shape.
	ErrInvalidEmail = errors.New("please enter a valid email address")
	// ErrWeakPassword is returned when a password is shorter than 8 characters.
	ErrWeakPassword = errors.New("password must be at least 8 characters long")

	// ErrDuplicateUsername is returned when the username is taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateUser is returned when the store rejects a user insert on a unique index.
	ErrDuplicateUser = errors.New("username or email already registered")

	// ErrInvalidCredentials is returned for both unknown usernames and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthenticated is returned when an operation requires a signed-in user.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrToiletNotFound is returned when a toilet id does not exist.
	ErrToiletNotFound = errors.New("toilet not found")
)

// Kind classifies an error for presentation.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindConflict   Kind = "CONFLICT"
	KindAuth       Kind = "AUTH"
	KindNotFound   Kind = "NOT_FOUND"
	KindInternal   Kind = "INTERNAL"
)

var kinds = []struct {
	err  error
	kind Kind
	code string
}{
	{ErrInvalidCoordinate, KindValidation, "INVALID_COORDINATE"},
	{ErrInvalidRating, KindValidation, "INVALID_RATING"},
	{ErrEmptyDescription, KindValidation, "EMPTY_DESCRIPTION"},
	{ErrInvalidUsername, KindValidation, "INVALID_USERNAME"},
	{ErrInvalidEmail, KindValidation, "INVALID_EMAIL"},
	{ErrWeakPassword, KindValidation, "WEAK_PASSWORD"},
	{ErrDuplicateUsername, KindConflict, "DUPLICATE_USERNAME"},
	{ErrDuplicateEmail, KindConflict, "DUPLICATE_EMAIL"},
	{ErrDuplicateUser, KindConflict, "DUPLICATE_USER"},
	{ErrInvalidCredentials, KindAuth, "INVALID_CREDENTIALS"},
	{ErrUnauthenticated, KindAuth, "UNAUTHENTICATED"},
	{ErrToiletNotFound, KindNotFound, "TOILET_NOT_FOUND"},
}

// KindOf reports the kind of err, looking through wrapped errors.
func KindOf(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// generic 500 so storage details never reach the client.
func MapErrorToHTTP(err error) *HTTPError {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return NewHTTPError(statusFor(k.kind), k.err.Error(), k.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}

func statusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
