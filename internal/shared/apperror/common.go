package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, field+" is required", http.StatusBadRequest)
}

func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, field+" is invalid", http.StatusBadRequest)
}

// ErrBusy is returned when a row lock could not be taken in time. The
// operation did not happen and may be retried.
var ErrBusy = New(
	CodeBusy,
	"Resource is busy, please retry",
	http.StatusServiceUnavailable,
)

var (
	ErrInvalidToken    = New(CodeUnauthorized, "Invalid access token", http.StatusUnauthorized)
	ErrTokenExpired    = New(CodeUnauthorized, "Access token has expired", http.StatusUnauthorized)
	ErrTooManyRequests = New(CodeTooManyRequests, "Too many requests, slow down", http.StatusTooManyRequests)
	ErrRequestInFlight = New(CodeConflict, "A request with this idempotency key is still being processed", http.StatusConflict)
)
