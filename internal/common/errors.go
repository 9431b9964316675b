// Package common defines shared constants and sentinel errors used across
// the vidtube server and its terminal client. Callers should use errors.Is
// to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors.
	ErrorValidation   = errors.New("validation error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorUpload       = errors.New("upload failed")
	ErrorInternal     = errors.New("internal error")
	ErrorRateLimited  = errors.New("too many requests")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenReused  = errors.New("token reuse or already rotated")
	ErrRefreshTokenMissing = errors.New("refresh token is required")
)

// AppError pairs an error kind (one of the sentinels above) with the message
// shown to API clients. The underlying cause, if any, is kept for logging.
type AppError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	return out
}

// NewError builds an AppError of the given kind.
func NewError(kind error, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// WrapError builds an AppError of the given kind carrying cause.
func WrapError(kind error, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

// Validation is a shorthand for NewError(ErrorValidation, message).
func Validation(message string) *AppError { return NewError(ErrorValidation, message) }

// Unauthorized is a shorthand for NewError(ErrorUnauthorized, message).
func Unauthorized(message string) *AppError { return NewError(ErrorUnauthorized, message) }

// Forbidden is a shorthand for NewError(ErrorForbidden, message).
func Forbidden(message string) *AppError { return NewError(ErrorForbidden, message) }

// NotFound is a shorthand for NewError(ErrorNotFound, message).
func NotFound(message string) *AppError { return NewError(ErrorNotFound, message) }

// Conflict is a shorthand for NewError(ErrorConflict, message).
func Conflict(message string) *AppError { return NewError(ErrorConflict, message) }

// MessageOf returns the client-facing message of err: the AppError message
// when present, otherwise the error text of the outermost known kind.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	for _, kind := range []error{
		ErrorValidation, ErrorConflict, ErrorNotFound, ErrorUnauthorized,
		ErrorForbidden, ErrorUpload, ErrorRateLimited, ErrInvalidToken,
		ErrTokenExpired, ErrRefreshTokenReused, ErrRefreshTokenMissing,
	} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "Something went wrong"
}
