package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies an application-level error category.
type ErrorCode string

const (
	ErrInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData ErrorCode = "INVALID_REQUEST_DATA"
	ErrUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrForbidden          ErrorCode = "FORBIDDEN"
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrAlreadyExists      ErrorCode = "ALREADY_EXISTS"
	ErrInternalServer     ErrorCode = "INTERNAL_SERVER_ERROR"

	ErrTokenExpired               ErrorCode = "TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "MISSING_AUTHORIZATION_HEADER"

	ErrCreateFailed ErrorCode = "CREATE_FAILED"
	ErrUpdateFailed ErrorCode = "UPDATE_FAILED"
	ErrDeleteFailed ErrorCode = "DELETE_FAILED"
	ErrGetFailed    ErrorCode = "GET_FAILED"
)

// AppError carries an error code, a human-readable message and the underlying
// cause (may be nil).
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError with the given code, message and cause.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// New mirrors the standard library constructor so callers only import one
// errors package.
func New(text string) error {
	return stderrors.New(text)
}

// Is and As re-export the standard helpers.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }
