package controller

import (
	"net/http"
	"time"

	"github.com/Ecospace254/employee-sub000/core/errors"
	"github.com/Ecospace254/employee-sub000/core/logger"

	"github.com/labstack/echo/v4"
)

// Response envelopes shared by all controllers.
type (
	SuccessResponse struct {
		Status    int       `json:"status"`
		Message   string    `json:"message"`
		Data      any       `json:"data,omitempty"`
		Timestamp time.Time `json:"timestamp"`
	}

	ErrorResponse struct {
		Status    string           `json:"status"`
		Code      errors.ErrorCode `json:"code"`
		Message   string           `json:"message"`
		Details   any              `json:"details,omitempty"`
		Timestamp time.Time        `json:"timestamp"`
	}
)

// BaseController provides the response helpers embedded by every controller.
type BaseController interface {
	BadRequest(code errors.ErrorCode, message string, details ...any) *echo.HTTPError
	Unauthorized(code errors.ErrorCode, message string, details ...any) *echo.HTTPError
	Forbidden(code errors.ErrorCode, message string, details ...any) *echo.HTTPError
	NotFound(code errors.ErrorCode, message string, details ...any) *echo.HTTPError
	InternalServerError(code errors.ErrorCode, message string, details ...any) *echo.HTTPError
	SuccessResponse(c echo.Context, data any, message string) error
	ErrorResponse(c echo.Context, err error) error
}

type responseHandler struct{}

func NewBaseController() BaseController {
	return &responseHandler{}
}

func NewSuccessResponse(httpStatus int, data any, message string) *SuccessResponse {
	return &SuccessResponse{
		Status:    httpStatus,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func NewErrorResponse(httpStatus int, code errors.ErrorCode, message string, details ...any) *echo.HTTPError {
	resp := &ErrorResponse{
		Status:    "error",
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
	if len(details) > 0 {
		resp.Details = details[0]
	}
	return echo.NewHTTPError(httpStatus, resp)
}

// statusForCode maps application error codes to HTTP statuses.
func statusForCode(code errors.ErrorCode) int {
	switch code {
	case errors.ErrInvalidInput, errors.ErrInvalidRequestData:
		return http.StatusBadRequest
	case errors.ErrUnauthorized, errors.ErrTokenExpired, errors.ErrInvalidTokenFormat, errors.ErrMissingAuthorizationHeader:
		return http.StatusUnauthorized
	case errors.ErrForbidden:
		return http.StatusForbidden
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *responseHandler) BadRequest(code errors.ErrorCode, message string, details ...any) *echo.HTTPError {
	return NewErrorResponse(http.StatusBadRequest, code, message, details...)
}

func (h *responseHandler) Unauthorized(code errors.ErrorCode, message string, details ...any) *echo.HTTPError {
	return NewErrorResponse(http.StatusUnauthorized, code, message, details...)
}

func (h *responseHandler) Forbidden(code errors.ErrorCode, message string, details ...any) *echo.HTTPError {
	return NewErrorResponse(http.StatusForbidden, code, message, details...)
}

func (h *responseHandler) NotFound(code errors.ErrorCode, message string, details ...any) *echo.HTTPError {
	return NewErrorResponse(http.StatusNotFound, code, message, details...)
}

func (h *responseHandler) InternalServerError(code errors.ErrorCode, message string, details ...any) *echo.HTTPError {
	return NewErrorResponse(http.StatusInternalServerError, code, message, details...)
}

func (h *responseHandler) SuccessResponse(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusOK, NewSuccessResponse(http.StatusOK, data, message))
}

// ErrorResponse renders any error, mapping AppError codes to HTTP statuses.
func (h *responseHandler) ErrorResponse(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	code := errors.ErrInternalServer
	msg := "internal server error"

	var appErr *errors.AppError
	if errors.As(err, &appErr) && appErr != nil {
		code = appErr.Code
		if appErr.Message != "" {
			msg = appErr.Message
		}
		status = statusForCode(code)
	} else if err != nil && err.Error() != "" {
		msg = err.Error()
	}

	if status >= http.StatusInternalServerError {
		logger.Error("BaseController:ErrorResponse",
			"status", status,
			"code", code,
			"message", msg,
		)
	}
	return c.JSON(status, &ErrorResponse{
		Status:    "error",
		Code:      code,
		Message:   msg,
		Timestamp: time.Now(),
	})
}
