package errors

import (
	"context"
	"errors"
	"net/http"
)

// FromStatus maps a backend HTTP status and its detail message to an AppError.
// An empty detail falls back to the status text for Message; Upstream keeps it empty.
func FromStatus(status int, detail string) *AppError {
	message := detail
	if message == "" {
		message = http.StatusText(status)
	}
	var code ErrorCode
	switch {
	case status == http.StatusUnauthorized:
		code = ErrCodeUnauthorized
	case status == http.StatusForbidden:
		code = ErrCodeForbidden
	case status == http.StatusNotFound:
		code = ErrCodeNotFound
	case status == http.StatusConflict:
		code = ErrCodeConflict
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		code = ErrCodeTimeout
	case status == http.StatusBadGateway || status == http.StatusServiceUnavailable:
		code = ErrCodeUnavailable
	case status >= 400 && status < 500:
		code = ErrCodeValidation
	default:
		code = ErrCodeInternal
	}
	return &AppError{Code: code, Message: message, Status: status, Upstream: detail}
}

// MapTransportError maps a failure to obtain any HTTP response to an AppError.
// Context errors map to Timeout/Canceled; everything else is Unavailable.
func MapTransportError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	case errors.Is(err, context.Canceled):
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	default:
		return &AppError{
			Code:    ErrCodeUnavailable,
			Message: "The circuit service is unreachable. Please try again later.",
			Cause:   err,
		}
	}
}

// HTTPStatus returns the status the HTTP layer should answer with for err.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeUnavailable:
		return http.StatusBadGateway
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
