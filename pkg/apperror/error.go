package apperror

import (
	"net/http"
	"strconv"
	"time"
)

// Kind classifies an error for status mapping and diagnostics.
type Kind string

const (
	KindValidation         Kind = "ValidationError"
	KindAbuseCheckFailed   Kind = "AbuseCheckFailed"
	KindRateLimitExceeded  Kind = "RateLimitExceeded"
	KindServiceUnavailable Kind = "ServiceUnavailable"
	KindDispatchFailed     Kind = "DispatchFailed"
	KindBadRequest         Kind = "BadRequest"
	KindUnauthorized       Kind = "Unauthorized"
	KindForbidden          Kind = "Forbidden"
	KindNotFound           Kind = "NotFound"
	KindInternal           Kind = "Internal"
)

type AppError struct {
	Code    int               `json:"code"`
	Kind    Kind              `json:"kind"`
	Message string            `json:"message"`
	Details interface{}       `json:"details,omitempty"`
	Headers map[string]string `json:"-"`
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kindForCode(code),
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

// Validation carries per-field failures so callers can render field feedback.
func Validation(message string, details interface{}) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: message,
		Details: details,
	}
}

func AbuseCheckFailed(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindAbuseCheckFailed,
		Message: message,
		Err:     err,
	}
}

// RateLimitExceeded sets Retry-After in whole seconds, never below one.
func RateLimitExceeded(message string, retryAfter time.Duration) *AppError {
	secs := int(retryAfter.Seconds())
	if secs < 1 {
		secs = 1
	}
	return &AppError{
		Code:    http.StatusTooManyRequests,
		Kind:    KindRateLimitExceeded,
		Message: message,
		Headers: map[string]string{"Retry-After": strconv.Itoa(secs)},
	}
}

// ServiceUnavailable is reported as a 500: the user cannot fix missing configuration.
func ServiceUnavailable(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindServiceUnavailable,
		Message: message,
		Err:     err,
	}
}

func DispatchFailed(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindDispatchFailed,
		Message: message,
		Err:     err,
	}
}

// WithHeader attaches a response header the error handler should emit.
func (e *AppError) WithHeader(key, value string) *AppError {
	if e.Headers == nil {
		e.Headers = make(map[string]string)
	}
	e.Headers[key] = value
	return e
}

func kindForCode(code int) Kind {
	switch code {
	case http.StatusBadRequest:
		return KindBadRequest
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusTooManyRequests:
		return KindRateLimitExceeded
	case http.StatusServiceUnavailable:
		return KindServiceUnavailable
	default:
		return KindInternal
	}
}
