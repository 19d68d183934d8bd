package errors

import (
	stderrors "errors"
	"fmt"
)

type ErrorCode string

const (
	// Generic / transport
	ErrInternalServer             ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrInvalidInput               ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData         ErrorCode = "INVALID_REQUEST_DATA"
	ErrUnauthorized               ErrorCode = "UNAUTHORIZED"
	ErrTokenExpired               ErrorCode = "TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "MISSING_AUTHORIZATION_HEADER"
	ErrTooManyAttempts            ErrorCode = "TOO_MANY_ATTEMPTS"
	ErrForbidden                  ErrorCode = "FORBIDDEN"
	ErrAlreadyExists              ErrorCode = "ALREADY_EXISTS"
	ErrGetFailed                  ErrorCode = "GET_FAILED"
	ErrCreateFailed               ErrorCode = "CREATE_FAILED"
	ErrUpdateFailed               ErrorCode = "UPDATE_FAILED"
	ErrDeleteFailed               ErrorCode = "DELETE_FAILED"

	// Not found
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrMeetingNotFound    ErrorCode = "MEETING_NOT_FOUND"
	ErrUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrBeaconNotFound     ErrorCode = "BEACON_NOT_FOUND"
	ErrAttendanceNotFound ErrorCode = "ATTENDANCE_NOT_FOUND"

	// Scheduling
	ErrInvalidWindow   ErrorCode = "INVALID_WINDOW"
	ErrBeaconOverlap   ErrorCode = "BEACON_OVERLAP"
	ErrLocationOverlap ErrorCode = "LOCATION_OVERLAP"

	// Marking
	ErrWindowNotConfigured ErrorCode = "WINDOW_NOT_CONFIGURED"
	ErrNotYetStarted       ErrorCode = "NOT_YET_STARTED"
	ErrAlreadyEnded        ErrorCode = "ALREADY_ENDED"
)

// AppError is the error type returned by services. Code is stable and
// machine readable, Message is safe to show to clients and Err keeps the cause.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func New(code ErrorCode, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches on code so callers can write errors.Is(err, errors.ErrNotYetStarted).
func (e *AppError) Is(target error) bool {
	if e == nil {
		return false
	}
	switch t := target.(type) {
	case ErrorCode:
		return e.Code == t
	case *AppError:
		return t != nil && e.Code == t.Code
	}
	return false
}

func (c ErrorCode) Error() string {
	return string(c)
}

// IsNotFound reports whether the code belongs to the not-found class.
func (c ErrorCode) IsNotFound() bool {
	switch c {
	case ErrNotFound, ErrMeetingNotFound, ErrUserNotFound, ErrBeaconNotFound, ErrAttendanceNotFound:
		return true
	}
	return false
}

// IsConflict reports whether the code is a double-booking rejection.
func (c ErrorCode) IsConflict() bool {
	return c == ErrBeaconOverlap || c == ErrLocationOverlap
}

// IsMarkingRejected reports whether a self-marking was refused by the time gate.
func (c ErrorCode) IsMarkingRejected() bool {
	switch c {
	case ErrWindowNotConfigured, ErrNotYetStarted, ErrAlreadyEnded:
		return true
	}
	return false
}

// CodeOf extracts the AppError code from any error chain.
func CodeOf(err error) (ErrorCode, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr != nil {
		return appErr.Code, true
	}
	return "", false
}

// AsAppError unwraps err to an *AppError. Errors that are not AppErrors are
// wrapped as internal server errors.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr != nil {
		return appErr
	}
	return NewAppError(ErrInternalServer, "internal server error", err)
}
