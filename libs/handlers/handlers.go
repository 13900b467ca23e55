package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// AppError is a failure that already knows its http status
type AppError struct {
	Cause     error
	Message   string // description of failure
	ErrorCode string // short error code string
	Code      int    // http status code
}

// Error makes app error an error
func (e *AppError) Error() string {
	msg := "error: " + e.Message
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WrapError with an additional message as an AppError
func WrapError(err error, msg string, passedCode int) *AppError {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		code := passedCode
		if code == 0 {
			code = http.StatusBadRequest
		}
		return &AppError{
			Cause:   err,
			Message: msg,
			Code:    code,
		}
	}
	code := appErr.Code
	if code == 0 {
		code = passedCode
	}
	if len(msg) != 0 {
		msg = fmt.Sprintf("%s: ", msg)
	}
	return &AppError{
		Cause:     appErr.Cause,
		Message:   fmt.Sprintf("%s%s", msg, appErr.Message),
		ErrorCode: appErr.ErrorCode,
		Code:      code,
	}
}

func newAppError(status int, errorCode, message string) *AppError {
	return &AppError{Code: status, ErrorCode: errorCode, Message: message}
}

// BadRequest - 400 with an application error code
func BadRequest(errorCode, message string) *AppError {
	return newAppError(http.StatusBadRequest, errorCode, message)
}

// NotFound - 404 with an application error code
func NotFound(errorCode, message string) *AppError {
	return newAppError(http.StatusNotFound, errorCode, message)
}

// Gone - 410 with an application error code
func Gone(errorCode, message string) *AppError {
	return newAppError(http.StatusGone, errorCode, message)
}

// NotImplemented - 501 with an application error code
func NotImplemented(errorCode, message string) *AppError {
	return newAppError(http.StatusNotImplemented, errorCode, message)
}

// ServerError - 500 with an application error code
func ServerError(errorCode, message string) *AppError {
	return newAppError(http.StatusInternalServerError, errorCode, message)
}

// StatusName is the enumeration style name of an http status, such as
// "BadRequest" or "InternalServerError". 422 keeps its spaced reason phrase.
func StatusName(status int) string {
	if status == http.StatusUnprocessableEntity {
		return "Unprocessable Entity"
	}
	text := http.StatusText(status)
	if text == "" {
		return strconv.Itoa(status)
	}
	name := make([]rune, 0, len(text))
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			name = append(name, r)
		}
	}
	return string(name)
}
