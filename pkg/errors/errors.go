// Package errors defines the coded errors shared by the chartkit CLI and
// HTTP API.
//
// Chart rendering itself never fails: missing or malformed data renders as
// an empty chart. Errors come from the surfaces around it (document import,
// the pipeline, the store, the cache, the rasterizer and the server), and
// each carries a [Code] that decides how it is reported:
//
//	INVALID_*        bad input, HTTP 400
//	*NOT_FOUND       missing file or saved chart, HTTP 404
//	UNAVAILABLE      Redis, MongoDB or rsvg-convert unreachable, HTTP 503
//	TIMEOUT          request deadline exceeded, HTTP 504
//	UNSUPPORTED      format or feature not available, HTTP 501
//	INTERNAL_ERROR   anything else, HTTP 500
//
// Usage:
//
//	if err := errors.ValidateChart(name); err != nil {
//	    return err // INVALID_CHART
//	}
//	return errors.Wrap(errors.ErrCodeInvalidData, err, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code. It is the "code" field of API
// error responses.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidChart  Code = "INVALID_CHART"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidData   Code = "INVALID_DATA"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeChartNotFound Code = "CHART_NOT_FOUND"

	ErrCodeUnavailable Code = "UNAVAILABLE"
	ErrCodeTimeout     Code = "TIMEOUT"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

var statuses = map[Code]int{
	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeInvalidChart:  http.StatusBadRequest,
	ErrCodeInvalidFormat: http.StatusBadRequest,
	ErrCodeInvalidData:   http.StatusBadRequest,
	ErrCodeInvalidPath:   http.StatusBadRequest,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeFileNotFound:  http.StatusNotFound,
	ErrCodeChartNotFound: http.StatusNotFound,
	ErrCodeUnavailable:   http.StatusServiceUnavailable,
	ErrCodeTimeout:       http.StatusGatewayTimeout,
	ErrCodeUnsupported:   http.StatusNotImplemented,
	ErrCodeInternal:      http.StatusInternalServerError,
}

// Status returns the HTTP status for c. Unknown codes map to 500.
func (c Code) Status() int {
	if s, ok := statuses[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Temporary reports whether retrying the same request may succeed.
func (c Code) Temporary() bool {
	return c == ErrCodeUnavailable || c == ErrCodeTimeout
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error with code and a formatted message that wraps cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether err's outermost code is code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// HTTPStatus returns the status the API responds with for err.
func HTTPStatus(err error) int {
	return GetCode(err).Status()
}

// Temporary reports whether err carries a code worth retrying.
func Temporary(err error) bool {
	return GetCode(err).Temporary()
}

// UserMessage returns the message of a coded error without its code
// prefix or cause, and err.Error() otherwise.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
