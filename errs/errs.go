package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel values for the failure classes the API can report. Handlers wrap
// these in an ApiErr so the responder can map them to a status code, while
// callers inside the service can still test with errors.Is.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrUploadFailed = errors.New("upload failed")
	ErrInternal     = errors.New("internal server error")
)

// ApiErr is an error carrying the HTTP status code it should be reported
// with. Anything that reaches the responder without being an ApiErr is
// treated as an unexpected internal error.
type ApiErr struct {
	StatusCode int
	err        error
	Cause      error
}

func NewApiErr(statusCode int, message string) *ApiErr {
	return &ApiErr{StatusCode: statusCode, err: errors.New(message)}
}

func (e *ApiErr) Error() string {
	return e.err.Error()
}

// GetFullError includes the underlying cause, for logging only. The cause is
// never written into a response body.
func (e *ApiErr) GetFullError() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s -> %s", e.err.Error(), e.Cause.Error())
	}
	return e.err.Error()
}

// allows errors.Is(err, ErrNotFound) etc. on wrapped ApiErr values
func (e *ApiErr) Unwrap() error {
	return e.err
}

func NewUnauthorizedError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusUnauthorized, err: fmt.Errorf("%w: %s", ErrUnauthorized, message)}
}

func NewForbiddenError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusForbidden, err: fmt.Errorf("%w: %s", ErrForbidden, message)}
}

func NewNotFoundError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusNotFound, err: fmt.Errorf("%w: %s", ErrNotFound, message)}
}

func NewBadRequestError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusBadRequest, err: fmt.Errorf("%w: %s", ErrBadRequest, message)}
}

func NewUploadFailedError(message string, cause error) *ApiErr {
	return &ApiErr{StatusCode: http.StatusInternalServerError, err: fmt.Errorf("%w: %s", ErrUploadFailed, message), Cause: cause}
}

func NewInternalError(message string, cause error) *ApiErr {
	return &ApiErr{StatusCode: http.StatusInternalServerError, err: fmt.Errorf("%w: %s", ErrInternal, message), Cause: cause}
}

func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
func IsForbidden(err error) bool    { return errors.Is(err, ErrForbidden) }
func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsBadRequest(err error) bool   { return errors.Is(err, ErrBadRequest) }
