package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidArgument marks a malformed request parameter, e.g. a negative page.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupportedCurrency marks a currency code outside the supported set.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	// ErrNotFound marks an address, transaction or row that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUpstreamFailure marks an explorer API that answered with an unexpected
	// status or could not be reached at all.
	ErrUpstreamFailure = errors.New("upstream failure")
	// ErrSchemaValidation marks a transformed payload that does not match the
	// normalized shape.
	ErrSchemaValidation = errors.New("schema validation failed")
	// ErrConflict marks a duplicate registration.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized marks missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

// Error pairs one of the sentinel kinds with a message meant for the caller.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an error of the given kind with a formatted message.
func New(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a new error of the given kind.
func Wrap(kind error, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// Status maps an error to the HTTP status it is surfaced with.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, ErrUnsupportedCurrency),
		errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUpstreamFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-facing message, without wrapped causes.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
