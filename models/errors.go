package models

import "fmt"

// ErrorCode classifies a failed handler operation.
type ErrorCode string

const (
	CodeNotFound        ErrorCode = "not_found"
	CodeNotAvailable    ErrorCode = "not_available"
	CodeInvalidInput    ErrorCode = "invalid_input"
	CodeExternalFailure ErrorCode = "external_failure"
	CodeOutOfDomain     ErrorCode = "out_of_domain"
)

// ServiceError is returned by every handler operation. Failed operations never
// change session state.
type ServiceError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Err       error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is matches any ServiceError carrying the same code, so callers can write
// errors.Is(err, models.ErrNotFound).
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrNotFound        = &ServiceError{Code: CodeNotFound, Message: "not found"}
	ErrNotAvailable    = &ServiceError{Code: CodeNotAvailable, Message: "not available"}
	ErrInvalidInput    = &ServiceError{Code: CodeInvalidInput, Message: "invalid input"}
	ErrExternalFailure = &ServiceError{Code: CodeExternalFailure, Message: "external failure"}
	ErrOutOfDomain     = &ServiceError{Code: CodeOutOfDomain, Message: "out of domain"}
)

func NewNotFound(format string, args ...any) error {
	return &ServiceError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewNotAvailable(format string, args ...any) error {
	return &ServiceError{Code: CodeNotAvailable, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidInput(format string, args ...any) error {
	return &ServiceError{Code: CodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func NewOutOfDomain(format string, args ...any) error {
	return &ServiceError{Code: CodeOutOfDomain, Message: fmt.Sprintf(format, args...)}
}

// NewExternalFailure wraps a failed call to a collaborator (classifier,
// speech, maps). Timeouts are retryable.
func NewExternalFailure(call string, err error, retryable bool) error {
	return &ServiceError{
		Code:      CodeExternalFailure,
		Message:   call + " failed",
		Retryable: retryable,
		Err:       err,
	}
}
