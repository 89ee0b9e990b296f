package service

import (
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound means that record or row is absent in repository or storage.
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"
	// ErrTransport means that the container runtime or the config store could not be reached
	// or answered with something unexpected.
	ErrTransport = "transport_error"
	// ErrMalformedLabel means that a container label is absent or does not parse.
	ErrMalformedLabel = "malformed_label"
	// ErrInternalConsistency means that an eligible container lacks data its eligibility implied.
	ErrInternalConsistency = "internal_consistency"
)

// MyError represents an error within the context of traefikkv services.
type MyError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewMyError creates a new MyError.
func NewMyError(code string, message string, inner error) *MyError {
	return &MyError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func NewInternalServerError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrInternalServerError, message, inner)
}

func NewEntityNotFoundError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrEntityNotFound, message, inner)
}

func NewBadParameterError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrBadParameter, message, inner)
}

func NewTransportError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrTransport, message, inner)
}

// NewMalformedLabelError is not collapsed into an inner MyError: the label message is the useful part.
func NewMalformedLabelError(message string, inner error) *MyError {
	return NewMyError(ErrMalformedLabel, message, inner)
}

func NewInternalConsistencyError(message string, inner error) *MyError {
	return NewMyError(ErrInternalConsistency, message, inner)
}

func (e MyError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e MyError) Unwrap() error {
	return e.Inner
}

// ToMyError returns a pointer to a traefikkv error, or nil if it is not a traefikkv error.
func ToMyError(err error) *MyError {
	var e *MyError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToMyErrorCode returns the code of the error, if available.
func ToMyErrorCode(err error) string {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code
	}
	return ""
}

func IsMyError(err error, code string) bool {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code == code
	}
	return false
}

func IsTransportError(err error) bool {
	return IsMyError(err, ErrTransport)
}

func IsMalformedLabelError(err error) bool {
	return IsMyError(err, ErrMalformedLabel)
}

func IsInternalConsistencyError(err error) bool {
	return IsMyError(err, ErrInternalConsistency)
}
