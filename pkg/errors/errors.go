package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	// CodeValidation covers malformed user input, such as a command verb
	// missing its required argument.
	CodeValidation Code = "VALIDATION_ERROR"
	// CodeNotFound covers catalog search and detail lookups that resolve
	// to nothing, and watchlist rows that do not exist.
	CodeNotFound Code = "NOT_FOUND"
	// CodeDependency covers transport or parse failures while talking to
	// the storefront API.
	CodeDependency Code = "DEPENDENCY_ERROR"
	// CodeInternal covers storage faults and anything else unexpected.
	CodeInternal Code = "INTERNAL_ERROR"
)

type Error struct {
	code    Code
	message string
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As extracts a coded error from anywhere in the chain, or nil.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.Code() == code
}
