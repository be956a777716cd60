package errors

import (
	"fmt"
)

type Error interface {
	error

	Code() int
	Message() string
	Cause() error
}

// Default code defines the code that will be used by default when
// none is given. It is set to 500, Internal Server Error
var DefaultCode = 500

type myError struct {
	code  int
	msg   string
	cause error
}

func (err *myError) Error() string {
	if err.cause == nil {
		return err.msg
	}

	return fmt.Sprintf("%s: %v", err.msg, err.cause)
}

func (err *myError) Code() int {
	return err.code
}

func (err *myError) Message() string {
	return err.msg
}

func (err *myError) Cause() error {
	return err.cause
}

// Unwrap exposes the cause to the standard library errors.Is and errors.As.
func (err *myError) Unwrap() error {
	return err.cause
}

type ErrorEnricher func(error) error

func WithCode(code int) func(error) error {
	return func(err error) error {
		switch err := err.(type) {
		case nil:
			return nil
		case *myError:
			err.code = code
			return err
		}

		// default
		return &myError{
			msg:   err.Error(),
			code:  code,
			cause: nil,
		}
	}
}

// WithCause attaches cause to the error. When the error does not carry a
// code yet, the code of the cause is forwarded.
func WithCause(cause error) func(error) error {
	causeCode := DefaultCode
	if c, ok := cause.(Error); ok {
		causeCode = c.Code()
	}

	return func(err error) error {
		if err == nil {
			return nil
		}

		if myErr, ok := err.(*myError); ok {
			myErr.cause = cause
			return myErr
		}

		return &myError{
			msg:   err.Error(),
			code:  causeCode,
			cause: cause,
		}
	}
}

func New(msg string, fs ...ErrorEnricher) error {
	var err error
	err = &myError{
		msg:   msg,
		code:  DefaultCode,
		cause: nil,
	}

	for _, f := range fs {
		err = f(err)
	}

	return err
}

// CodeOf returns the code carried by err, or DefaultCode when err does not
// implement Error.
func CodeOf(err error) int {
	if err, ok := err.(Error); ok {
		return err.Code()
	}
	return DefaultCode
}
