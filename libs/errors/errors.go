package errors

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrBodyRead - the request body could not be read
	ErrBodyRead = errors.New("failed to read the request body")
	// ErrBodyTooLarge - the request body is over the read limit
	ErrBodyTooLarge = errors.New("request body too large")
	// ErrBodyDecode - the request body could not be decoded into the request type
	ErrBodyDecode = errors.New("failed to decode the request body")
	// ErrNullRequest - a request body was required but none was supplied
	ErrNullRequest = errors.New("request body is required")
	// ErrNotFound - resource not found
	ErrNotFound = errors.New("not found")
)

// ErrorBundle carries a cause, a human readable message and optional data
type ErrorBundle struct {
	cause   error
	message string
	data    interface{}
}

// New creates a new error bundle
func New(cause error, message string, data interface{}) error {
	return &ErrorBundle{
		cause,
		message,
		data,
	}
}

// Wrap wraps an error
func Wrap(cause error, message string) error {
	return &ErrorBundle{
		cause:   cause,
		message: message,
	}
}

// Data from error origin
func (e ErrorBundle) Data() interface{} {
	return e.data
}

// Cause returns the associated cause
func (e ErrorBundle) Cause() error {
	return e.cause
}

// Unwrap returns the associated cause
func (e ErrorBundle) Unwrap() error {
	return e.cause
}

// Error combines the message with the cause
func (e ErrorBundle) Error() string {
	if e.cause == nil {
		return e.message
	}
	return e.message + ": " + e.cause.Error()
}

// DataToString returns string representation of data
func (e ErrorBundle) DataToString() string {
	if e.data == nil {
		return "no error bundle data"
	}
	b, err := json.Marshal(e.data)
	if err != nil {
		return fmt.Sprintf("error retrieving error bundle data %s", err.Error())
	}
	return string(b)
}

// MultiError - allows for multiple errors, not necessarily chained
type MultiError struct {
	Errs []error
}

// Append - append new errors to this multierror, nils are dropped
func (me *MultiError) Append(err ...error) {
	for _, e := range err {
		if e != nil {
			me.Errs = append(me.Errs, e)
		}
	}
}

// Count - get the number of errors contained herein
func (me *MultiError) Count() int {
	return len(me.Errs)
}

// ErrorOrNil returns nil when nothing was appended
func (me *MultiError) ErrorOrNil() error {
	if me == nil || me.Count() == 0 {
		return nil
	}
	return me
}

// Flatten returns the leaf errors of err, expanding multi errors and
// anything else exposing its members through Errors() []error.
func Flatten(err error) []error {
	switch e := err.(type) {
	case nil:
		return nil
	case *MultiError:
		var out []error
		for _, inner := range e.Errs {
			out = append(out, Flatten(inner)...)
		}
		return out
	case interface{ Errors() []error }:
		var out []error
		for _, inner := range e.Errors() {
			out = append(out, Flatten(inner)...)
		}
		return out
	}
	return []error{err}
}

type wErrs struct {
	err   error
	cause error
}

func (we *wErrs) Error() string {
	var result string
	if we.err != nil {
		result = we.err.Error()
	}
	if we.cause != nil {
		result += ": " + we.cause.Error()
	}
	return result
}

// Is - implement interface{ Is(error) bool } for equality check
func (we *wErrs) Is(err error) bool {
	return err == we.err
}

// As - implement interface{ As(target interface{}) bool } for equality check
func (we *wErrs) As(target interface{}) bool {
	return errors.As(we.err, target)
}

// Unwrap - implement unwrap interface to get the cause
func (we *wErrs) Unwrap() error {
	return we.cause
}

// Unwrap - chain every contained error, and everything they wrap, so errors.Is
// and errors.As can see all of them
func (me *MultiError) Unwrap() error {
	var errs []error
	for _, v := range me.Errs {
		vv := v
		for vv != nil {
			errs = append(errs, vv)
			vv = errors.Unwrap(vv)
		}
	}

	var wrappedErr = new(wErrs)
	for _, v := range errs {
		wrappedErr = &wErrs{err: v, cause: wrappedErr}
	}
	return &wErrs{err: errors.New("wrapped errors"), cause: wrappedErr}
}

// Error - implement Error interface
func (me *MultiError) Error() string {
	var errText string
	for _, err := range me.Errs {
		if errText == "" {
			errText = err.Error()
		} else {
			errText += "; " + err.Error()
		}
	}
	return errText
}
