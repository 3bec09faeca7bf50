// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrUnexpectedEOF is returned when the input ends before the number of
	// bytes a read requires are available.
	ErrUnexpectedEOF = ErrorKind("ErrUnexpectedEOF")

	// ErrNegativeCompactSize is returned when attempting to write a negative
	// value as a compact-size integer.
	ErrNegativeCompactSize = ErrorKind("ErrNegativeCompactSize")

	// ErrVarBytesTooLong is returned when a variable-length byte slice
	// exceeds the maximum payload size allowed.
	ErrVarBytesTooLong = ErrorKind("ErrVarBytesTooLong")

	// ErrVarStringTooLong is returned when a variable string exceeds the
	// maximum payload size allowed.
	ErrVarStringTooLong = ErrorKind("ErrVarStringTooLong")

	// ErrTooManyTxIns is returned when the claimed number of transaction
	// inputs exceeds the maximum that could fit in a payload.
	ErrTooManyTxIns = ErrorKind("ErrTooManyTxIns")

	// ErrTooManyTxOuts is returned when the claimed number of transaction
	// outputs exceeds the maximum that could fit in a payload.
	ErrTooManyTxOuts = ErrorKind("ErrTooManyTxOuts")

	// ErrScriptTooLong is returned when a transaction script exceeds the
	// maximum payload size allowed.
	ErrScriptTooLong = ErrorKind("ErrScriptTooLong")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// MessageError identifies an error related to the wire format. It has
// full support for errors.Is and errors.As, so the caller can
// ascertain the specific reason for the error by checking the
// underlying error.
type MessageError struct {
	Func        string
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e MessageError) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e MessageError) Unwrap() error {
	return e.Err
}

// messageError creates a MessageError given a set of arguments.
func messageError(fn string, kind ErrorKind, desc string) MessageError {
	return MessageError{Func: fn, Err: kind, Description: desc}
}
