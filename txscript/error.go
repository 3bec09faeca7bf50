// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// ErrorKind identifies a kind of script error.
type ErrorKind string

// These constants are used to identify a specific ErrorKind.
const (
	// ErrUnsupportedAddress is returned when a concrete type that
	// implements a coinutil.Address is not a supported type.
	ErrUnsupportedAddress = ErrorKind("ErrUnsupportedAddress")

	// ErrMalformedPush is returned when a script that is expected to
	// consist solely of data pushes is truncated or contains a
	// non-push opcode.
	ErrMalformedPush = ErrorKind("ErrMalformedPush")

	// ErrNotMultisigScript is returned from ExtractMultisigDetails when
	// the provided script is not a multisig script.
	ErrNotMultisigScript = ErrorKind("ErrNotMultisigScript")

	// ErrTooManyRequiredSigs is returned from MultiSigScript when the
	// specified number of required signatures is larger than the number
	// of provided public keys or not a valid small integer.
	ErrTooManyRequiredSigs = ErrorKind("ErrTooManyRequiredSigs")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies a script-related error.  It has full support for
// errors.Is and errors.As, so the caller can ascertain the specific reason
// for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// scriptError creates an Error given a set of arguments.
func scriptError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
