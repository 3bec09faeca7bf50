// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific ErrorKind.
const (
	// ErrIncompleteTx is returned when an operation that requires a fully
	// signed transaction, such as computing its transaction ID, is
	// attempted on a transaction with missing signatures.
	ErrIncompleteTx = ErrorKind("ErrIncompleteTx")

	// ErrInvalidXPubKey is returned when a public key placeholder entry
	// embedded in a signature script cannot be decoded or resolved.
	ErrInvalidXPubKey = ErrorKind("ErrInvalidXPubKey")

	// ErrMismatchedTx is returned from UpdateSignatures when the signed
	// transaction does not spend the same previous outputs as the
	// transaction being updated.
	ErrMismatchedTx = ErrorKind("ErrMismatchedTx")

	// ErrMalformedTx is returned when a raw transaction carries trailing
	// bytes past the end of the serialized structure.
	ErrMalformedTx = ErrorKind("ErrMalformedTx")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies a transaction authoring error.  It has full support for
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

// authorError creates an Error given a set of arguments.
func authorError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
