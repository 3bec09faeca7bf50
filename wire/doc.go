// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package wire implements the binary wire format for transactions.

The package provides the low-level primitives the format is built from
(little-endian integers, compact-size variable length integers, and
length-prefixed byte slices and strings) both as functions over io.Reader
and io.Writer and as a sequential Stream cursor over an in-memory buffer,
along with the MsgTx type which models a raw transaction and losslessly
round trips between its structured and serialized forms.

# Errors

Errors returned by this package are either raw io errors for clean end of
input conditions or of type MessageError wrapping an ErrorKind.  Truncated
input is always reported with the ErrUnexpectedEOF kind so callers can
distinguish short payloads from corrupt ones, and the kinds fully support
errors.Is.
*/
package wire
