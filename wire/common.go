// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// MaxPayloadLength is the maximum number of bytes a serialized
	// transaction (or any variable-length element within one) is allowed to
	// claim.  It exists purely to bound allocations driven by attacker
	// controlled length prefixes.
	MaxPayloadLength = 1024 * 1024 * 32 // 32MB
)

var (
	// littleEndian is a convenience variable since binary.LittleEndian is
	// quite long.
	littleEndian = binary.LittleEndian
)

// readFull reads exactly len(buf) bytes, converting a short read into a
// MessageError with the ErrUnexpectedEOF kind so callers can distinguish
// truncated input from other failures.  A clean io.EOF on the first byte is
// passed through untouched.
func readFull(op string, r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	switch err {
	case nil:
		return nil
	case io.EOF:
		return err
	}
	msg := fmt.Sprintf("unexpected end of input while reading %s", op)
	return messageError(op, ErrUnexpectedEOF, msg)
}

// ReadUint8 reads a single byte from r.
func ReadUint8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if err := readFull("ReadUint8", r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint16 reads a little-endian uint16 from r.
func ReadUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if err := readFull("ReadUint16", r, buf[:]); err != nil {
		return 0, err
	}
	return littleEndian.Uint16(buf[:]), nil
}

// ReadUint32 reads a little-endian uint32 from r.
func ReadUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if err := readFull("ReadUint32", r, buf[:]); err != nil {
		return 0, err
	}
	return littleEndian.Uint32(buf[:]), nil
}

// ReadUint64 reads a little-endian uint64 from r.
func ReadUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if err := readFull("ReadUint64", r, buf[:]); err != nil {
		return 0, err
	}
	return littleEndian.Uint64(buf[:]), nil
}

// WriteUint8 writes a single byte to w.
func WriteUint8(w io.Writer, val uint8) error {
	buf := [1]byte{val}
	_, err := w.Write(buf[:])
	return err
}

// WriteUint16 writes a little-endian uint16 to w.
func WriteUint16(w io.Writer, val uint16) error {
	var buf [2]byte
	littleEndian.PutUint16(buf[:], val)
	_, err := w.Write(buf[:])
	return err
}

// WriteUint32 writes a little-endian uint32 to w.
func WriteUint32(w io.Writer, val uint32) error {
	var buf [4]byte
	littleEndian.PutUint32(buf[:], val)
	_, err := w.Write(buf[:])
	return err
}

// WriteUint64 writes a little-endian uint64 to w.
func WriteUint64(w io.Writer, val uint64) error {
	var buf [8]byte
	littleEndian.PutUint64(buf[:], val)
	_, err := w.Write(buf[:])
	return err
}

// ReadVarInt reads a variable length integer from r and returns it as a
// uint64.
//
// Note that non-canonical encodings (a wider discriminant than the value
// requires) are accepted, since serializers in the wild emit them and the
// decoded transaction must round trip regardless.
func ReadVarInt(r io.Reader) (uint64, error) {
	discriminant, err := ReadUint8(r)
	if err != nil {
		return 0, err
	}

	switch discriminant {
	case 0xff:
		return ReadUint64(r)

	case 0xfe:
		sv, err := ReadUint32(r)
		return uint64(sv), err

	case 0xfd:
		sv, err := ReadUint16(r)
		return uint64(sv), err

	default:
		return uint64(discriminant), nil
	}
}

// WriteVarInt serializes val to w using a variable number of bytes depending
// on its value.
func WriteVarInt(w io.Writer, val uint64) error {
	if val < 0xfd {
		return WriteUint8(w, uint8(val))
	}

	if val <= 0xffff {
		if err := WriteUint8(w, 0xfd); err != nil {
			return err
		}
		return WriteUint16(w, uint16(val))
	}

	if val <= 0xffffffff {
		if err := WriteUint8(w, 0xfe); err != nil {
			return err
		}
		return WriteUint32(w, uint32(val))
	}

	if err := WriteUint8(w, 0xff); err != nil {
		return err
	}
	return WriteUint64(w, val)
}

// VarIntSerializeSize returns the number of bytes it would take to serialize
// val as a variable length integer.
func VarIntSerializeSize(val uint64) int {
	// The value is small enough to be represented by itself, so it's
	// just 1 byte.
	if val < 0xfd {
		return 1
	}

	// Discriminant 1 byte plus 2 bytes for the uint16.
	if val <= 0xffff {
		return 3
	}

	// Discriminant 1 byte plus 4 bytes for the uint32.
	if val <= 0xffffffff {
		return 5
	}

	// Discriminant 1 byte plus 8 bytes for the uint64.
	return 9
}

// ReadVarBytes reads a variable length byte array.  A byte array is encoded
// as a varInt containing the length of the array followed by the bytes
// themselves.  An error is returned if the length is greater than the
// passed maxAllowed parameter which helps protect against memory exhaustion
// attacks and forced panics through malformed input.  The fieldName
// parameter is only used for the error message so it provides more context in
// the error.
func ReadVarBytes(r io.Reader, maxAllowed uint32, fieldName string) ([]byte, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}

	// Prevent byte array larger than the max message size.  It would
	// be possible to cause memory exhaustion and panics without a sane
	// upper bound on this count.
	if count > uint64(maxAllowed) {
		msg := fmt.Sprintf("%s is larger than the max allowed size "+
			"[count %d, max %d]", fieldName, count, maxAllowed)
		return nil, messageError("ReadVarBytes", ErrVarBytesTooLong, msg)
	}

	b := make([]byte, count)
	if err := readFull("ReadVarBytes", r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// WriteVarBytes serializes a variable length byte array to w as a varInt
// containing the number of bytes, followed by the bytes themselves.
func WriteVarBytes(w io.Writer, bytes []byte) error {
	if err := WriteVarInt(w, uint64(len(bytes))); err != nil {
		return err
	}
	_, err := w.Write(bytes)
	return err
}

// ReadVarString reads a variable length string from r and returns it as a Go
// string.  A variable length string is encoded as a varInt containing the
// length of the string followed by the bytes that represent the string
// itself.  An error is returned if the length is greater than
// MaxPayloadLength since it helps protect against memory exhaustion attacks
// and forced panics through malformed input.
func ReadVarString(r io.Reader) (string, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return "", err
	}

	if count > MaxPayloadLength {
		msg := fmt.Sprintf("variable length string is too long "+
			"[count %d, max %d]", count, MaxPayloadLength)
		return "", messageError("ReadVarString", ErrVarStringTooLong, msg)
	}

	buf := make([]byte, count)
	if err := readFull("ReadVarString", r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// WriteVarString serializes str to w as a varInt containing the length of the
// string followed by the bytes that represent the string itself.
func WriteVarString(w io.Writer, str string) error {
	if err := WriteVarInt(w, uint64(len(str))); err != nil {
		return err
	}
	_, err := w.Write([]byte(str))
	return err
}
