// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
)

// Stream is a sequential cursor over an in-memory byte buffer that reads and
// writes the primitive elements of the wire format.  Reads consume from the
// current cursor position and writes append to the end of the buffer, so a
// single Stream can be used either to pick apart an existing payload or to
// build a new one.
//
// A read that requires more bytes than remain fails with an error whose kind
// is ErrUnexpectedEOF and leaves the cursor where it was.
type Stream struct {
	buf    []byte
	cursor int
}

// NewStream returns a Stream that reads from the provided bytes.  The slice
// is not copied, so the caller must not mutate it while the stream is in use.
func NewStream(b []byte) *Stream {
	return &Stream{buf: b}
}

// NewWriteStream returns an empty Stream suitable for building a payload.
func NewWriteStream() *Stream {
	return &Stream{}
}

// Bytes returns the entire underlying buffer, including any bytes already
// consumed by reads.
func (s *Stream) Bytes() []byte {
	return s.buf
}

// Remaining returns the number of unread bytes left in the stream.
func (s *Stream) Remaining() int {
	return len(s.buf) - s.cursor
}

// ReadBytes reads and returns the next n bytes from the stream.  Requesting
// more bytes than remain fails without moving the cursor, with the single
// exception that zero bytes can always be read, even at end of input.
func (s *Stream) ReadBytes(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	if n < 0 || n > s.Remaining() {
		msg := fmt.Sprintf("attempt to read %d bytes with %d remaining", n,
			s.Remaining())
		return nil, messageError("Stream.ReadBytes", ErrUnexpectedEOF, msg)
	}
	b := s.buf[s.cursor : s.cursor+n]
	s.cursor += n
	return b, nil
}

// WriteBytes appends the provided bytes to the stream.
func (s *Stream) WriteBytes(b []byte) {
	s.buf = append(s.buf, b...)
}

// ReadUint8 reads a single byte.
func (s *Stream) ReadUint8() (uint8, error) {
	b, err := s.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 reads a little-endian uint16.
func (s *Stream) ReadUint16() (uint16, error) {
	b, err := s.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return littleEndian.Uint16(b), nil
}

// ReadUint32 reads a little-endian uint32.
func (s *Stream) ReadUint32() (uint32, error) {
	b, err := s.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return littleEndian.Uint32(b), nil
}

// ReadUint64 reads a little-endian uint64.
func (s *Stream) ReadUint64() (uint64, error) {
	b, err := s.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return littleEndian.Uint64(b), nil
}

// ReadInt16 reads a little-endian int16.
func (s *Stream) ReadInt16() (int16, error) {
	v, err := s.ReadUint16()
	return int16(v), err
}

// ReadInt32 reads a little-endian int32.
func (s *Stream) ReadInt32() (int32, error) {
	v, err := s.ReadUint32()
	return int32(v), err
}

// ReadInt64 reads a little-endian int64.
func (s *Stream) ReadInt64() (int64, error) {
	v, err := s.ReadUint64()
	return int64(v), err
}

// ReadBool reads a single byte and reports whether it is nonzero.
func (s *Stream) ReadBool() (bool, error) {
	v, err := s.ReadUint8()
	return v != 0, err
}

// WriteUint8 appends a single byte.
func (s *Stream) WriteUint8(v uint8) {
	s.buf = append(s.buf, v)
}

// WriteUint16 appends a little-endian uint16.
func (s *Stream) WriteUint16(v uint16) {
	var b [2]byte
	littleEndian.PutUint16(b[:], v)
	s.buf = append(s.buf, b[:]...)
}

// WriteUint32 appends a little-endian uint32.
func (s *Stream) WriteUint32(v uint32) {
	var b [4]byte
	littleEndian.PutUint32(b[:], v)
	s.buf = append(s.buf, b[:]...)
}

// WriteUint64 appends a little-endian uint64.
func (s *Stream) WriteUint64(v uint64) {
	var b [8]byte
	littleEndian.PutUint64(b[:], v)
	s.buf = append(s.buf, b[:]...)
}

// WriteInt16 appends a little-endian int16.
func (s *Stream) WriteInt16(v int16) {
	s.WriteUint16(uint16(v))
}

// WriteInt32 appends a little-endian int32.
func (s *Stream) WriteInt32(v int32) {
	s.WriteUint32(uint32(v))
}

// WriteInt64 appends a little-endian int64.
func (s *Stream) WriteInt64(v int64) {
	s.WriteUint64(uint64(v))
}

// WriteBool appends a boolean as a single byte.
func (s *Stream) WriteBool(v bool) {
	if v {
		s.WriteUint8(1)
	} else {
		s.WriteUint8(0)
	}
}

// ReadCompactSize reads a compact-size variable length integer.
//
// As with ReadVarInt, non-canonical encodings are accepted.
func (s *Stream) ReadCompactSize() (uint64, error) {
	discriminant, err := s.ReadUint8()
	if err != nil {
		return 0, err
	}

	switch discriminant {
	case 0xff:
		return s.ReadUint64()

	case 0xfe:
		v, err := s.ReadUint32()
		return uint64(v), err

	case 0xfd:
		v, err := s.ReadUint16()
		return uint64(v), err

	default:
		return uint64(discriminant), nil
	}
}

// WriteCompactSize appends val as a compact-size variable length integer.
// Negative values fail with an error whose kind is ErrNegativeCompactSize.
func (s *Stream) WriteCompactSize(val int64) error {
	if val < 0 {
		msg := fmt.Sprintf("attempt to write negative compact size %d", val)
		return messageError("Stream.WriteCompactSize", ErrNegativeCompactSize,
			msg)
	}

	switch {
	case val < 0xfd:
		s.WriteUint8(uint8(val))

	case val <= 0xffff:
		s.WriteUint8(0xfd)
		s.WriteUint16(uint16(val))

	case val <= 0xffffffff:
		s.WriteUint8(0xfe)
		s.WriteUint32(uint32(val))

	default:
		s.WriteUint8(0xff)
		s.WriteUint64(uint64(val))
	}
	return nil
}

// ReadString reads a compact-size length prefix followed by that many bytes
// and returns them as a string.
func (s *Stream) ReadString() (string, error) {
	count, err := s.ReadCompactSize()
	if err != nil {
		return "", err
	}
	if count > uint64(s.Remaining()) {
		msg := fmt.Sprintf("string length %d exceeds %d remaining bytes",
			count, s.Remaining())
		return "", messageError("Stream.ReadString", ErrUnexpectedEOF, msg)
	}
	b, err := s.ReadBytes(int(count))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteString appends a compact-size length prefix followed by the bytes of
// the provided string.
func (s *Stream) WriteString(str string) {
	// Lengths are never negative, so the error is unreachable.
	s.WriteCompactSize(int64(len(str))) //nolint:errcheck
	s.buf = append(s.buf, str...)
}
