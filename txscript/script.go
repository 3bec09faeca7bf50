// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"encoding/binary"
	"fmt"
)

// PushedData returns the script fragment that pushes the provided data onto
// the stack using the canonical op_push encoding: lengths up to 75 encode as
// a single opcode equal to the length, longer data uses OP_PUSHDATA1,
// OP_PUSHDATA2 or OP_PUSHDATA4 with a little-endian length.
func PushedData(data []byte) []byte {
	dataLen := len(data)

	var prefix []byte
	switch {
	case dataLen <= OP_DATA_75:
		prefix = []byte{byte(dataLen)}

	case dataLen <= 0xff:
		prefix = []byte{OP_PUSHDATA1, byte(dataLen)}

	case dataLen <= 0xffff:
		prefix = make([]byte, 3)
		prefix[0] = OP_PUSHDATA2
		binary.LittleEndian.PutUint16(prefix[1:], uint16(dataLen))

	default:
		prefix = make([]byte, 5)
		prefix[0] = OP_PUSHDATA4
		binary.LittleEndian.PutUint32(prefix[1:], uint32(dataLen))
	}

	script := make([]byte, 0, len(prefix)+dataLen)
	script = append(script, prefix...)
	return append(script, data...)
}

// ExtractDataPushes parses a script that is expected to consist solely of
// data pushes, such as a signature script, and returns the pushed elements
// in order.  OP_0 yields an empty element; the small integer opcodes OP_1
// through OP_16 are returned as single-byte elements holding the opcode
// itself.  An error with the ErrMalformedPush kind is returned
// for truncated pushes or any non-push opcode.
func ExtractDataPushes(script []byte) ([][]byte, error) {
	var pushes [][]byte
	for i := 0; i < len(script); {
		op := script[i]

		var dataLen, lenBytes int
		switch {
		case op <= OP_DATA_75:
			dataLen = int(op)
			lenBytes = 0

		case op == OP_PUSHDATA1:
			if i+1 >= len(script) {
				return nil, scriptError(ErrMalformedPush,
					"truncated OP_PUSHDATA1 length")
			}
			dataLen = int(script[i+1])
			lenBytes = 1

		case op == OP_PUSHDATA2:
			if i+2 >= len(script) {
				return nil, scriptError(ErrMalformedPush,
					"truncated OP_PUSHDATA2 length")
			}
			dataLen = int(binary.LittleEndian.Uint16(script[i+1 : i+3]))
			lenBytes = 2

		case op == OP_PUSHDATA4:
			if i+4 >= len(script) {
				return nil, scriptError(ErrMalformedPush,
					"truncated OP_PUSHDATA4 length")
			}
			dataLen = int(binary.LittleEndian.Uint32(script[i+1 : i+5]))
			lenBytes = 4

		case isSmallInt(op):
			pushes = append(pushes, []byte{op})
			i++
			continue

		default:
			str := fmt.Sprintf("non-push opcode 0x%02x at offset %d", op, i)
			return nil, scriptError(ErrMalformedPush, str)
		}

		start := i + 1 + lenBytes
		if start+dataLen > len(script) {
			str := fmt.Sprintf("push of %d bytes at offset %d exceeds "+
				"script length %d", dataLen, i, len(script))
			return nil, scriptError(ErrMalformedPush, str)
		}
		pushes = append(pushes, script[start:start+dataLen])
		i = start + dataLen
	}
	return pushes, nil
}

// IsPushOnly reports whether the script consists solely of data pushes.
func IsPushOnly(script []byte) bool {
	_, err := ExtractDataPushes(script)
	return err == nil
}
