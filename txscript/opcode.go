// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// These constants are the values of the official opcodes used on the wire.
// Only the opcodes the standard script forms are built from are listed.
const (
	OP_0             = 0x00
	OP_DATA_1        = 0x01
	OP_DATA_20       = 0x14
	OP_DATA_32       = 0x20
	OP_DATA_33       = 0x21
	OP_DATA_65       = 0x41
	OP_DATA_75       = 0x4b
	OP_PUSHDATA1     = 0x4c
	OP_PUSHDATA2     = 0x4d
	OP_PUSHDATA4     = 0x4e
	OP_1NEGATE       = 0x4f
	OP_RESERVED      = 0x50
	OP_1             = 0x51
	OP_16            = 0x60
	OP_DUP           = 0x76
	OP_EQUAL         = 0x87
	OP_EQUALVERIFY   = 0x88
	OP_HASH160       = 0xa9
	OP_CHECKSIG      = 0xac
	OP_CHECKMULTISIG = 0xae
)

// isSmallInt returns whether or not the opcode is considered a small integer,
// which is an OP_0, or OP_1 through OP_16.
func isSmallInt(op byte) bool {
	return op == OP_0 || (op >= OP_1 && op <= OP_16)
}

// asSmallInt returns the passed opcode, which must be true according to
// isSmallInt, as an integer.
func asSmallInt(op byte) int {
	if op == OP_0 {
		return 0
	}
	return int(op - (OP_1 - 1))
}

// smallInt returns the opcode associated with the small integer n, which must
// be in the range [0, 16].
func smallInt(n int) byte {
	if n == 0 {
		return OP_0
	}
	return OP_1 + byte(n-1)
}
