// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// TxVersion is the current transaction version emitted by this package.
	TxVersion = 1

	// MaxTxInSequenceNum is the maximum sequence number a transaction input
	// can be.
	MaxTxInSequenceNum uint32 = 0xffffffff

	// minTxInPayload is the minimum number of bytes a serialized
	// transaction input can occupy: previous outpoint hash (32) and index
	// (4), one byte for the signature script length, and the sequence (4).
	minTxInPayload = 32 + 4 + 1 + 4

	// minTxOutPayload is the minimum number of bytes a serialized
	// transaction output can occupy: the value (8) and one byte for the
	// script length.
	minTxOutPayload = 8 + 1

	// maxTxInPerMessage is the maximum number of transaction inputs that
	// could possibly fit into a maximum size payload.
	maxTxInPerMessage = MaxPayloadLength / minTxInPayload

	// maxTxOutPerMessage is the maximum number of transaction outputs that
	// could possibly fit into a maximum size payload.
	maxTxOutPerMessage = MaxPayloadLength / minTxOutPayload
)

// OutPoint defines a transaction outpoint which references an output of a
// previous transaction by its hash and output index.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// NewOutPoint returns a new transaction outpoint with the provided hash and
// index.
func NewOutPoint(hash *chainhash.Hash, index uint32) *OutPoint {
	return &OutPoint{
		Hash:  *hash,
		Index: index,
	}
}

// String returns the outpoint in the human-readable form "hash:index".
func (o OutPoint) String() string {
	// Allocate enough for hash string, colon, and 10 digits.  Although
	// at the time of writing, the number of digits can be no greater than
	// the length of the decimal representation of maxTxOutPerMessage, the
	// maximum message payload may increase in the future and this
	// optimization may go unnoticed, so allocate space for 10 decimal
	// digits, which will fit any uint32.
	buf := make([]byte, 2*chainhash.HashSize+1, 2*chainhash.HashSize+1+10)
	copy(buf, o.Hash.String())
	buf[2*chainhash.HashSize] = ':'
	buf = strconv.AppendUint(buf, uint64(o.Index), 10)
	return string(buf)
}

// TxIn defines a transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Sequence         uint32
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction input.
func (t *TxIn) SerializeSize() int {
	// Outpoint hash 32 bytes + outpoint index 4 bytes + sequence 4 bytes +
	// serialized varint size for the length of the signature script +
	// the signature script itself.
	return 40 + VarIntSerializeSize(uint64(len(t.SignatureScript))) +
		len(t.SignatureScript)
}

// NewTxIn returns a new transaction input with the provided previous outpoint
// and signature script with a default sequence of MaxTxInSequenceNum.
func NewTxIn(prevOut *OutPoint, signatureScript []byte) *TxIn {
	return &TxIn{
		PreviousOutPoint: *prevOut,
		SignatureScript:  signatureScript,
		Sequence:         MaxTxInSequenceNum,
	}
}

// TxOut defines a transaction output.
type TxOut struct {
	Value    uint64
	PkScript []byte
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction output.
func (t *TxOut) SerializeSize() int {
	// Value 8 bytes + serialized varint size for the length of PkScript +
	// PkScript bytes.
	return 8 + VarIntSerializeSize(uint64(len(t.PkScript))) + len(t.PkScript)
}

// NewTxOut returns a new transaction output with the provided value and
// public key script.
func NewTxOut(value uint64, pkScript []byte) *TxOut {
	return &TxOut{
		Value:    value,
		PkScript: pkScript,
	}
}

// MsgTx implements the raw transaction serialization format.  Use
// Deserialize to decode an existing transaction and Serialize to produce the
// byte-exact encoding, including any non-canonical details of the original
// where they survive the structured representation.
type MsgTx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// NewMsgTx returns a transaction with the current version and no inputs or
// outputs.
func NewMsgTx() *MsgTx {
	return &MsgTx{
		Version: TxVersion,
		TxIn:    make([]*TxIn, 0, 8),
		TxOut:   make([]*TxOut, 0, 8),
	}
}

// AddTxIn adds a transaction input to the message.
func (msg *MsgTx) AddTxIn(ti *TxIn) {
	msg.TxIn = append(msg.TxIn, ti)
}

// AddTxOut adds a transaction output to the message.
func (msg *MsgTx) AddTxOut(to *TxOut) {
	msg.TxOut = append(msg.TxOut, to)
}

// TxHash generates the hash for the transaction, which is the double SHA-256
// of the serialized transaction.
func (msg *MsgTx) TxHash() chainhash.Hash {
	// TxHash should always calculate a non-witness hash.  Ignore the error
	// returns since the only way the serialize can fail is being out of
	// memory or due to nil pointers, both of which would cause a run-time
	// panic.
	buf := bytes.NewBuffer(make([]byte, 0, msg.SerializeSize()))
	_ = msg.Serialize(buf)
	return chainhash.DoubleHashH(buf.Bytes())
}

// TxID returns the transaction hash in its conventional reversed hexadecimal
// form.
func (msg *MsgTx) TxID() string {
	hash := msg.TxHash()
	return hash.String()
}

// Deserialize decodes a transaction from r into the receiver, replacing any
// existing inputs and outputs.
func (msg *MsgTx) Deserialize(r io.Reader) error {
	version, err := ReadUint32(r)
	if err != nil {
		return err
	}
	msg.Version = int32(version)

	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > maxTxInPerMessage {
		str := fmt.Sprintf("too many transaction inputs to fit into a "+
			"payload [count %d, max %d]", count, maxTxInPerMessage)
		return messageError("MsgTx.Deserialize", ErrTooManyTxIns, str)
	}

	msg.TxIn = make([]*TxIn, 0, count)
	for i := uint64(0); i < count; i++ {
		ti := TxIn{}
		err := readTxIn(r, &ti)
		if err != nil {
			return err
		}
		msg.TxIn = append(msg.TxIn, &ti)
	}

	count, err = ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > maxTxOutPerMessage {
		str := fmt.Sprintf("too many transaction outputs to fit into a "+
			"payload [count %d, max %d]", count, maxTxOutPerMessage)
		return messageError("MsgTx.Deserialize", ErrTooManyTxOuts, str)
	}

	msg.TxOut = make([]*TxOut, 0, count)
	for i := uint64(0); i < count; i++ {
		to := TxOut{}
		err := readTxOut(r, &to)
		if err != nil {
			return err
		}
		msg.TxOut = append(msg.TxOut, &to)
	}

	msg.LockTime, err = ReadUint32(r)
	return err
}

// Serialize encodes the transaction to w in the raw wire format.
func (msg *MsgTx) Serialize(w io.Writer) error {
	err := WriteUint32(w, uint32(msg.Version))
	if err != nil {
		return err
	}

	err = WriteVarInt(w, uint64(len(msg.TxIn)))
	if err != nil {
		return err
	}
	for _, ti := range msg.TxIn {
		err = writeTxIn(w, ti)
		if err != nil {
			return err
		}
	}

	err = WriteVarInt(w, uint64(len(msg.TxOut)))
	if err != nil {
		return err
	}
	for _, to := range msg.TxOut {
		err = writeTxOut(w, to)
		if err != nil {
			return err
		}
	}

	return WriteUint32(w, msg.LockTime)
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction.
func (msg *MsgTx) SerializeSize() int {
	// Version 4 bytes + LockTime 4 bytes + serialized varint size for the
	// number of transaction inputs and outputs.
	n := 8 + VarIntSerializeSize(uint64(len(msg.TxIn))) +
		VarIntSerializeSize(uint64(len(msg.TxOut)))

	for _, txIn := range msg.TxIn {
		n += txIn.SerializeSize()
	}
	for _, txOut := range msg.TxOut {
		n += txOut.SerializeSize()
	}
	return n
}

// Bytes returns the serialized transaction.
func (msg *MsgTx) Bytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, msg.SerializeSize()))
	_ = msg.Serialize(buf)
	return buf.Bytes()
}

// readOutPoint reads the next sequence of bytes from r as an OutPoint.
func readOutPoint(r io.Reader, op *OutPoint) error {
	err := readFull("readOutPoint", r, op.Hash[:])
	if err != nil {
		return err
	}

	op.Index, err = ReadUint32(r)
	return err
}

// writeOutPoint encodes op to w.
func writeOutPoint(w io.Writer, op *OutPoint) error {
	_, err := w.Write(op.Hash[:])
	if err != nil {
		return err
	}
	return WriteUint32(w, op.Index)
}

// readTxIn reads the next sequence of bytes from r as a transaction input.
func readTxIn(r io.Reader, ti *TxIn) error {
	err := readOutPoint(r, &ti.PreviousOutPoint)
	if err != nil {
		return err
	}

	ti.SignatureScript, err = readScript(r, "transaction input signature script")
	if err != nil {
		return err
	}

	ti.Sequence, err = ReadUint32(r)
	return err
}

// writeTxIn encodes ti to w.
func writeTxIn(w io.Writer, ti *TxIn) error {
	err := writeOutPoint(w, &ti.PreviousOutPoint)
	if err != nil {
		return err
	}

	err = WriteVarBytes(w, ti.SignatureScript)
	if err != nil {
		return err
	}

	return WriteUint32(w, ti.Sequence)
}

// readTxOut reads the next sequence of bytes from r as a transaction output.
func readTxOut(r io.Reader, to *TxOut) error {
	var err error
	to.Value, err = ReadUint64(r)
	if err != nil {
		return err
	}

	to.PkScript, err = readScript(r, "transaction output public key script")
	return err
}

// writeTxOut encodes to to w.
func writeTxOut(w io.Writer, to *TxOut) error {
	err := WriteUint64(w, to.Value)
	if err != nil {
		return err
	}
	return WriteVarBytes(w, to.PkScript)
}

// readScript reads a variable length byte array that represents a
// transaction script.  It is encoded as a varInt containing the length of
// the array followed by the bytes themselves.  An error is returned if the
// length is greater than the maximum payload size since it helps protect
// against memory exhaustion attacks and forced panics through malformed
// input.  The fieldName parameter is only used for the error message so it
// provides more context in the error.
func readScript(r io.Reader, fieldName string) ([]byte, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}

	if count > MaxPayloadLength {
		msg := fmt.Sprintf("%s is larger than the max allowed size "+
			"[count %d, max %d]", fieldName, count, MaxPayloadLength)
		return nil, messageError("readScript", ErrScriptTooLong, msg)
	}

	b := make([]byte, count)
	if err := readFull("readScript", r, b); err != nil {
		return nil, err
	}
	return b, nil
}
