// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/xgox-project/walletcore/chaincfg"
	"github.com/xgox-project/walletcore/coinutil"
	"github.com/xgox-project/walletcore/txscript"
	"github.com/xgox-project/walletcore/wire"
)

const (
	// sigPlaceholder is the single byte pushed in place of a missing
	// signature in an unsigned input script.
	sigPlaceholder = 0xff

	// dummySigLen is the worst-case length of a DER signature including
	// the trailing signature hash type byte, used when estimating the
	// size of inputs that are not signed yet.
	dummySigLen = 72
)

// zeroHash is the zero value of a hash, used to detect coinbase inputs.
var zeroHash chainhash.Hash

// InputType identifies the script form of a transaction input.
type InputType byte

// Constants for the recognized input script forms.
const (
	InputNonStandard InputType = iota // None of the recognized forms.
	InputCoinbase                     // Coinbase input.
	InputPubKey                       // Spends a pay-to-pubkey output.
	InputPubKeyHash                   // Spends a pay-to-pubkey-hash output.
	InputScriptHash                   // Spends a p2sh multisig output.
)

// inputTypeToName houses the human-readable strings which describe each
// input type.
var inputTypeToName = []string{
	InputNonStandard: "unknown",
	InputCoinbase:    "coinbase",
	InputPubKey:      "p2pk",
	InputPubKeyHash:  "p2pkh",
	InputScriptHash:  "p2sh",
}

// String implements the Stringer interface by returning the name of the enum
// input type.
func (t InputType) String() string {
	if int(t) >= len(inputTypeToName) {
		return "Invalid"
	}
	return inputTypeToName[t]
}

// TxInput is the parsed view of one transaction input.
//
// Signatures has one entry per required signature with nil marking a slot not
// signed yet.  PubKeys holds the concrete public keys resolved from the
// XPubKeys entries in matching order.  Address is the address of the spent
// output when the script form determines one.
type TxInput struct {
	PrevOut      wire.OutPoint
	ScriptSig    []byte
	Sequence     uint32
	Type         InputType
	Address      coinutil.Address
	NumSigs      int
	PubKeys      [][]byte
	XPubKeys     []*XPubKey
	Signatures   [][]byte
	RedeemScript []byte
}

// complete returns whether the input carries all of its required signatures.
func (in *TxInput) complete() bool {
	var sigs int
	for _, sig := range in.Signatures {
		if sig != nil {
			sigs++
		}
	}
	return sigs >= in.NumSigs
}

// TxOutput is the parsed view of one transaction output.  Address is nil
// when the output script does not pay to an address form.
type TxOutput struct {
	Value    uint64
	PkScript []byte
	Address  coinutil.Address
}

// Details is the structured snapshot of a parsed transaction returned by
// Deserialize.
type Details struct {
	Version  int32
	Inputs   []*TxInput
	Outputs  []*TxOutput
	LockTime uint32
}

// Tx wraps the raw bytes of a transaction together with the parsed view of
// its inputs and outputs.  Values are created with NewTx or NewTxFromHex and
// are not safe for concurrent mutation.
type Tx struct {
	net     *chaincfg.Params
	raw     []byte
	msg     *wire.MsgTx
	inputs  []*TxInput
	outputs []*TxOutput

	// snapshotTaken tracks whether Deserialize already handed out the
	// parse snapshot.
	snapshotTaken bool
}

// NewTx parses a raw serialized transaction.  The entire input must be
// consumed; trailing bytes are rejected as malformed.
func NewTx(raw []byte, net *chaincfg.Params) (*Tx, error) {
	r := bytes.NewReader(raw)
	msg := &wire.MsgTx{}
	if err := msg.Deserialize(r); err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		str := fmt.Sprintf("%d trailing bytes after transaction", r.Len())
		return nil, authorError(ErrMalformedTx, str)
	}

	rawCopy := make([]byte, len(raw))
	copy(rawCopy, raw)
	tx := &Tx{net: net, raw: rawCopy, msg: msg}

	for _, ti := range msg.TxIn {
		tx.inputs = append(tx.inputs, tx.parseInput(ti))
	}
	for _, to := range msg.TxOut {
		_, addr, _ := txscript.ExtractScriptAddr(to.PkScript, net)
		tx.outputs = append(tx.outputs, &TxOutput{
			Value:    to.Value,
			PkScript: to.PkScript,
			Address:  addr,
		})
	}

	log.Tracef("Parsed transaction with %d inputs and %d outputs",
		len(tx.inputs), len(tx.outputs))
	return tx, nil
}

// NewTxFromHex parses a hex-encoded raw transaction.
func NewTxFromHex(rawHex string, net *chaincfg.Params) (*Tx, error) {
	raw, err := hex.DecodeString(rawHex)
	if err != nil {
		return nil, err
	}
	return NewTx(raw, net)
}

// isSigPlaceholder returns whether a pushed script element is the marker for
// a missing signature.
func isSigPlaceholder(push []byte) bool {
	return len(push) == 1 && push[0] == sigPlaceholder
}

// sigOrNil maps a pushed signature element to the signature it carries, with
// nil for the placeholder form.
func sigOrNil(push []byte) []byte {
	if isSigPlaceholder(push) {
		return nil
	}
	return push
}

// parseInput introspects the signature script of a wire-level input into the
// structured form.  Scripts that do not match a recognized spend form are
// reported as InputNonStandard with the raw script preserved.
func (t *Tx) parseInput(ti *wire.TxIn) *TxInput {
	in := &TxInput{
		PrevOut:   ti.PreviousOutPoint,
		ScriptSig: ti.SignatureScript,
		Sequence:  ti.Sequence,
	}

	if ti.PreviousOutPoint.Hash == zeroHash &&
		ti.PreviousOutPoint.Index == 0xffffffff {

		in.Type = InputCoinbase
		return in
	}

	pushes, err := txscript.ExtractDataPushes(ti.SignatureScript)
	if err != nil || len(pushes) == 0 {
		return in
	}

	// A multisig script sig is OP_0 followed by the signatures and the
	// redeem script.
	if len(pushes) >= 2 && len(pushes[0]) == 0 {
		redeem := pushes[len(pushes)-1]
		details, err := txscript.ExtractMultisigDetails(redeem)
		if err == nil {
			return t.parseMultisigInput(in, pushes, redeem, details)
		}
		return in
	}

	switch len(pushes) {
	case 1:
		in.Type = InputPubKey
		in.NumSigs = 1
		in.Signatures = [][]byte{sigOrNil(pushes[0])}

	case 2:
		entry, err := ParseXPubKey(pushes[1], t.net)
		if err != nil {
			log.Debugf("Input %s carries an unresolvable public key "+
				"entry: %v", in.PrevOut, err)
			return in
		}
		in.Type = InputPubKeyHash
		in.NumSigs = 1
		in.Signatures = [][]byte{sigOrNil(pushes[0])}
		in.XPubKeys = []*XPubKey{entry}
		in.PubKeys = [][]byte{entry.PubKey}
		in.Address = entry.Address
	}
	return in
}

// parseMultisigInput fills in the structured form of a p2sh multisig input.
func (t *Tx) parseMultisigInput(in *TxInput, pushes [][]byte, redeem []byte,
	details txscript.MultisigDetails) *TxInput {

	entries := make([]*XPubKey, 0, len(details.PubKeys))
	pubKeys := make([][]byte, 0, len(details.PubKeys))
	for _, rawKey := range details.PubKeys {
		entry, err := ParseXPubKey(rawKey, t.net)
		if err != nil {
			log.Debugf("Multisig input %s carries an unresolvable "+
				"public key entry: %v", in.PrevOut, err)
			return in
		}
		entries = append(entries, entry)
		pubKeys = append(pubKeys, entry.PubKey)
	}

	addr, err := coinutil.NewAddressScriptHash(redeem, t.net)
	if err != nil {
		return in
	}

	sigs := make([][]byte, 0, len(pushes)-2)
	for _, push := range pushes[1 : len(pushes)-1] {
		sigs = append(sigs, sigOrNil(push))
	}

	in.Type = InputScriptHash
	in.NumSigs = details.RequiredSigs
	in.Signatures = sigs
	in.XPubKeys = entries
	in.PubKeys = pubKeys
	in.Address = addr
	in.RedeemScript = redeem
	return in
}

// Deserialize returns the structured snapshot of the transaction the first
// time it is called and (nil, nil) on every later call, mirroring the
// single-shot parse semantics of the storage format this model descends
// from.
func (t *Tx) Deserialize() (*Details, error) {
	if t.snapshotTaken {
		return nil, nil
	}
	t.snapshotTaken = true
	return &Details{
		Version:  t.msg.Version,
		Inputs:   t.inputs,
		Outputs:  t.outputs,
		LockTime: t.msg.LockTime,
	}, nil
}

// Inputs returns the parsed inputs of the transaction.
func (t *Tx) Inputs() []*TxInput {
	return t.inputs
}

// Outputs returns the parsed outputs of the transaction.
func (t *Tx) Outputs() []*TxOutput {
	return t.outputs
}

// Serialize returns the raw serialized transaction.  The result is
// byte-identical to the bytes the transaction was parsed from until
// UpdateSignatures modifies an input.
func (t *Tx) Serialize() []byte {
	raw := make([]byte, len(t.raw))
	copy(raw, t.raw)
	return raw
}

// Hex returns the raw serialized transaction as hex text.
func (t *Tx) Hex() string {
	return hex.EncodeToString(t.raw)
}

// IsComplete returns whether every input carries all of its required
// signatures.
func (t *Tx) IsComplete() bool {
	for _, in := range t.inputs {
		if !in.complete() {
			return false
		}
	}
	return true
}

// TxID returns the transaction ID: the double SHA-256 of the serialized
// transaction in reversed-byte hex form.  Incomplete transactions have no
// stable ID, since filling in signatures changes the hash, so an error with
// the ErrIncompleteTx kind is returned for them.
func (t *Tx) TxID() (string, error) {
	if !t.IsComplete() {
		return "", authorError(ErrIncompleteTx,
			"transaction with missing signatures has no stable ID")
	}
	return t.msg.TxID(), nil
}

// HasAddress returns whether the provided address is the address of any
// input's spent output or of any output.
func (t *Tx) HasAddress(addr string) bool {
	for _, in := range t.inputs {
		if in.Address != nil && in.Address.String() == addr {
			return true
		}
	}
	for _, out := range t.outputs {
		if out.Address != nil && out.Address.String() == addr {
			return true
		}
	}
	return false
}

// buildScriptSig reassembles the signature script of a parsed input from its
// structured fields, using the placeholder form for missing signatures and
// the indirect public key entries until the input is complete.
func buildScriptSig(in *TxInput) []byte {
	sigPush := func(sig []byte) []byte {
		if sig == nil {
			return txscript.PushedData([]byte{sigPlaceholder})
		}
		return txscript.PushedData(sig)
	}

	var script []byte
	switch in.Type {
	case InputPubKey:
		script = sigPush(in.Signatures[0])

	case InputPubKeyHash:
		script = sigPush(in.Signatures[0])
		if in.complete() {
			script = append(script, txscript.PushedData(in.PubKeys[0])...)
		} else {
			script = append(script, txscript.PushedData(in.XPubKeys[0].Raw)...)
		}

	case InputScriptHash:
		script = []byte{txscript.OP_0}
		for _, sig := range in.Signatures {
			script = append(script, sigPush(sig)...)
		}
		script = append(script, txscript.PushedData(in.RedeemScript)...)

	default:
		script = in.ScriptSig
	}
	return script
}

// UpdateSignatures merges the signatures of a fully signed serialization of
// this transaction into the inputs that are missing them.  The signed
// transaction must spend the same previous outputs in the same order, or an
// error with the ErrMismatchedTx kind is returned.  Signatures are merged by
// slot position within each input.
func (t *Tx) UpdateSignatures(signedRaw []byte) error {
	signed, err := NewTx(signedRaw, t.net)
	if err != nil {
		return err
	}
	if len(signed.inputs) != len(t.inputs) {
		str := fmt.Sprintf("signed transaction has %d inputs, want %d",
			len(signed.inputs), len(t.inputs))
		return authorError(ErrMismatchedTx, str)
	}

	var updated int
	for i, in := range t.inputs {
		signedIn := signed.inputs[i]
		if in.PrevOut != signedIn.PrevOut {
			str := fmt.Sprintf("signed input %d spends %v, want %v", i,
				signedIn.PrevOut, in.PrevOut)
			return authorError(ErrMismatchedTx, str)
		}
		if in.complete() {
			continue
		}

		for j := range in.Signatures {
			if in.Signatures[j] != nil {
				continue
			}
			if j < len(signedIn.Signatures) && signedIn.Signatures[j] != nil {
				in.Signatures[j] = signedIn.Signatures[j]
				updated++
			}
		}

		script := buildScriptSig(in)
		in.ScriptSig = script
		t.msg.TxIn[i].SignatureScript = script
	}

	if updated > 0 {
		t.raw = t.msg.Bytes()
		log.Debugf("Merged %d signatures into transaction", updated)
	}
	return nil
}

// estimateScriptSigLen returns the length the input's signature script will
// have once fully signed, assuming worst-case signature sizes for missing
// signatures.
func (in *TxInput) estimateScriptSigLen() int {
	sigLen := func(sig []byte) int {
		if sig == nil {
			return 1 + dummySigLen
		}
		return len(txscript.PushedData(sig))
	}

	switch in.Type {
	case InputPubKey:
		return sigLen(in.Signatures[0])

	case InputPubKeyHash:
		return sigLen(in.Signatures[0]) +
			len(txscript.PushedData(in.PubKeys[0]))

	case InputScriptHash:
		n := 1
		for _, sig := range in.Signatures {
			n += sigLen(sig)
		}
		return n + len(txscript.PushedData(in.RedeemScript))

	default:
		return len(in.ScriptSig)
	}
}

// BaseSize returns the size in bytes of the serialized transaction: the
// actual size when the transaction is complete, and the estimated size under
// worst-case signature assumptions otherwise.
func (t *Tx) BaseSize() int {
	if t.IsComplete() {
		return len(t.raw)
	}

	n := 8 + wire.VarIntSerializeSize(uint64(len(t.inputs))) +
		wire.VarIntSerializeSize(uint64(len(t.outputs)))
	for _, in := range t.inputs {
		scriptLen := in.estimateScriptSigLen()
		n += 40 + wire.VarIntSerializeSize(uint64(scriptLen)) + scriptLen
	}
	for _, out := range t.outputs {
		n += 8 + wire.VarIntSerializeSize(uint64(len(out.PkScript))) +
			len(out.PkScript)
	}
	return n
}

// TotalSize returns the total size in bytes of the serialized transaction.
// There is no witness data, so this always equals BaseSize.
func (t *Tx) TotalSize() int {
	return t.BaseSize()
}

// Weight returns the compatibility weight of the transaction, defined as
// four times the base size since no witness discount applies.
func (t *Tx) Weight() int {
	return 4 * t.BaseSize()
}

// EstimatedSize returns the estimated size in bytes of the fully signed
// transaction, which equals BaseSize.
func (t *Tx) EstimatedSize() int {
	return t.BaseSize()
}
