// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/xgox-project/walletcore/chaincfg"
	"github.com/xgox-project/walletcore/coinutil"
)

// ScriptClass is an enumeration for the list of standard types of script.
type ScriptClass byte

// Classes of script payment known about in the blockchain.
const (
	NonStandardTy ScriptClass = iota // None of the recognized forms.
	PubKeyTy                         // Pay pubkey.
	PubKeyHashTy                     // Pay pubkey hash.
	ScriptHashTy                     // Pay to script hash.
	MultiSigTy                       // Multi signature.
)

// scriptClassToName houses the human-readable strings which describe each
// script class.
var scriptClassToName = []string{
	NonStandardTy: "nonstandard",
	PubKeyTy:      "pubkey",
	PubKeyHashTy:  "p2pkh",
	ScriptHashTy:  "p2sh",
	MultiSigTy:    "multisig",
}

// String implements the Stringer interface by returning the name of the enum
// script class.  If the enum is invalid then "Invalid" will be returned.
func (t ScriptClass) String() string {
	if int(t) >= len(scriptClassToName) {
		return "Invalid"
	}
	return scriptClassToName[t]
}

// payToPubKeyHashScript creates a new script to pay a transaction output to
// a 20-byte pubkey hash.
func payToPubKeyHashScript(pubKeyHash []byte) []byte {
	script := make([]byte, 0, 25)
	script = append(script, OP_DUP, OP_HASH160)
	script = append(script, PushedData(pubKeyHash)...)
	return append(script, OP_EQUALVERIFY, OP_CHECKSIG)
}

// payToScriptHashScript creates a new script to pay a transaction output to
// a 20-byte script hash.
func payToScriptHashScript(scriptHash []byte) []byte {
	script := make([]byte, 0, 23)
	script = append(script, OP_HASH160)
	script = append(script, PushedData(scriptHash)...)
	return append(script, OP_EQUAL)
}

// PayToAddrScript creates a new script to pay a transaction output to the
// specified address.
func PayToAddrScript(addr coinutil.Address) ([]byte, error) {
	switch addr := addr.(type) {
	case *coinutil.AddressPubKeyHash:
		return payToPubKeyHashScript(addr.ScriptAddress()), nil

	case *coinutil.AddressScriptHash:
		return payToScriptHashScript(addr.ScriptAddress()), nil
	}

	str := fmt.Sprintf("unable to generate payment script for "+
		"unsupported address type %T", addr)
	return nil, scriptError(ErrUnsupportedAddress, str)
}

// PayToPubKeyScript creates a new script to pay a transaction output
// directly to a serialized public key.
func PayToPubKeyScript(serializedPubKey []byte) []byte {
	script := PushedData(serializedPubKey)
	return append(script, OP_CHECKSIG)
}

// AddressToScript decodes the provided address string for the network and
// returns the standard output script paying to it.
func AddressToScript(addr string, net *chaincfg.Params) ([]byte, error) {
	decoded, err := coinutil.DecodeAddress(addr, net)
	if err != nil {
		return nil, err
	}
	return PayToAddrScript(decoded)
}

// extractPubKeyHash extracts the pubkey hash from the passed script if it is
// a standard pay-to-pubkey-hash script.  It will return nil otherwise.
func extractPubKeyHash(script []byte) []byte {
	// A pay-to-pubkey-hash script is of the form:
	//  OP_DUP OP_HASH160 <20-byte hash> OP_EQUALVERIFY OP_CHECKSIG
	if len(script) == 25 &&
		script[0] == OP_DUP &&
		script[1] == OP_HASH160 &&
		script[2] == OP_DATA_20 &&
		script[23] == OP_EQUALVERIFY &&
		script[24] == OP_CHECKSIG {

		return script[3:23]
	}
	return nil
}

// extractScriptHash extracts the script hash from the passed script if it is
// a standard pay-to-script-hash script.  It will return nil otherwise.
func extractScriptHash(script []byte) []byte {
	// A pay-to-script-hash script is of the form:
	//  OP_HASH160 <20-byte scripthash> OP_EQUAL
	if len(script) == 23 &&
		script[0] == OP_HASH160 &&
		script[1] == OP_DATA_20 &&
		script[22] == OP_EQUAL {

		return script[2:22]
	}
	return nil
}

// extractPubKey extracts the serialized public key from the passed script if
// it is a standard pay-to-pubkey script.  It will return nil otherwise.
func extractPubKey(script []byte) []byte {
	// A pay-to-pubkey script is of the form:
	//  <33-byte or 65-byte pubkey> OP_CHECKSIG
	if len(script) == 35 &&
		script[0] == OP_DATA_33 &&
		script[34] == OP_CHECKSIG &&
		(script[1] == 0x02 || script[1] == 0x03) {

		return script[1:34]
	}
	if len(script) == 67 &&
		script[0] == OP_DATA_65 &&
		script[66] == OP_CHECKSIG &&
		script[1] == 0x04 {

		return script[1:66]
	}
	return nil
}

// GetScriptClass returns the class of the script passed.  NonStandardTy will
// be returned when the script does not parse as one of the recognized forms.
func GetScriptClass(script []byte) ScriptClass {
	switch {
	case extractPubKeyHash(script) != nil:
		return PubKeyHashTy
	case extractScriptHash(script) != nil:
		return ScriptHashTy
	case extractPubKey(script) != nil:
		return PubKeyTy
	}
	if details, err := ExtractMultisigDetails(script); err == nil && details.RequiredSigs > 0 {
		return MultiSigTy
	}
	return NonStandardTy
}

// ExtractScriptAddr analyzes the passed output script and returns its class
// along with the address it pays to when the class has one.  Bare
// pay-to-pubkey scripts report a nil address alongside the serialized key
// via ExtractMultisigDetails-style introspection; callers wanting an address
// for a pubkey output should hash the key themselves.
func ExtractScriptAddr(script []byte, net *chaincfg.Params) (ScriptClass, coinutil.Address, error) {
	if hash := extractPubKeyHash(script); hash != nil {
		addr, err := coinutil.NewAddressPubKeyHash(hash, net)
		return PubKeyHashTy, addr, err
	}
	if hash := extractScriptHash(script); hash != nil {
		addr, err := coinutil.NewAddressScriptHashFromHash(hash, net)
		return ScriptHashTy, addr, err
	}
	if pubKey := extractPubKey(script); pubKey != nil {
		return PubKeyTy, nil, nil
	}
	return GetScriptClass(script), nil, nil
}

// MultisigDetails houses details extracted from a standard multisig redeem
// script.
type MultisigDetails struct {
	RequiredSigs int
	PubKeys      [][]byte
}

// MultiSigScript returns a valid script for a multisignature redemption
// where the specified number of the keys in the given slice are required to
// have signed the transaction for success.
//
// The keys must be in their serialized compressed or uncompressed form and
// the number of keys is limited to 16 by the small integer opcodes.
func MultiSigScript(pubKeys [][]byte, nRequired int) ([]byte, error) {
	if nRequired <= 0 || len(pubKeys) < nRequired || len(pubKeys) > 16 {
		str := fmt.Sprintf("unable to generate multisig script with %d "+
			"required signatures and %d keys", nRequired, len(pubKeys))
		return nil, scriptError(ErrTooManyRequiredSigs, str)
	}

	script := []byte{smallInt(nRequired)}
	for _, key := range pubKeys {
		script = append(script, PushedData(key)...)
	}
	script = append(script, smallInt(len(pubKeys)), OP_CHECKMULTISIG)
	return script, nil
}

// ExtractMultisigDetails attempts to extract the required signature count
// and public keys from the passed script.  An error with the
// ErrNotMultisigScript kind is returned when the script is not a standard
// multisig redeem script.
func ExtractMultisigDetails(script []byte) (MultisigDetails, error) {
	// A multi-signature script is of the form:
	//  NUM_SIGS PUBKEY PUBKEY ... NUM_PUBKEYS OP_CHECKMULTISIG
	notMultisig := func(reason string) (MultisigDetails, error) {
		return MultisigDetails{}, scriptError(ErrNotMultisigScript, reason)
	}

	if len(script) < 3 || script[len(script)-1] != OP_CHECKMULTISIG {
		return notMultisig("script does not end with OP_CHECKMULTISIG")
	}

	pushes, err := ExtractDataPushes(script[:len(script)-1])
	if err != nil {
		return notMultisig("script is not push only")
	}
	if len(pushes) < 3 {
		return notMultisig("too few script elements")
	}

	mPush, nPush := pushes[0], pushes[len(pushes)-1]
	if len(mPush) != 1 || !isSmallInt(mPush[0]) ||
		len(nPush) != 1 || !isSmallInt(nPush[0]) {
		return notMultisig("signature counts are not small integers")
	}
	m, n := asSmallInt(mPush[0]), asSmallInt(nPush[0])

	pubKeys := pushes[1 : len(pushes)-1]
	if len(pubKeys) != n || m <= 0 || m > n {
		return notMultisig("key count does not match script")
	}
	for _, key := range pubKeys {
		if len(key) != 33 && len(key) != 65 {
			return notMultisig("invalid public key length")
		}
	}

	return MultisigDetails{RequiredSigs: m, PubKeys: pubKeys}, nil
}

// ScriptHashHex returns the hex encoding of the byte-reversed SHA-256 digest
// of the provided output script.  This is the opaque index key used by
// electrum style server protocols.
func ScriptHashHex(script []byte) string {
	digest := sha256.Sum256(script)
	for i, j := 0, len(digest)-1; i < j; i, j = i+1, j-1 {
		digest[i], digest[j] = digest[j], digest[i]
	}
	return hex.EncodeToString(digest[:])
}

// AddressToScriptHash returns the server index key for the provided address:
// the reversed SHA-256 of its standard output script, hex encoded.
func AddressToScriptHash(addr string, net *chaincfg.Params) (string, error) {
	script, err := AddressToScript(addr, net)
	if err != nil {
		return "", err
	}
	return ScriptHashHex(script), nil
}
