// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinutil

import (
	"crypto/sha256"
	"errors"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/xgox-project/walletcore/chaincfg"
)

// ErrMalformedPrivateKey describes an error where a WIF-encoded private key
// cannot be decoded due to being improperly formatted.  This may occur if
// the byte length is incorrect or an unexpected version byte was
// encountered.
var ErrMalformedPrivateKey = errors.New("malformed private key")

// ScriptType identifies the kind of output script a private key is intended
// to sign for.  The WIF encoding folds the script type into the version
// byte as a fixed offset from the network's base private key version.
type ScriptType byte

const (
	// STPubKeyHash indicates the key signs for pay-to-pubkey-hash outputs.
	STPubKeyHash ScriptType = iota

	// STScriptHash indicates the key signs for pay-to-script-hash outputs.
	STScriptHash
)

// String returns the script type as the conventional short name.
func (t ScriptType) String() string {
	switch t {
	case STPubKeyHash:
		return "p2pkh"
	case STScriptHash:
		return "p2sh"
	}
	return "unknown"
}

// wifOffset returns the value added to the network's private key version
// byte when encoding a key of the given script type.
func (t ScriptType) wifOffset() byte {
	if t == STScriptHash {
		return 5
	}
	return 0
}

// scriptTypeFromOffset is the inverse of wifOffset.
func scriptTypeFromOffset(offset byte) (ScriptType, bool) {
	switch offset {
	case 0:
		return STPubKeyHash, true
	case 5:
		return STScriptHash, true
	}
	return 0, false
}

// WIF contains the individual components described by the Wallet Import
// Format (WIF).  A WIF string is typically used to represent a private key
// and its associated address in a way that may be easily copied and imported
// into or exported from wallet software.  WIF strings may be decoded into
// this structure by calling DecodeWIF or created with a user-provided
// private key by calling NewWIF.
type WIF struct {
	// PrivKey is the private key being imported or exported.
	PrivKey *btcec.PrivateKey

	// CompressPubKey specifies whether the address controlled by the
	// imported or exported private key was created by hashing a compressed
	// serialized public key.
	CompressPubKey bool

	// ScriptType is the kind of output script the key signs for.
	ScriptType ScriptType

	// netID is the version byte used when WIF encoding the private key.
	netID byte
}

// NewWIF creates a new WIF structure to export an address and its private
// key as a string encoded in the Wallet Import Format.  The compress
// argument specifies whether the address intended to be imported or exported
// was created by serializing the public key compressed rather than
// uncompressed.
func NewWIF(privKey *btcec.PrivateKey, net *chaincfg.Params, compress bool, scriptType ScriptType) *WIF {
	netID := net.PrivateKeyID + scriptType.wifOffset()
	return &WIF{privKey, compress, scriptType, netID}
}

// DecodeWIF creates a new WIF structure by decoding the string encoding of
// the import format, which is required to be for the provided network.
//
// The WIF string must be a Base58Check-encoded string of the following byte
// sequence:
//
//   - 1 byte identifying the network and script type (the network's private
//     key version byte plus the script type offset)
//   - 32 bytes of a binary-encoded, big-endian, zero-padded private key
//   - optional 1 byte (equal to 0x01) if the address being imported or
//     exported was created by taking the RIPEMD160 after SHA256 hash of a
//     serialized compressed public key
//
// If the base58-decoded byte sequence does not match this,
// ErrMalformedPrivateKey is returned.  ErrChecksumMismatch is returned if
// the embedded checksum does not match the calculated checksum.
func DecodeWIF(wif string, net *chaincfg.Params) (*WIF, error) {
	decoded, netID, err := base58.CheckDecode(wif)
	if err != nil {
		if err == base58.ErrChecksum {
			return nil, ErrChecksumMismatch
		}
		return nil, ErrMalformedPrivateKey
	}

	scriptType, ok := scriptTypeFromOffset(netID - net.PrivateKeyID)
	if !ok || netID < net.PrivateKeyID {
		return nil, ErrMalformedPrivateKey
	}

	var compress bool
	switch {
	case len(decoded) == 33 && decoded[32] == 0x01:
		compress = true
	case len(decoded) == 32:
		compress = false
	default:
		return nil, ErrMalformedPrivateKey
	}

	privKey, _ := btcec.PrivKeyFromBytes(decoded[:32])
	return &WIF{privKey, compress, scriptType, netID}, nil
}

// String creates the Wallet Import Format string encoding of a WIF
// structure.  See DecodeWIF for a detailed breakdown of the format and
// requirements of a valid WIF string.
func (w *WIF) String() string {
	// Precalculate size.  Maximum number of bytes before base58 encoding
	// is one byte for the version, 32 bytes of private key, and an
	// optional byte (0x01) if compressed, plus four bytes of checksum.
	encodeLen := 32
	if w.CompressPubKey {
		encodeLen++
	}

	a := make([]byte, 0, encodeLen)
	a = append(a, w.PrivKey.Serialize()...)
	if w.CompressPubKey {
		a = append(a, 0x01)
	}
	return base58.CheckEncode(a, w.netID)
}

// SerializePubKey serializes the associated public key of the imported or
// exported private key in either a compressed or uncompressed format
// depending on the state of the CompressPubKey field.
func (w *WIF) SerializePubKey() []byte {
	pk := w.PrivKey.PubKey()
	if w.CompressPubKey {
		return pk.SerializeCompressed()
	}
	return pk.SerializeUncompressed()
}

// IsMinikey reports whether the provided text looks like a minikey: at least
// 20 characters of base58 alphabet starting with 'S' whose appended-'?' hash
// begins with a zero byte.  Minikeys carry no network information.
func IsMinikey(text string) bool {
	if len(text) < 20 || text[0] != 'S' {
		return false
	}
	const b58chars = "123456789ABCDEFGHJKLMNPQRSTUVWXYZ" +
		"abcdefghijkmnopqrstuvwxyz"
	for _, c := range text {
		if !strings.ContainsRune(b58chars, c) {
			return false
		}
	}
	check := sha256.Sum256([]byte(text + "?"))
	return check[0] == 0x00
}

// DecodeMinikey decodes a minikey into a WIF structure.  The private scalar
// is the SHA-256 digest of the minikey text.  Minikeys always report a
// compressed public key; the underlying convention is ambiguous but this
// matches deployed wallets.
func DecodeMinikey(text string, net *chaincfg.Params) (*WIF, error) {
	if !IsMinikey(text) {
		return nil, ErrMalformedPrivateKey
	}
	digest := sha256.Sum256([]byte(text))
	privKey, _ := btcec.PrivKeyFromBytes(digest[:])
	return &WIF{privKey, true, STPubKeyHash, net.PrivateKeyID}, nil
}

// DecodePrivateKey decodes any supported private key text encoding,
// accepting both WIF strings and minikeys.
func DecodePrivateKey(text string, net *chaincfg.Params) (*WIF, error) {
	if IsMinikey(text) {
		return DecodeMinikey(text, net)
	}
	return DecodeWIF(text, net)
}
