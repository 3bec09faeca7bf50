// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/xgox-project/walletcore/chaincfg"
	"github.com/xgox-project/walletcore/coinutil"
	"github.com/xgox-project/walletcore/hdkeychain"
	"github.com/xgox-project/walletcore/txscript"
)

// These constants are the tag bytes that distinguish the indirect public key
// placeholder forms from a directly serialized public key, whose first byte
// is always 0x02, 0x03, or 0x04.
const (
	// xPubKeyAddressTag marks an entry that only carries the output script
	// of the spent output.  No public key can be resolved from it.
	xPubKeyAddressTag = 0xfd

	// xPubKeyLegacyTag marks an entry holding a legacy 64-byte master
	// public key followed by a (change, index) derivation pair.
	xPubKeyLegacyTag = 0xfe

	// xPubKeyDerivedTag marks an entry holding a raw 78-byte extended key
	// followed by a sequence of non-hardened child indexes.
	xPubKeyDerivedTag = 0xff
)

// XPubKeyKind describes which form a public key entry in a signature script
// takes.
type XPubKeyKind byte

// Constants for the forms a public key entry can take.  Signed inputs carry
// concrete serialized keys; unsigned inputs reference keys indirectly so
// cosigners can locate the matching private key.
const (
	// XPubKeyRaw is a directly serialized public key.
	XPubKeyRaw XPubKeyKind = iota

	// XPubKeyDerived is an extended public key plus a derivation path the
	// concrete key is derived from.
	XPubKeyDerived

	// XPubKeyLegacyMPK is a legacy master public key plus a
	// (change, index) derivation pair.
	XPubKeyLegacyMPK

	// XPubKeyAddress carries only the address of the spent output.
	XPubKeyAddress
)

// xPubKeyKindToName houses the human-readable strings which describe each
// public key entry kind.
var xPubKeyKindToName = []string{
	XPubKeyRaw:       "pubkey",
	XPubKeyDerived:   "derived",
	XPubKeyLegacyMPK: "legacy",
	XPubKeyAddress:   "address",
}

// String implements the Stringer interface by returning the name of the enum.
func (k XPubKeyKind) String() string {
	if int(k) >= len(xPubKeyKindToName) {
		return "Invalid"
	}
	return xPubKeyKindToName[k]
}

// XPubKey is one public key entry extracted from a signature script, resolved
// to the concrete public key and address it commits to.  The Raw bytes are
// the entry exactly as embedded in the script, so serializing the script
// reproduces the original placeholder form.
type XPubKey struct {
	Kind    XPubKeyKind
	Raw     []byte
	PubKey  []byte
	Address coinutil.Address
}

// parsePathPairs decodes a sequence of little-endian uint16 child indexes.
func parsePathPairs(data []byte) ([]uint16, error) {
	if len(data) == 0 || len(data)%2 != 0 {
		str := fmt.Sprintf("invalid derivation suffix length %d", len(data))
		return nil, authorError(ErrInvalidXPubKey, str)
	}
	path := make([]uint16, 0, len(data)/2)
	for i := 0; i < len(data); i += 2 {
		path = append(path, binary.LittleEndian.Uint16(data[i:i+2]))
	}
	return path, nil
}

// ParseXPubKey decodes a public key entry from a signature script and
// resolves it to a concrete public key and address.  The supported forms are
// a directly serialized public key, an extended key with a derivation path
// (0xff), a legacy master public key with a derivation pair (0xfe), and an
// address-only entry (0xfd) from which no key can be recovered.
func ParseXPubKey(raw []byte, net *chaincfg.Params) (*XPubKey, error) {
	if len(raw) == 0 {
		return nil, authorError(ErrInvalidXPubKey, "empty public key entry")
	}

	entry := &XPubKey{Raw: raw}
	switch raw[0] {
	case 0x02, 0x03, 0x04:
		if _, err := btcec.ParsePubKey(raw); err != nil {
			str := fmt.Sprintf("invalid serialized public key: %v", err)
			return nil, authorError(ErrInvalidXPubKey, str)
		}
		addr, err := coinutil.NewAddressPubKeyHashFromPublicKey(raw, net)
		if err != nil {
			return nil, authorError(ErrInvalidXPubKey, err.Error())
		}
		entry.Kind = XPubKeyRaw
		entry.PubKey = raw
		entry.Address = addr

	case xPubKeyDerivedTag:
		const xkeyLen = 78
		if len(raw) < 1+xkeyLen {
			str := fmt.Sprintf("truncated extended key entry of %d bytes",
				len(raw))
			return nil, authorError(ErrInvalidXPubKey, str)
		}
		key, err := hdkeychain.ParseRawExtendedKey(raw[1:1+xkeyLen], net)
		if err != nil {
			str := fmt.Sprintf("invalid embedded extended key: %v", err)
			return nil, authorError(ErrInvalidXPubKey, str)
		}
		path, err := parsePathPairs(raw[1+xkeyLen:])
		if err != nil {
			return nil, err
		}
		for _, childNum := range path {
			key, err = key.Child(uint32(childNum))
			if err != nil {
				str := fmt.Sprintf("unable to derive child %d: %v",
					childNum, err)
				return nil, authorError(ErrInvalidXPubKey, str)
			}
		}
		pubKey := key.SerializedPubKey()
		addr, err := coinutil.NewAddressPubKeyHashFromPublicKey(pubKey, net)
		if err != nil {
			return nil, authorError(ErrInvalidXPubKey, err.Error())
		}
		entry.Kind = XPubKeyDerived
		entry.PubKey = pubKey
		entry.Address = addr

	case xPubKeyLegacyTag:
		const mpkLen = hdkeychain.LegacyMasterPubKeyLen
		if len(raw) != 1+mpkLen+4 {
			str := fmt.Sprintf("invalid legacy master key entry of %d bytes",
				len(raw))
			return nil, authorError(ErrInvalidXPubKey, str)
		}
		path, err := parsePathPairs(raw[1+mpkLen:])
		if err != nil {
			return nil, err
		}
		pubKey, err := hdkeychain.DeriveLegacyPubKey(raw[1:1+mpkLen],
			path[0], path[1])
		if err != nil {
			str := fmt.Sprintf("unable to derive from legacy master key: %v",
				err)
			return nil, authorError(ErrInvalidXPubKey, str)
		}
		addr, err := coinutil.NewAddressPubKeyHashFromPublicKey(pubKey, net)
		if err != nil {
			return nil, authorError(ErrInvalidXPubKey, err.Error())
		}
		entry.Kind = XPubKeyLegacyMPK
		entry.PubKey = pubKey
		entry.Address = addr

	case xPubKeyAddressTag:
		_, addr, err := txscript.ExtractScriptAddr(raw[1:], net)
		if err != nil || addr == nil {
			return nil, authorError(ErrInvalidXPubKey,
				"entry script carries no address")
		}
		entry.Kind = XPubKeyAddress
		entry.Address = addr

	default:
		str := fmt.Sprintf("unrecognized public key entry tag 0x%02x", raw[0])
		return nil, authorError(ErrInvalidXPubKey, str)
	}

	return entry, nil
}
