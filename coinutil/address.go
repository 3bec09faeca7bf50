// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinutil

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/xgox-project/walletcore/chaincfg"
)

// Hash160Size is the size of the RIPEMD-160 over SHA-256 digest that address
// payloads carry.
const Hash160Size = 20

var (
	// ErrChecksumMismatch describes an error where decoding failed due
	// to a bad checksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrUnknownAddressType describes an error where an address can not be
	// decoded as a specific address type due to the string encoding
	// beginning with an unrecognized version byte.
	ErrUnknownAddressType = errors.New("unknown address type")
)

// Address is an interface type for any type of destination a transaction
// output may spend to.  This includes pay-to-pubkey-hash (P2PKH) and
// pay-to-script-hash (P2SH).  Address is designed to be generic enough that
// other kinds of addresses may be added in the future without changing the
// decoding and encoding API.
type Address interface {
	// String returns the string encoding of the transaction output
	// destination.
	String() string

	// ScriptAddress returns the raw bytes of the address to be used
	// when inserting the address into a txout's script.
	ScriptAddress() []byte

	// Hash160 returns the Hash160(data) where data is the data normally
	// hashed to 160 bits from the respective address type.
	Hash160() *[Hash160Size]byte
}

// DecodeAddress decodes the string encoding of an address and returns the
// Address if it is a valid encoding for a known address type and is for the
// provided network.
func DecodeAddress(addr string, net *chaincfg.Params) (Address, error) {
	decoded, netID, err := base58.CheckDecode(addr)
	if err != nil {
		if err == base58.ErrChecksum {
			return nil, ErrChecksumMismatch
		}
		return nil, fmt.Errorf("decoded address is of unknown format: %v", err)
	}

	switch netID {
	case net.PubKeyHashAddrID:
		return newAddressPubKeyHash(decoded, netID)

	case net.ScriptHashAddrID:
		return newAddressScriptHash(decoded, netID)

	default:
		return nil, ErrUnknownAddressType
	}
}

// AddressPubKeyHash is an Address for a pay-to-pubkey-hash (P2PKH)
// transaction.
type AddressPubKeyHash struct {
	hash  [Hash160Size]byte
	netID byte
}

// NewAddressPubKeyHash returns a new AddressPubKeyHash.  pkHash must be 20
// bytes.
func NewAddressPubKeyHash(pkHash []byte, net *chaincfg.Params) (*AddressPubKeyHash, error) {
	return newAddressPubKeyHash(pkHash, net.PubKeyHashAddrID)
}

// NewAddressPubKeyHashFromPublicKey returns the pay-to-pubkey-hash address
// for the provided serialized public key.  The key may be in either the
// compressed or uncompressed form; the resulting address differs between the
// two since the hash covers the serialization.
func NewAddressPubKeyHashFromPublicKey(serializedPubKey []byte, net *chaincfg.Params) (*AddressPubKeyHash, error) {
	return newAddressPubKeyHash(btcutil.Hash160(serializedPubKey),
		net.PubKeyHashAddrID)
}

// newAddressPubKeyHash is the internal API to create a pubkey hash address
// with a known leading version byte for a network, rather than looking it
// up through its parameters.  This is useful when creating a new address
// structure from a string encoding where the version byte is already known.
func newAddressPubKeyHash(pkHash []byte, netID byte) (*AddressPubKeyHash, error) {
	if len(pkHash) != Hash160Size {
		return nil, errors.New("pkHash must be 20 bytes")
	}
	addr := &AddressPubKeyHash{netID: netID}
	copy(addr.hash[:], pkHash)
	return addr, nil
}

// String returns the Base58Check encoding of a pay-to-pubkey-hash address.
//
// Part of the Address interface.
func (a *AddressPubKeyHash) String() string {
	return base58.CheckEncode(a.hash[:], a.netID)
}

// ScriptAddress returns the bytes to be included in a txout script to pay
// to a pubkey hash.  Part of the Address interface.
func (a *AddressPubKeyHash) ScriptAddress() []byte {
	return a.hash[:]
}

// Hash160 returns the underlying array of the pubkey hash.  This can be
// useful when an array is more appropriate than a slice (for example, when
// used as map keys).
func (a *AddressPubKeyHash) Hash160() *[Hash160Size]byte {
	return &a.hash
}

// AddressScriptHash is an Address for a pay-to-script-hash (P2SH)
// transaction.
type AddressScriptHash struct {
	hash  [Hash160Size]byte
	netID byte
}

// NewAddressScriptHash returns a new AddressScriptHash for the provided
// redeem script.
func NewAddressScriptHash(serializedScript []byte, net *chaincfg.Params) (*AddressScriptHash, error) {
	return newAddressScriptHash(btcutil.Hash160(serializedScript),
		net.ScriptHashAddrID)
}

// NewAddressScriptHashFromHash returns a new AddressScriptHash.  scriptHash
// must be 20 bytes.
func NewAddressScriptHashFromHash(scriptHash []byte, net *chaincfg.Params) (*AddressScriptHash, error) {
	return newAddressScriptHash(scriptHash, net.ScriptHashAddrID)
}

// newAddressScriptHash is the internal counterpart of
// NewAddressScriptHashFromHash taking a pre-resolved version byte.
func newAddressScriptHash(scriptHash []byte, netID byte) (*AddressScriptHash, error) {
	if len(scriptHash) != Hash160Size {
		return nil, errors.New("scriptHash must be 20 bytes")
	}
	addr := &AddressScriptHash{netID: netID}
	copy(addr.hash[:], scriptHash)
	return addr, nil
}

// String returns the Base58Check encoding of a pay-to-script-hash address.
//
// Part of the Address interface.
func (a *AddressScriptHash) String() string {
	return base58.CheckEncode(a.hash[:], a.netID)
}

// ScriptAddress returns the bytes to be included in a txout script to pay
// to a script hash.  Part of the Address interface.
func (a *AddressScriptHash) ScriptAddress() []byte {
	return a.hash[:]
}

// Hash160 returns the underlying array of the script hash.  This can be
// useful when an array is more appropriate than a slice (for example, when
// used as map keys).
func (a *AddressScriptHash) Hash160() *[Hash160Size]byte {
	return &a.hash
}
