// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "errors"

// ErrUnknownHDKeyID describes an error where the provided extended key
// version bytes do not match any of the key families registered for a
// network.
var ErrUnknownHDKeyID = errors.New("unknown hd extended key version bytes")

// HDKeyFamily identifies one of the extended key version byte families a
// network supports.  Both families share the same derivation algorithm and
// 78-byte serialization; only the leading version bytes differ.
type HDKeyFamily uint8

const (
	// HDKeyFamilyStandard is the family used by current wallets.
	HDKeyFamilyStandard HDKeyFamily = iota

	// HDKeyFamilyLegacy is the historical "drk"-prefixed family retained
	// for importing keys from older wallets.
	HDKeyFamilyLegacy
)

// String returns the key family as a human-readable name.
func (f HDKeyFamily) String() string {
	switch f {
	case HDKeyFamilyStandard:
		return "standard"
	case HDKeyFamilyLegacy:
		return "legacy"
	}
	return "unknown"
}

// Params defines a network by its parameters.  These parameters may be used
// by library code to differentiate networks as well as addresses and keys
// for one network from those intended for use on another network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Address encoding magics.
	PubKeyHashAddrID byte // First byte of a P2PKH address
	ScriptHashAddrID byte // First byte of a P2SH address
	PrivateKeyID     byte // First byte of a WIF private key

	// BIP32 hierarchical deterministic extended key magics for the
	// standard key family.
	HDPrivateKeyID [4]byte
	HDPublicKeyID  [4]byte

	// Extended key magics for the legacy key family.
	LegacyHDPrivateKeyID [4]byte
	LegacyHDPublicKeyID  [4]byte

	// SignedMessageMagic is the prefix string mixed into the hash of
	// signed messages to bind signatures to this network.
	SignedMessageMagic string

	// URIScheme is the scheme of payment request URIs.
	URIScheme string
}

// MainNetParams defines the network parameters for the main network.
var MainNetParams = Params{
	Name: "mainnet",

	PubKeyHashAddrID: 0x4b, // starts with X
	ScriptHashAddrID: 0x12, // starts with 8
	PrivateKeyID:     0xd4, // starts with Y

	HDPrivateKeyID: [4]byte{0x02, 0x21, 0x31, 0x2b}, // starts with TDt9
	HDPublicKeyID:  [4]byte{0x02, 0x2d, 0x25, 0x33}, // starts with ToEA

	LegacyHDPrivateKeyID: [4]byte{0x02, 0xfe, 0x52, 0xf8}, // starts with drkv
	LegacyHDPublicKeyID:  [4]byte{0x02, 0xfe, 0x52, 0xcc}, // starts with drkp

	SignedMessageMagic: "DarkCoin Signed Message:\n",
	URIScheme:          "xgox",
}

// TestNet3Params defines the network parameters for the test network.
var TestNet3Params = Params{
	Name: "testnet3",

	PubKeyHashAddrID: 0x8c, // starts with y
	ScriptHashAddrID: 0x13, // starts with 8 or 9
	PrivateKeyID:     0xef,

	HDPrivateKeyID: [4]byte{0x04, 0x35, 0x83, 0x94}, // starts with tprv
	HDPublicKeyID:  [4]byte{0x04, 0x35, 0x87, 0xcf}, // starts with tpub

	LegacyHDPrivateKeyID: [4]byte{0x3a, 0x80, 0x61, 0xa0}, // starts with DRKV
	LegacyHDPublicKeyID:  [4]byte{0x3a, 0x80, 0x58, 0x37}, // starts with DRKP

	SignedMessageMagic: "DarkCoin Signed Message:\n",
	URIScheme:          "xgox",
}

// HDPrivKeyVersion returns the extended private key version bytes for the
// provided key family.
func (p *Params) HDPrivKeyVersion(family HDKeyFamily) [4]byte {
	if family == HDKeyFamilyLegacy {
		return p.LegacyHDPrivateKeyID
	}
	return p.HDPrivateKeyID
}

// HDPubKeyVersion returns the extended public key version bytes for the
// provided key family.
func (p *Params) HDPubKeyVersion(family HDKeyFamily) [4]byte {
	if family == HDKeyFamilyLegacy {
		return p.LegacyHDPublicKeyID
	}
	return p.HDPublicKeyID
}

// HDKeyIDInfo houses the family and visibility associated with a set of
// extended key version bytes.
type HDKeyIDInfo struct {
	Family    HDKeyFamily
	IsPrivate bool
}

// HDKeyInfo returns the key family and public/private visibility associated
// with the provided extended key version bytes for the network.
// ErrUnknownHDKeyID is returned when the version bytes are not registered
// for the network.
func (p *Params) HDKeyInfo(version [4]byte) (HDKeyIDInfo, error) {
	switch version {
	case p.HDPrivateKeyID:
		return HDKeyIDInfo{Family: HDKeyFamilyStandard, IsPrivate: true}, nil
	case p.HDPublicKeyID:
		return HDKeyIDInfo{Family: HDKeyFamilyStandard, IsPrivate: false}, nil
	case p.LegacyHDPrivateKeyID:
		return HDKeyIDInfo{Family: HDKeyFamilyLegacy, IsPrivate: true}, nil
	case p.LegacyHDPublicKeyID:
		return HDKeyIDInfo{Family: HDKeyFamilyLegacy, IsPrivate: false}, nil
	}
	return HDKeyIDInfo{}, ErrUnknownHDKeyID
}
