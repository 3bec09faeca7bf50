// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkeychain

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// LegacyMasterPubKeyLen is the length of a legacy master public key: the
// uncompressed secp256k1 point of the wallet root without the 0x04 format
// prefix.
const LegacyMasterPubKeyLen = 64

// ErrInvalidMasterPubKey describes an error in which a legacy master public
// key is not a valid point on the curve.
var ErrInvalidMasterPubKey = errors.New("invalid legacy master public key")

// ParseLegacyMasterPubKey parses a raw 64-byte legacy master public key into
// a usable public key after validating that it is a point on the curve.
func ParseLegacyMasterPubKey(mpk []byte) (*btcec.PublicKey, error) {
	if len(mpk) != LegacyMasterPubKeyLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidMasterPubKey,
			len(mpk))
	}

	serialized := make([]byte, 0, LegacyMasterPubKeyLen+1)
	serialized = append(serialized, 0x04)
	serialized = append(serialized, mpk...)
	pubKey, err := btcec.ParsePubKey(serialized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMasterPubKey, err)
	}
	return pubKey, nil
}

// DeriveLegacyPubKey derives the public key at the given change branch and
// address index beneath a legacy 64-byte master public key.
//
// The derived point is the master point offset by the scalar obtained from
// double hashing "index:change:" concatenated with the raw master key.  The
// result is returned in uncompressed serialized form since legacy wallets
// predate compressed keys.
func DeriveLegacyPubKey(mpk []byte, change, index uint16) ([]byte, error) {
	masterPub, err := ParseLegacyMasterPubKey(mpk)
	if err != nil {
		return nil, err
	}

	data := fmt.Sprintf("%d:%d:", index, change)
	digest := chainhash.DoubleHashB(append([]byte(data), mpk...))

	var offset btcec.ModNScalar
	offset.SetByteSlice(digest)

	var offsetJ btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&offset, &offsetJ)

	var masterJ, childJ btcec.JacobianPoint
	masterPub.AsJacobian(&masterJ)
	btcec.AddNonConst(&offsetJ, &masterJ, &childJ)
	if childJ.Z.IsZero() {
		return nil, ErrInvalidChild
	}
	childJ.ToAffine()

	return btcec.NewPublicKey(&childJ.X, &childJ.Y).SerializeUncompressed(), nil
}
