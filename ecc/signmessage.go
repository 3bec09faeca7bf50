// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/xgox-project/walletcore/chaincfg"
	"github.com/xgox-project/walletcore/coinutil"
	"github.com/xgox-project/walletcore/wire"
)

// messageHash returns the double SHA-256 digest that is signed for the given
// message text.  The network magic and the message are each prefixed with
// their varint length so signatures over arbitrary text cannot collide with
// any other signed structure.
func messageHash(message string, net *chaincfg.Params) []byte {
	var buf bytes.Buffer
	wire.WriteVarString(&buf, net.SignedMessageMagic)
	wire.WriteVarString(&buf, message)
	return chainhash.DoubleHashB(buf.Bytes())
}

// SignMessage signs the message with the provided private key and returns the
// 65-byte compact signature, base64 encoded.  The compressed flag records
// which serialization of the public key the matching address was derived
// from, so that VerifyMessage can reconstruct the same address.
//
// The signature is deterministic per RFC6979, so signing the same message
// with the same key always yields the same text.
func SignMessage(privKey *btcec.PrivateKey, message string, compressed bool,
	net *chaincfg.Params) string {

	sig := ecdsa.SignCompact(privKey, messageHash(message, net), compressed)
	return base64.StdEncoding.EncodeToString(sig)
}

// VerifyMessage verifies that signature is a valid base64 compact signature
// of message created with the secp256k1 private key for address.
func VerifyMessage(address, signature, message string, net *chaincfg.Params) error {
	// Decode the provided address.  This also ensures the network encoded
	// with the address matches the network the caller expects.
	addr, err := coinutil.DecodeAddress(address, net)
	if err != nil {
		return err
	}

	// Only P2PKH addresses are valid for signing.
	if _, ok := addr.(*coinutil.AddressPubKeyHash); !ok {
		return fmt.Errorf("address is not a pay-to-pubkey-hash address")
	}

	// Decode base64 signature.
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("malformed base64 encoding: %v", err)
	}

	// Validate the signature - this just shows that it was valid for any
	// pubkey at all.  Whether the pubkey matches is checked below.
	pk, wasCompressed, err := ecdsa.RecoverCompact(sig,
		messageHash(message, net))
	if err != nil {
		return err
	}

	// Reconstruct the address from the recovered pubkey using the same
	// serialization the signer committed to.
	var serializedPK []byte
	if wasCompressed {
		serializedPK = pk.SerializeCompressed()
	} else {
		serializedPK = pk.SerializeUncompressed()
	}
	recoveredAddr, err := coinutil.NewAddressPubKeyHashFromPublicKey(
		serializedPK, net)
	if err != nil {
		return err
	}

	// Check whether addresses match.
	if recoveredAddr.String() != addr.String() {
		return fmt.Errorf("message not signed by address")
	}
	return nil
}

// IsValidMessageSignature returns whether or not signature is a valid base64
// compact signature of message for address.  It is a thin wrapper around
// VerifyMessage that never panics and treats any failure as false.
func IsValidMessageSignature(address, signature, message string, net *chaincfg.Params) bool {
	return VerifyMessage(address, signature, message, net) == nil
}
