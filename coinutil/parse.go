// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinutil

import "github.com/xgox-project/walletcore/chaincfg"

// The classification predicates below are thin wrappers over the parsing
// functions.  They are total: any input that fails to parse simply yields
// false.

// IsAddress reports whether the provided text is a valid address for the
// network.
func IsAddress(text string, net *chaincfg.Params) bool {
	_, err := DecodeAddress(text, net)
	return err == nil
}

// IsPrivateKey reports whether the provided text is a valid private key for
// the network, in either WIF or minikey form.
func IsPrivateKey(text string, net *chaincfg.Params) bool {
	_, err := DecodePrivateKey(text, net)
	return err == nil
}

// IsCompressed reports whether the provided private key text derives a
// compressed public key.  Unparseable input reports false.
func IsCompressed(text string, net *chaincfg.Params) bool {
	wif, err := DecodePrivateKey(text, net)
	return err == nil && wif.CompressPubKey
}
