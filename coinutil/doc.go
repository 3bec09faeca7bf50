// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package coinutil provides convenience types and functions for addresses,
private key import/export, monetary amounts, and payment URIs.

Addresses are modeled by the Address interface with concrete types for
pay-to-pubkey-hash and pay-to-script-hash destinations.  DecodeAddress
verifies the Base58Check checksum and recognizes exactly the version bytes
registered for the provided network.  Private keys travel as WIF strings
(network version byte offset by script type, optional compression flag) or
as minikeys, a short legacy encoding that always derives a compressed
public key.  The classification predicates (IsAddress, IsPrivateKey and
friends) are total: malformed input yields false, never a panic or error.
*/
package coinutil
