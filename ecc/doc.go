// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package ecc implements the elliptic curve message primitives used by wallets:
recoverable compact message signatures and public key encryption.

Message signatures commit to a network specific magic prefix so a signature
over arbitrary text can never be replayed as a transaction signature.  The
65-byte compact form carries a recovery code, so verification recovers the
candidate public key from the signature itself and compares the derived
address rather than requiring the key up front.

Encryption follows the scheme used by electrum style wallets: an ephemeral
keypair, an ECDH shared secret hashed with SHA-512 to produce the IV and the
AES and MAC keys, AES-128-CBC for the payload, and an HMAC-SHA256 tag over
the whole message.  The result is base64 text safe to embed anywhere the
wallet stores strings.
*/
package ecc
