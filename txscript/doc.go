// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package txscript implements construction and analysis of the standard
transaction scripts.

The network uses two standard output script forms, pay-to-pubkey-hash and
pay-to-script-hash, plus bare pay-to-pubkey and m-of-n multisig redeem
scripts inside P2SH.  This package builds those scripts from addresses and
keys, classifies and decomposes existing scripts back into addresses, and
computes the reversed-SHA256 script hashes used as index keys by electrum
style servers.  It also provides the op_push data encoding and a push-only
script parser used to pick apart signature scripts.
*/
package txscript
