// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package chaincfg defines the network parameters for the supported networks.

All encoding and decoding in this library is parameterized by an explicit
*Params value rather than ambient global state, so code that encodes for
multiple networks at once (or tests that exercise both) can do so safely.
The parameters cover the Base58Check version bytes for addresses and WIF
private keys, the two families of extended key version bytes, the prefix
used for signed messages, and the payment URI scheme.
*/
package chaincfg
