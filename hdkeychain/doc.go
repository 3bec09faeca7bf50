// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package hdkeychain provides an API for hierarchical deterministic extended
keys.

# Overview

The keys implemented by this package follow the BIP0032 derivation scheme:
a single master node, created from a random seed, deterministically yields a
tree of private and public child keys.  Each extended key carries a chain
code and derivation metadata alongside the key material, so any node can
serve as the root of its own subtree.

Two version byte families are supported for the serialized form.  The
standard family is used by current wallets while the legacy "drk" family is
retained so keys exported by historical wallets can still be imported.  Both
families share one derivation algorithm and deserialize to the same logical
shape.

Extended public keys support non-hardened derivation only.  Requesting a
hardened child of a public key fails with ErrDeriveHardFromPublic rather
than silently producing an unusable key.

Derivation paths in the human readable m/0'/1 form are parsed by
ParseDerivationPath and applied by the DerivePath method.
*/
package hdkeychain
