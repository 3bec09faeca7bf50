// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package txauthor provides a structured model over raw transactions for
cooperative signing workflows.

A Tx wraps the raw serialized bytes of a transaction together with a parsed
view of its inputs and outputs.  Input signature scripts are introspected
into their script type, the public keys they commit to, and the signatures
present so far.  Unsigned inputs carry placeholder entries in place of
signatures and may reference their keys indirectly through extended public
key or legacy master public key derivations, which are resolved to concrete
public keys and addresses during parsing.

Serialization reproduces the original bytes exactly, placeholders included,
so an unsigned transaction can round trip through storage and between
cosigners without mutating.  UpdateSignatures merges the concrete signatures
from a fully signed variant of the same transaction into the placeholder
slots, after which the transaction is complete and has a stable transaction
ID.  Size estimators report the serialized size under worst-case signature
assumptions for fee calculation before signing.
*/
package txauthor
