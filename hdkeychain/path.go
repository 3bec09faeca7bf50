// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkeychain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xgox-project/walletcore/chaincfg"
)

// ParseDerivationPath converts a human-readable derivation path in the form
// m/0'/1 to the corresponding sequence of child indexes.  An apostrophe
// after an index marks that segment as hardened, which is reflected by
// setting the high bit of the index.
func ParseDerivationPath(path string) ([]uint32, error) {
	if path == "m" {
		return nil, nil
	}
	if !strings.HasPrefix(path, "m/") {
		return nil, fmt.Errorf("derivation path %q does not start at "+
			"the master node", path)
	}

	segments := strings.Split(path[2:], "/")
	indexes := make([]uint32, 0, len(segments))
	for _, segment := range segments {
		var hardened bool
		if strings.HasSuffix(segment, "'") {
			hardened = true
			segment = segment[:len(segment)-1]
		}

		index, err := strconv.ParseUint(segment, 10, 32)
		if err != nil || index >= HardenedKeyStart {
			return nil, fmt.Errorf("invalid derivation path segment %q",
				segment)
		}

		if hardened {
			index += HardenedKeyStart
		}
		indexes = append(indexes, uint32(index))
	}

	return indexes, nil
}

// DerivePath derives the descendant extended key reached by following the
// provided derivation path from this key.  The path is interpreted relative
// to the receiver, so the conventional leading m refers to the receiver
// rather than the tree root.
//
// Deriving across a hardened segment from a public extended key fails with
// ErrDeriveHardFromPublic.
func (k *ExtendedKey) DerivePath(path string) (*ExtendedKey, error) {
	indexes, err := ParseDerivationPath(path)
	if err != nil {
		return nil, err
	}

	key := k
	for _, index := range indexes {
		key, err = key.Child(index)
		if err != nil {
			return nil, err
		}
	}
	return key, nil
}

// IsDerivationPath returns whether or not the passed string parses as a valid
// derivation path.  It never panics or returns an error for malformed input.
func IsDerivationPath(path string) bool {
	_, err := ParseDerivationPath(path)
	return err == nil
}

// IsExtendedPubKey returns whether or not the passed string decodes to a
// valid extended public key for the network in either version byte family.
func IsExtendedPubKey(key string, net *chaincfg.Params) bool {
	parsed, err := ParseExtendedKey(key, net)
	return err == nil && !parsed.IsPrivate()
}

// IsExtendedPrivKey returns whether or not the passed string decodes to a
// valid extended private key for the network in either version byte family.
func IsExtendedPrivKey(key string, net *chaincfg.Params) bool {
	parsed, err := ParseExtendedKey(key, net)
	return err == nil && parsed.IsPrivate()
}
