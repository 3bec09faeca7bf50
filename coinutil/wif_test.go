// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinutil

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/xgox-project/walletcore/chaincfg"
)

// keyImportTests are fixed vectors covering WIF and minikey import: each
// private key text, the public key it must derive, and the resulting
// mainnet address.
var keyImportTests = []struct {
	priv       string
	pub        string
	address    string
	minikey    bool
	scriptType ScriptType
	compressed bool
}{{
	priv:       "YV56icVrjNioXn9kpZeL3DvtC7aN7kt8tr5ur2wqpMaXeJ3YQirG",
	pub:        "02c59b76fabcfc146c75365da6475f33d8fa596ef76b4b301d66da74180c429c78",
	address:    "XJtSNWxWufU5XAh59JfXPx9peodJwTqPqf",
	scriptType: STPubKeyHash,
	compressed: true,
}, {
	priv:       "YQ6GbE34bXDgMgJEEJ87Buri6MCCcCNZoozpc34ima1PBjKqA8fj",
	pub:        "03fa334250ddb2a51b30b31a98922a5e1c107042a482b68fc74999c6962ae3276e",
	address:    "XMy7W6qnXjKQzjKCD4JpkNBccMXwqQdGjn",
	scriptType: STPubKeyHash,
	compressed: true,
}, {
	priv:       "SzavMBLoXU6kDrqtUVmffv",
	pub:        "02588d202afcc1ee4ab5254c7847ec25b9a135bbda0f2bc69ee1a714749fd77dc9",
	address:    "XKd9mNGxc1JrGLaZmv643LCvuBwpeKJjuA",
	minikey:    true,
	scriptType: STPubKeyHash,
	// The compressed convention for minikeys is ambiguous; deployed
	// wallets report compressed and so does this package.
	compressed: true,
}}

// TestKeyImport decodes each private key vector and checks every derived
// field against the fixtures.
func TestKeyImport(t *testing.T) {
	net := &chaincfg.MainNetParams
	for _, test := range keyImportTests {
		wif, err := DecodePrivateKey(test.priv, net)
		if err != nil {
			t.Errorf("%s: DecodePrivateKey: %v", test.priv, err)
			continue
		}

		if wif.ScriptType != test.scriptType {
			t.Errorf("%s: wrong script type: got %v, want %v", test.priv,
				wif.ScriptType, test.scriptType)
		}
		if wif.CompressPubKey != test.compressed {
			t.Errorf("%s: wrong compressed flag: got %v, want %v",
				test.priv, wif.CompressPubKey, test.compressed)
		}

		if gotPub := hex.EncodeToString(wif.SerializePubKey()); gotPub != test.pub {
			t.Errorf("%s: wrong public key\n got: %s\nwant: %s", test.priv,
				gotPub, test.pub)
		}

		addr, err := NewAddressPubKeyHashFromPublicKey(wif.SerializePubKey(), net)
		if err != nil {
			t.Errorf("%s: address derivation: %v", test.priv, err)
			continue
		}
		if addr.String() != test.address {
			t.Errorf("%s: wrong address: got %s, want %s", test.priv,
				addr, test.address)
		}

		// Standard WIF strings re-encode to themselves.  Minikeys do not
		// round trip; they re-encode as the equivalent standard WIF.
		if !test.minikey && wif.String() != test.priv {
			t.Errorf("%s: WIF re-encode mismatch: got %s", test.priv,
				wif.String())
		}
	}
}

// TestMinikeyClassification ensures IsMinikey accepts only the minikey
// vector and that predicates never confuse the encodings.
func TestMinikeyClassification(t *testing.T) {
	for _, test := range keyImportTests {
		if IsMinikey(test.priv) != test.minikey {
			t.Errorf("IsMinikey(%s): got %v, want %v", test.priv,
				!test.minikey, test.minikey)
		}
	}

	// Near misses: wrong leading character, too short, bad check byte.
	for _, text := range []string{
		"zzavMBLoXU6kDrqtUVmffv",
		"SzavMBL",
		"SzavMBLoXU6kDrqtUVmffw",
		"SzavMBLoXU6kDrqtUVmff0", // '0' is not a base58 character
	} {
		if IsMinikey(text) {
			t.Errorf("IsMinikey(%s): unexpectedly true", text)
		}
	}
}

// TestKeyPredicates exercises the classification predicates across every
// vector: a private key is never an address and vice versa.
func TestKeyPredicates(t *testing.T) {
	net := &chaincfg.MainNetParams
	for _, test := range keyImportTests {
		if !IsPrivateKey(test.priv, net) {
			t.Errorf("IsPrivateKey(%s): got false", test.priv)
		}
		if IsPrivateKey(test.pub, net) {
			t.Errorf("IsPrivateKey(pubkey hex): got true")
		}
		if IsPrivateKey(test.address, net) {
			t.Errorf("IsPrivateKey(address): got true")
		}

		if !IsAddress(test.address, net) {
			t.Errorf("IsAddress(%s): got false", test.address)
		}
		if IsAddress(test.priv, net) {
			t.Errorf("IsAddress(privkey): got true")
		}
		if IsAddress(test.pub, net) {
			t.Errorf("IsAddress(pubkey hex): got true")
		}

		if IsCompressed(test.priv, net) != test.compressed {
			t.Errorf("IsCompressed(%s): got %v", test.priv,
				!test.compressed)
		}
	}

	// Unparseable input is false, never an error.
	if IsCompressed("garbage", net) {
		t.Error("IsCompressed(garbage): got true")
	}
}

// TestDecodeWIFErrors ensures the WIF decoder surfaces the documented error
// conditions.
func TestDecodeWIFErrors(t *testing.T) {
	net := &chaincfg.MainNetParams

	// Corrupted checksum.
	corrupt := "YV56icVrjNioXn9kpZeL3DvtC7aN7kt8tr5ur2wqpMaXeJ3YQirH"
	if _, err := DecodeWIF(corrupt, net); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("corrupt checksum: got %v, want %v", err,
			ErrChecksumMismatch)
	}

	// A valid address is not a private key.
	if _, err := DecodeWIF("XJtSNWxWufU5XAh59JfXPx9peodJwTqPqf", net); !errors.Is(err, ErrMalformedPrivateKey) {
		t.Errorf("address as WIF: got %v, want %v", err,
			ErrMalformedPrivateKey)
	}

	// Not decodable at all.
	if _, err := DecodeWIF("", net); err == nil {
		t.Error("empty WIF unexpectedly decoded")
	}
}

// TestNewWIFRoundTrip ensures keys constructed in memory encode and decode
// consistently for both script types and compression states.
func TestNewWIFRoundTrip(t *testing.T) {
	net := &chaincfg.MainNetParams
	base, err := DecodeWIF("YV56icVrjNioXn9kpZeL3DvtC7aN7kt8tr5ur2wqpMaXeJ3YQirG", net)
	if err != nil {
		t.Fatalf("DecodeWIF: %v", err)
	}

	for _, scriptType := range []ScriptType{STPubKeyHash, STScriptHash} {
		for _, compress := range []bool{false, true} {
			wif := NewWIF(base.PrivKey, net, compress, scriptType)
			redecoded, err := DecodeWIF(wif.String(), net)
			if err != nil {
				t.Fatalf("%v/%v: DecodeWIF: %v", scriptType, compress, err)
			}
			if redecoded.ScriptType != scriptType {
				t.Errorf("%v/%v: script type did not round trip",
					scriptType, compress)
			}
			if redecoded.CompressPubKey != compress {
				t.Errorf("%v/%v: compressed flag did not round trip",
					scriptType, compress)
			}
			if !redecoded.PrivKey.Key.Equals(&base.PrivKey.Key) {
				t.Errorf("%v/%v: private key did not round trip",
					scriptType, compress)
			}
		}
	}
}
