// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinutil

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/xgox-project/walletcore/chaincfg"
)

// TestDecodeAddress ensures address decoding accepts exactly the version
// bytes registered for the network, rejects bad checksums, and exposes the
// embedded hash.
func TestDecodeAddress(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		net     *chaincfg.Params
		hash160 string
		p2sh    bool
		err     error
	}{{
		name:    "mainnet p2pkh",
		addr:    "XJtSNWxWufU5XAh59JfXPx9peodJwTqPqf",
		net:     &chaincfg.MainNetParams,
		hash160: "52af650fba3ebae076e81e3475045c1733e1933d",
	}, {
		name:    "mainnet p2pkh 2",
		addr:    "XMy7W6qnXjKQzjKCD4JpkNBccMXwqQdGjn",
		net:     &chaincfg.MainNetParams,
		hash160: "747a19c67e086c3426821cd4bfd011e44e5a8e87",
	}, {
		name:    "mainnet p2sh",
		addr:    "8WHUEVtMDLeereT5r4ZoNKjr3MXr2TZHYY",
		net:     &chaincfg.MainNetParams,
		hash160: "a6bc1aa409ab5f2e895aa28f3cadb30dc623728e",
		p2sh:    true,
	}, {
		name:    "testnet p2pkh",
		addr:    "yah2ARXMnY5A9VaR5Cd43fjiQnsu2vZ5a8",
		net:     &chaincfg.TestNet3Params,
		hash160: "9da64e300c5e4eb4aaffc9c2fd465348d5618ad4",
	}, {
		name: "corrupted checksum",
		addr: "XJtSNWxWufU5XAh59JfXPx9peodJwTqPqg",
		net:  &chaincfg.MainNetParams,
		err:  ErrChecksumMismatch,
	}, {
		name: "mainnet address on testnet",
		addr: "XJtSNWxWufU5XAh59JfXPx9peodJwTqPqf",
		net:  &chaincfg.TestNet3Params,
		err:  ErrUnknownAddressType,
	}}

	for _, test := range tests {
		addr, err := DecodeAddress(test.addr, test.net)
		if test.err != nil {
			if !errors.Is(err, test.err) {
				t.Errorf("%s: got error %v, want %v", test.name, err,
					test.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", test.name, err)
			continue
		}

		wantHash, _ := hex.DecodeString(test.hash160)
		if got := addr.ScriptAddress(); !bytes.Equal(got, wantHash) {
			t.Errorf("%s: wrong hash160: got %x, want %x", test.name, got,
				wantHash)
		}

		// The concrete type must match the version byte.
		_, isP2SH := addr.(*AddressScriptHash)
		if isP2SH != test.p2sh {
			t.Errorf("%s: wrong address type (p2sh=%v)", test.name, isP2SH)
		}

		// Re-encoding reproduces the input exactly.
		if addr.String() != test.addr {
			t.Errorf("%s: re-encode mismatch: got %s", test.name,
				addr.String())
		}
	}
}

// TestDecodeAddressGarbage ensures input that is not Base58Check at all
// fails without classifying as a checksum problem.
func TestDecodeAddressGarbage(t *testing.T) {
	for _, text := range []string{"", "x", "notanaddress", "0OIl"} {
		if _, err := DecodeAddress(text, &chaincfg.MainNetParams); err == nil {
			t.Errorf("DecodeAddress(%q) unexpectedly succeeded", text)
		}
	}
}

// TestNewAddressFromPublicKey ensures p2pkh addresses derived from raw
// serialized public keys hash the serialization that was provided.
func TestNewAddressFromPublicKey(t *testing.T) {
	pub, _ := hex.DecodeString(
		"02c59b76fabcfc146c75365da6475f33d8fa596ef76b4b301d66da74180c429c78")
	addr, err := NewAddressPubKeyHashFromPublicKey(pub, &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("NewAddressPubKeyHashFromPublicKey: %v", err)
	}
	if addr.String() != "XJtSNWxWufU5XAh59JfXPx9peodJwTqPqf" {
		t.Fatalf("wrong address: got %s", addr)
	}
}

// TestAddressHashLength ensures constructors reject payloads that are not
// exactly 20 bytes.
func TestAddressHashLength(t *testing.T) {
	if _, err := NewAddressPubKeyHash(make([]byte, 19),
		&chaincfg.MainNetParams); err == nil {
		t.Error("NewAddressPubKeyHash accepted a 19-byte hash")
	}
	if _, err := NewAddressScriptHashFromHash(make([]byte, 21),
		&chaincfg.MainNetParams); err == nil {
		t.Error("NewAddressScriptHashFromHash accepted a 21-byte hash")
	}
}
