// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/xgox-project/walletcore/chaincfg"
	"github.com/xgox-project/walletcore/coinutil"
)

// TestAddressToScript checks output script construction against fixed
// vectors for both networks and both standard script forms.
func TestAddressToScript(t *testing.T) {
	tests := []struct {
		addr   string
		net    *chaincfg.Params
		script string
	}{{
		addr:   "XJtSNWxWufU5XAh59JfXPx9peodJwTqPqf",
		net:    &chaincfg.MainNetParams,
		script: "76a91452af650fba3ebae076e81e3475045c1733e1933d88ac",
	}, {
		addr:   "XMy7W6qnXjKQzjKCD4JpkNBccMXwqQdGjn",
		net:    &chaincfg.MainNetParams,
		script: "76a914747a19c67e086c3426821cd4bfd011e44e5a8e8788ac",
	}, {
		addr:   "8WHUEVtMDLeereT5r4ZoNKjr3MXr2TZHYY",
		net:    &chaincfg.MainNetParams,
		script: "a914a6bc1aa409ab5f2e895aa28f3cadb30dc623728e87",
	}, {
		addr:   "8WhNpVKta6kkbP24HfvvQVeHEmgBL1B2Zr",
		net:    &chaincfg.MainNetParams,
		script: "a914ab41915b8462a3a12e1d7a2b8fd84c06ddeb9dfb87",
	}, {
		addr:   "yah2ARXMnY5A9VaR5Cd43fjiQnsu2vZ5a8",
		net:    &chaincfg.TestNet3Params,
		script: "76a9149da64e300c5e4eb4aaffc9c2fd465348d5618ad488ac",
	}, {
		addr:   "yPeP8a774GuYaZyqJPxC7K24hcbcsqz1Au",
		net:    &chaincfg.TestNet3Params,
		script: "76a914247d2d5b6334bdfa2038e85b20fc15264f8e5d2788ac",
	}, {
		addr:   "8pWgedHiF9DQswwXdR59ATSQe9pxyBZqbv",
		net:    &chaincfg.TestNet3Params,
		script: "a9146eae23d8c4a941316017946fc761a7a6c85561fb87",
	}, {
		addr:   "91EoMZCG6Yfs9NGZLYQcrJcUa55TLnvVxz",
		net:    &chaincfg.TestNet3Params,
		script: "a914e4567743d378957cd2ee7072da74b1203c1a7a0b87",
	}}

	for _, test := range tests {
		script, err := AddressToScript(test.addr, test.net)
		if err != nil {
			t.Errorf("%s: %v", test.addr, err)
			continue
		}
		if got := hex.EncodeToString(script); got != test.script {
			t.Errorf("%s: wrong script\n got: %s\nwant: %s", test.addr,
				got, test.script)
		}

		// The script must decompose back to the same address.
		class, addr, err := ExtractScriptAddr(script, test.net)
		if err != nil {
			t.Errorf("%s: ExtractScriptAddr: %v", test.addr, err)
			continue
		}
		if addr == nil || addr.String() != test.addr {
			t.Errorf("%s: decomposed to %v (class %v)", test.addr, addr,
				class)
		}
	}

	// Unknown version bytes must fail, not guess.
	if _, err := AddressToScript("Xn6ZqLcuKpYoSkiXKmLMWKtoF2sNExHwjT",
		&chaincfg.MainNetParams); !errors.Is(err, coinutil.ErrUnknownAddressType) {
		t.Errorf("unknown version byte: got %v", err)
	}
}

// TestGetScriptClass checks classification over every recognized form plus
// assorted non-standard scripts.
func TestGetScriptClass(t *testing.T) {
	p2pkh, _ := hex.DecodeString(
		"76a91452af650fba3ebae076e81e3475045c1733e1933d88ac")
	p2sh, _ := hex.DecodeString(
		"a914a6bc1aa409ab5f2e895aa28f3cadb30dc623728e87")
	p2pkCompressed, _ := hex.DecodeString(
		"210299f7dd97f2ca1d2e7ae0df3b1c88205532cab812f2b632c1ecfd9015dc24ea30ac")
	p2pkUncompressed, _ := hex.DecodeString(
		"4104b0bd634234abbb1ba1e986e884185c61cf43e001f9137f23c2c409273eb16e65" +
			"37a576782eba668a7ef8bd3b3cfb1edb7117ab65129b8a2e681f3c1e0908ef7bac")

	key1, _ := hex.DecodeString(
		"02c59b76fabcfc146c75365da6475f33d8fa596ef76b4b301d66da74180c429c78")
	key2, _ := hex.DecodeString(
		"03fa334250ddb2a51b30b31a98922a5e1c107042a482b68fc74999c6962ae3276e")
	multisig, err := MultiSigScript([][]byte{key1, key2}, 1)
	if err != nil {
		t.Fatalf("MultiSigScript: %v", err)
	}

	tests := []struct {
		name   string
		script []byte
		class  ScriptClass
	}{
		{"p2pkh", p2pkh, PubKeyHashTy},
		{"p2sh", p2sh, ScriptHashTy},
		{"p2pk compressed", p2pkCompressed, PubKeyTy},
		{"p2pk uncompressed", p2pkUncompressed, PubKeyTy},
		{"1-of-2 multisig", multisig, MultiSigTy},
		{"empty", nil, NonStandardTy},
		{"single opcode", []byte{OP_CHECKSIG}, NonStandardTy},
		{"truncated p2pkh", p2pkh[:24], NonStandardTy},
	}

	for _, test := range tests {
		if got := GetScriptClass(test.script); got != test.class {
			t.Errorf("%s: got %v, want %v", test.name, got, test.class)
		}
	}
}

// TestMultiSigScript ensures multisig redeem scripts round trip through
// construction and extraction and that invalid parameters are rejected.
func TestMultiSigScript(t *testing.T) {
	key1, _ := hex.DecodeString(
		"02c59b76fabcfc146c75365da6475f33d8fa596ef76b4b301d66da74180c429c78")
	key2, _ := hex.DecodeString(
		"03fa334250ddb2a51b30b31a98922a5e1c107042a482b68fc74999c6962ae3276e")
	key3, _ := hex.DecodeString(
		"02588d202afcc1ee4ab5254c7847ec25b9a135bbda0f2bc69ee1a714749fd77dc9")

	script, err := MultiSigScript([][]byte{key1, key2, key3}, 2)
	if err != nil {
		t.Fatalf("MultiSigScript: %v", err)
	}

	details, err := ExtractMultisigDetails(script)
	if err != nil {
		t.Fatalf("ExtractMultisigDetails: %v", err)
	}
	if details.RequiredSigs != 2 {
		t.Errorf("wrong required sigs: got %d, want 2", details.RequiredSigs)
	}
	if len(details.PubKeys) != 3 {
		t.Fatalf("wrong key count: got %d, want 3", len(details.PubKeys))
	}
	for i, want := range [][]byte{key1, key2, key3} {
		if !bytes.Equal(details.PubKeys[i], want) {
			t.Errorf("key %d mismatch", i)
		}
	}

	// Parameter validation.
	if _, err := MultiSigScript([][]byte{key1}, 2); !errors.Is(err, ErrTooManyRequiredSigs) {
		t.Errorf("2-of-1: got %v, want %v", err, ErrTooManyRequiredSigs)
	}
	if _, err := MultiSigScript([][]byte{key1, key2}, 0); !errors.Is(err, ErrTooManyRequiredSigs) {
		t.Errorf("0-of-2: got %v, want %v", err, ErrTooManyRequiredSigs)
	}

	// Extraction rejects non-multisig scripts.
	p2pkh, _ := hex.DecodeString(
		"76a91452af650fba3ebae076e81e3475045c1733e1933d88ac")
	if _, err := ExtractMultisigDetails(p2pkh); !errors.Is(err, ErrNotMultisigScript) {
		t.Errorf("p2pkh: got %v, want %v", err, ErrNotMultisigScript)
	}
}

// TestScriptHash checks the server index key derivation against fixed
// vectors.
func TestScriptHash(t *testing.T) {
	tests := []struct {
		addr       string
		scripthash string
	}{{
		addr:       "XJtSNWxWufU5XAh59JfXPx9peodJwTqPqf",
		scripthash: "557041e6ceca2cff492d60f035ae3db4408ae6aa50840d932b95858b772f6133",
	}, {
		addr:       "XMy7W6qnXjKQzjKCD4JpkNBccMXwqQdGjn",
		scripthash: "722ac34d1d99241e7ff7aabbb27dcc1cde381c1bfce272683160c38bc798e5b5",
	}, {
		addr:       "XKd9mNGxc1JrGLaZmv643LCvuBwpeKJjuA",
		scripthash: "60ad5a8b922f758cd7884403e90ee7e6f093f8d21a0ff24c9a865e695ccefdf1",
	}}

	for _, test := range tests {
		got, err := AddressToScriptHash(test.addr, &chaincfg.MainNetParams)
		if err != nil {
			t.Errorf("%s: %v", test.addr, err)
			continue
		}
		if got != test.scripthash {
			t.Errorf("%s: wrong scripthash\n got: %s\nwant: %s", test.addr,
				got, test.scripthash)
		}
	}
}

// TestPayToAddrScriptNil ensures unsupported address values are rejected.
func TestPayToAddrScriptNil(t *testing.T) {
	if _, err := PayToAddrScript(nil); !errors.Is(err, ErrUnsupportedAddress) {
		t.Errorf("nil address: got %v, want %v", err, ErrUnsupportedAddress)
	}
}
