// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cypher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRoundTrip ensures payloads encrypt and decrypt back to the original
// text, including multi-byte unicode.
func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		password string
	}{
		{"ascii", "blah", "uber secret"},
		{"unicode", "更稳定的交易平台", "secret"},
		{"empty payload", "", "secret"},
		{"long payload", "TDt9EZSrSEZyJVGtRKog7FzuoLao9aHdKRGfjqFKzXcs1tp" +
			"eBJGNqMmP2PUrnyLHLUeykytcPuchZUNneTZJMTS9ndsWpka56fiz6pkRRSQn" +
			"TkR", "wallet password"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			enc, err := EncryptWithPassword(test.payload, test.password)
			require.NoError(t, err)
			require.NotEqual(t, test.payload, enc)

			dec, err := DecryptWithPassword(enc, test.password)
			require.NoError(t, err)
			require.Equal(t, test.payload, dec)
		})
	}
}

// TestNoPassword ensures the empty password is the identity transform in
// both directions.
func TestNoPassword(t *testing.T) {
	const payload = "更稳定的交易平台"

	enc, err := EncryptWithPassword(payload, "")
	require.NoError(t, err)
	require.Equal(t, payload, enc)

	dec, err := DecryptWithPassword(payload, "")
	require.NoError(t, err)
	require.Equal(t, payload, dec)
}

// TestWrongPassword ensures decrypting with the wrong password surfaces
// ErrInvalidPassword, not garbage output.
func TestWrongPassword(t *testing.T) {
	enc, err := EncryptWithPassword("blah", "uber secret")
	require.NoError(t, err)

	_, err = DecryptWithPassword(enc, "not the password")
	require.ErrorIs(t, err, ErrInvalidPassword)
}

// TestDecryptMalformed ensures structurally invalid ciphertext fails rather
// than panicking.
func TestDecryptMalformed(t *testing.T) {
	tests := []struct {
		name       string
		ciphertext string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"too short", "QUJD"},
		{"not block aligned", "QUJDREVGR0hJSktMTU5PUFFSU1RVVldYWVphYmNkZQ=="},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := DecryptWithPassword(test.ciphertext, "pw")
			require.Error(t, err)
		})
	}
}
