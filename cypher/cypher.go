// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cypher implements the password based encryption applied to wallet
// secrets before they are handed to storage.
//
// The scheme is fixed by the stored format: the key is the double SHA-256 of
// the password, the payload is AES-256-CBC encrypted under a random IV with
// PKCS#7 padding, and the result is base64(IV || ciphertext).  An empty
// password means no encryption at all; the payload passes through unchanged
// in both directions, which is how unprotected wallets are represented.
package cypher

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"unicode/utf8"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// ErrInvalidPassword describes a decryption whose result cannot be
// authenticated: the padding or character encoding of the decrypted payload
// is invalid, which with overwhelming probability means the password is
// wrong.  It is distinct from format errors so callers can re-prompt for
// credentials instead of reporting corruption.
var ErrInvalidPassword = errors.New("invalid password")

// secretKey derives the AES key for a password.
func secretKey(password string) []byte {
	return chainhash.DoubleHashB([]byte(password))
}

// addPKCSPadding adds PKCS#7 padding to a block of data.
func addPKCSPadding(src []byte) []byte {
	padding := aes.BlockSize - len(src)%aes.BlockSize
	padded := make([]byte, 0, len(src)+padding)
	padded = append(padded, src...)
	for i := 0; i < padding; i++ {
		padded = append(padded, byte(padding))
	}
	return padded
}

// removePKCSPadding removes PKCS#7 padding from a block of data, reporting
// failure when the padding bytes are inconsistent.
func removePKCSPadding(src []byte) ([]byte, error) {
	length := len(src)
	if length == 0 || length%aes.BlockSize != 0 {
		return nil, ErrInvalidPassword
	}
	padLength := int(src[length-1])
	if padLength == 0 || padLength > aes.BlockSize || padLength > length {
		return nil, ErrInvalidPassword
	}
	for _, b := range src[length-padLength:] {
		if int(b) != padLength {
			return nil, ErrInvalidPassword
		}
	}
	return src[:length-padLength], nil
}

// EncryptWithPassword encrypts the plaintext under the password and returns
// base64 text.  An empty password returns the plaintext unchanged.
func EncryptWithPassword(plaintext, password string) (string, error) {
	if password == "" {
		return plaintext, nil
	}

	block, err := aes.NewCipher(secretKey(password))
	if err != nil {
		return "", err
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	padded := addPKCSPadding([]byte(plaintext))
	out := make([]byte, aes.BlockSize+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[aes.BlockSize:], padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

// DecryptWithPassword reverses EncryptWithPassword.  An empty password
// returns the ciphertext unchanged.  A wrong password surfaces as
// ErrInvalidPassword rather than a format error.
func DecryptWithPassword(ciphertext, password string) (string, error) {
	if password == "" {
		return ciphertext, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}
	if len(decoded) < 2*aes.BlockSize || len(decoded)%aes.BlockSize != 0 {
		return "", ErrInvalidPassword
	}

	block, err := aes.NewCipher(secretKey(password))
	if err != nil {
		return "", err
	}

	iv := decoded[:aes.BlockSize]
	body := decoded[aes.BlockSize:]
	plaintext := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, body)

	unpadded, err := removePKCSPadding(plaintext)
	if err != nil {
		return "", err
	}

	// The stored payloads are always text.  Decrypting to invalid UTF-8
	// means the key, and therefore the password, was wrong.
	if !utf8.Valid(unpadded) {
		return "", ErrInvalidPassword
	}
	return string(unpadded), nil
}
