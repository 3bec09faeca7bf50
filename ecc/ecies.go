// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
)

var (
	// ErrInvalidMAC occurs when the message authentication check (MAC)
	// fails during decryption.  This happens because of either an invalid
	// private key or corrupt ciphertext.
	ErrInvalidMAC = errors.New("invalid mac hash")

	// ErrMalformedMessage occurs when an encrypted message is structurally
	// invalid: wrong magic prefix, impossible length, or a ciphertext that
	// is not a whole number of cipher blocks.
	ErrMalformedMessage = errors.New("malformed encrypted message")

	// eciesMagic is the fixed prefix identifying the encrypted message
	// format.  It is authenticated by the MAC along with the rest of the
	// message.
	eciesMagic = []byte("BIE1")
)

// sharedSecret computes the ECDH shared secret between the private and public
// keys: the compressed serialization of the private scalar multiplied into
// the public point.  The secret depends only on the curve point, so it is
// identical no matter which serialization of the public key the sender held.
func sharedSecret(privKey *btcec.PrivateKey, pubKey *btcec.PublicKey) []byte {
	var point, result btcec.JacobianPoint
	pubKey.AsJacobian(&point)
	btcec.ScalarMultNonConst(&privKey.Key, &point, &result)
	result.ToAffine()
	return btcec.NewPublicKey(&result.X, &result.Y).SerializeCompressed()
}

// deriveKeys expands an ECDH shared secret into the IV and the encryption and
// MAC keys with a single SHA-512.
func deriveKeys(secret []byte) (iv, keyE, keyM []byte) {
	derived := sha512.Sum512(secret)
	return derived[:16], derived[16:32], derived[32:]
}

// addPKCSPadding adds PKCS#7 padding to a block of data.
func addPKCSPadding(src []byte) []byte {
	padding := aes.BlockSize - len(src)%aes.BlockSize
	padtext := bytes.Repeat([]byte{byte(padding)}, padding)
	return append(src, padtext...)
}

// removePKCSPadding removes PKCS#7 padding from a block of data.
func removePKCSPadding(src []byte) ([]byte, error) {
	length := len(src)
	if length == 0 {
		return nil, ErrMalformedMessage
	}
	padLength := int(src[length-1])
	if padLength > aes.BlockSize || padLength == 0 || padLength > length {
		return nil, ErrMalformedMessage
	}
	return src[:length-padLength], nil
}

// EncryptMessage encrypts the message to the target public key and returns
// the result as base64 text.
//
// An ephemeral keypair is generated for every call, so encrypting the same
// message twice yields different ciphertexts.  The output layout prior to
// the base64 encoding is:
//
//	magic (4) || ephemeral pubkey (33, compressed) || AES-128-CBC ciphertext
//	|| HMAC-SHA256 (32)
//
// with the MAC computed over everything that precedes it.
func EncryptMessage(pubKey *btcec.PublicKey, message []byte) (string, error) {
	ephemeral, err := btcec.NewPrivateKey()
	if err != nil {
		return "", err
	}

	iv, keyE, keyM := deriveKeys(sharedSecret(ephemeral, pubKey))

	block, err := aes.NewCipher(keyE)
	if err != nil {
		return "", err
	}
	padded := addPKCSPadding(message)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	out := make([]byte, 0, len(eciesMagic)+33+len(ciphertext)+sha256.Size)
	out = append(out, eciesMagic...)
	out = append(out, ephemeral.PubKey().SerializeCompressed()...)
	out = append(out, ciphertext...)

	hm := hmac.New(sha256.New, keyM)
	hm.Write(out)
	out = hm.Sum(out)

	return base64.StdEncoding.EncodeToString(out), nil
}

// DecryptMessage decrypts base64 text that was encrypted to the public key of
// the provided private key with EncryptMessage.
//
// Structural problems (bad base64, wrong magic, truncated layout) surface as
// ErrMalformedMessage while an authentication failure surfaces as
// ErrInvalidMAC, so callers can distinguish corruption from using the wrong
// key.
func DecryptMessage(privKey *btcec.PrivateKey, ciphertext string) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, ErrMalformedMessage
	}

	// magic (4) || ephemeral pubkey (33) || at least one cipher block ||
	// MAC (32)
	minLength := len(eciesMagic) + 33 + aes.BlockSize + sha256.Size
	if len(decoded) < minLength {
		return nil, ErrMalformedMessage
	}
	if !bytes.Equal(decoded[:4], eciesMagic) {
		return nil, ErrMalformedMessage
	}

	ephemeralPubKey, err := btcec.ParsePubKey(decoded[4:37])
	if err != nil {
		return nil, ErrMalformedMessage
	}

	authenticated := decoded[:len(decoded)-sha256.Size]
	messageMAC := decoded[len(decoded)-sha256.Size:]
	encrypted := authenticated[37:]
	if len(encrypted)%aes.BlockSize != 0 {
		return nil, ErrMalformedMessage
	}

	iv, keyE, keyM := deriveKeys(sharedSecret(privKey, ephemeralPubKey))

	hm := hmac.New(sha256.New, keyM)
	hm.Write(authenticated)
	if !hmac.Equal(messageMAC, hm.Sum(nil)) {
		return nil, ErrInvalidMAC
	}

	block, err := aes.NewCipher(keyE)
	if err != nil {
		return nil, err
	}
	plaintext := make([]byte, len(encrypted))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, encrypted)

	return removePKCSPadding(plaintext)
}
