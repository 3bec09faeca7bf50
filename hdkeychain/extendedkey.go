// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkeychain

// References:
//   [BIP32]: BIP0032 - Hierarchical Deterministic Wallets
//   https://github.com/bitcoin/bips/blob/master/bip-0032.mediawiki

import (
	"bytes"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/binary"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/xgox-project/walletcore/chaincfg"
)

const (
	// RecommendedSeedLen is the recommended length in bytes for a seed
	// to a master node.
	RecommendedSeedLen = 32 // 256 bits

	// HardenedKeyStart is the index at which a hardened key starts.  Each
	// extended key has 2^31 normal child keys and 2^31 hardened child
	// keys.  The hardened keys occupy the index range [2^31, 2^32 - 1].
	HardenedKeyStart = 0x80000000 // 2^31

	// MinSeedBytes is the minimum number of bytes allowed for a seed to
	// a master node.
	MinSeedBytes = 16 // 128 bits

	// MaxSeedBytes is the maximum number of bytes allowed for a seed to
	// a master node.
	MaxSeedBytes = 64 // 512 bits

	// serializedKeyLen is the length of a serialized extended key before
	// the checksum is appended.  It consists of the version, depth,
	// parent fingerprint, child number, chain code, and 33 bytes of key
	// material.
	serializedKeyLen = 4 + 1 + 4 + 4 + 32 + 33 // 78 bytes
)

var (
	// ErrDeriveHardFromPublic describes an error in which the caller
	// attempted to derive a hardened extended key from a public key.
	ErrDeriveHardFromPublic = errors.New("cannot derive a hardened key " +
		"from a public key")

	// ErrNotPrivExtKey describes an error in which the caller attempted
	// to extract a private key from a public extended key.
	ErrNotPrivExtKey = errors.New("unable to create private keys from a " +
		"public extended key")

	// ErrInvalidChild describes an error in which the child at a specific
	// index is invalid due to the derived key falling outside of the valid
	// range for secp256k1 private keys.  This error indicates the caller
	// should simply ignore the invalid child extended key at this index
	// and increment to the next index.
	ErrInvalidChild = errors.New("the extended key at this index is invalid")

	// ErrUnusableSeed describes an error in which the provided seed is not
	// usable due to the derived key falling outside of the valid range for
	// secp256k1 private keys.  This error indicates the caller must choose
	// another seed.
	ErrUnusableSeed = errors.New("unusable seed")

	// ErrInvalidSeedLen describes an error in which the provided seed or
	// seed length is not in the allowed range.
	ErrInvalidSeedLen = errors.New("seed length must be between 128 and " +
		"512 bits")

	// ErrBadChecksum describes an error in which the checksum encoded with
	// a serialized extended key was not valid.
	ErrBadChecksum = errors.New("bad extended key checksum")

	// ErrInvalidKeyLen describes an error in which the provided serialized
	// key is not the expected length.
	ErrInvalidKeyLen = errors.New("the provided serialized extended key " +
		"length is invalid")

	// ErrInvalidKeyData describes an error in which the key material of a
	// serialized extended key does not match the visibility its version
	// bytes claim.
	ErrInvalidKeyData = errors.New("the provided serialized extended key " +
		"contains invalid key material")
)

// masterKey is the HMAC key used along with a random seed to generate the
// master node in the hierarchical tree.
var masterKey = []byte("Bitcoin seed")

// ExtendedKey houses all the information needed to support a BIP0032 style
// hierarchical deterministic extended key.  See the package overview
// documentation for more details on how to use extended keys.
type ExtendedKey struct {
	privVer   [4]byte
	pubVer    [4]byte
	family    chaincfg.HDKeyFamily
	key       []byte // will be the pubkey for extended pub keys
	pubKey    []byte // serialized compressed pubkey
	chainCode []byte
	parentFP  []byte
	childNum  uint32
	depth     uint8
	isPrivate bool
}

// newExtendedKey returns a new instance of an extended key with the given
// fields.  No error checking is performed here as it's only intended to be a
// convenience method used to create a populated struct.
func newExtendedKey(privVer, pubVer [4]byte, family chaincfg.HDKeyFamily,
	key, chainCode, parentFP []byte, depth uint8, childNum uint32,
	isPrivate bool) *ExtendedKey {

	return &ExtendedKey{
		privVer:   privVer,
		pubVer:    pubVer,
		family:    family,
		key:       key,
		chainCode: chainCode,
		parentFP:  parentFP,
		childNum:  childNum,
		depth:     depth,
		isPrivate: isPrivate,
	}
}

// pubKeyBytes returns bytes for the serialized compressed public key
// associated with this extended key in an efficient manner including memoizing
// as necessary.
func (k *ExtendedKey) pubKeyBytes() []byte {
	// Just return the key if it's already an extended public key.
	if !k.isPrivate {
		return k.key
	}

	// This is a private extended key, so calculate and memoize the public
	// key if needed.
	if len(k.pubKey) == 0 {
		privKey, _ := btcec.PrivKeyFromBytes(k.key)
		k.pubKey = privKey.PubKey().SerializeCompressed()
	}

	return k.pubKey
}

// IsPrivate returns whether or not the extended key is a private extended key.
//
// A private extended key can be used to derive both hardened and non-hardened
// child private and public extended keys.  A public extended key can only be
// used to derive non-hardened child public extended keys.
func (k *ExtendedKey) IsPrivate() bool {
	return k.isPrivate
}

// Family returns the version byte family the extended key serializes under.
func (k *ExtendedKey) Family() chaincfg.HDKeyFamily {
	return k.family
}

// Depth returns the current derivation level with respect to the root.
//
// The root key has depth zero, and the field has a maximum of 255 due to how
// depth is serialized.
func (k *ExtendedKey) Depth() uint8 {
	return k.depth
}

// ParentFingerprint returns a fingerprint of the parent extended key from
// which this one was derived.
func (k *ExtendedKey) ParentFingerprint() uint32 {
	return binary.BigEndian.Uint32(k.parentFP)
}

// ChildNum returns the child number used to derive this extended key from its
// parent.  Indexes at or above HardenedKeyStart denote hardened children.
func (k *ExtendedKey) ChildNum() uint32 {
	return k.childNum
}

// ChainCode returns a copy of the chain code of the extended key.
func (k *ExtendedKey) ChainCode() []byte {
	chainCode := make([]byte, len(k.chainCode))
	copy(chainCode, k.chainCode)
	return chainCode
}

// Child returns a derived child extended key at the given index.  When this
// extended key is a private extended key (as determined by the IsPrivate
// function), a private extended key will be derived.  Otherwise, the derived
// extended key will also be a public extended key.
//
// When the index is greater than or equal to the HardenedKeyStart constant,
// the derived extended key will be a hardened extended key.  It is only
// possible to derive a hardened extended key from a private extended key.
// Attempting to derive a hardened extended key from a public extended key
// will result in ErrDeriveHardFromPublic.
//
// There is a small chance (< 1 in 2^127) the specific child index does not
// derive to a usable child.  The ErrInvalidChild error will be returned if
// this should occur, and the caller is expected to ignore the invalid child
// and simply increment to the next index.
func (k *ExtendedKey) Child(i uint32) (*ExtendedKey, error) {
	// There are four scenarios that could happen here:
	// 1) Private extended key -> Hardened child private extended key
	// 2) Private extended key -> Non-hardened child private extended key
	// 3) Public extended key -> Non-hardened child public extended key
	// 4) Public extended key -> Hardened child public extended key (INVALID!)

	// Case #4 is invalid, so error out early.
	isChildHardened := i >= HardenedKeyStart
	if !k.isPrivate && isChildHardened {
		return nil, ErrDeriveHardFromPublic
	}

	// The data used to derive the child key depends on whether or not the
	// child is hardened per [BIP32].
	//
	// For hardened children:
	//   0x00 || ser256(parentKey) || ser32(i)
	//
	// For normal children:
	//   serP(parentPubKey) || ser32(i)
	keyLen := 33
	data := make([]byte, keyLen+4)
	if isChildHardened {
		copy(data[1:], k.key)
	} else {
		copy(data, k.pubKeyBytes())
	}
	binary.BigEndian.PutUint32(data[keyLen:], i)

	// Take the HMAC-SHA512 of the current key's chain code and the derived
	// data:
	//   I = HMAC-SHA512(Key = chainCode, Data = data)
	hmac512 := hmac.New(sha512.New, k.chainCode)
	hmac512.Write(data)
	ilr := hmac512.Sum(nil)

	// Split "I" into two 32-byte sequences Il and Ir where:
	//   Il = intermediate key used to derive the child
	//   Ir = child chain code
	il := ilr[:len(ilr)/2]
	childChainCode := ilr[len(ilr)/2:]

	// Both derived public or private keys rely on treating the left 32-byte
	// sequence calculated above (Il) as a 256-bit integer that must be
	// within the valid range for a secp256k1 private key.  There is an
	// extremely tiny chance (< 1 in 2^127) this condition will not hold,
	// and in that case, a child extended key can't be created for this
	// index and the caller should simply increment to the next index.
	var ilNum btcec.ModNScalar
	if overflow := ilNum.SetByteSlice(il); overflow {
		return nil, ErrInvalidChild
	}

	// The algorithm used to derive the child key depends on whether or not
	// a private or public child is being derived.
	//
	// For private children:
	//   childKey = parse256(Il) + parentKey
	//
	// For public children:
	//   childKey = serP(point(parse256(Il)) + parentKey)
	var isPrivate bool
	var childKey []byte
	if k.isPrivate {
		// Add the parent private key to the intermediate private key to
		// derive the final child key.
		var keyNum btcec.ModNScalar
		keyNum.SetByteSlice(k.key)
		ilNum.Add(&keyNum)
		if ilNum.IsZero() {
			return nil, ErrInvalidChild
		}
		ilBytes := ilNum.Bytes()
		childKey = ilBytes[:]
		isPrivate = true
	} else {
		// Calculate the corresponding intermediate public key for the
		// intermediate private key.
		var ilJ btcec.JacobianPoint
		btcec.ScalarBaseMultNonConst(&ilNum, &ilJ)
		if ilJ.Z.IsZero() {
			return nil, ErrInvalidChild
		}

		// Convert the serialized compressed parent public key into a
		// point so it can be added to the intermediate public key.
		pubKey, err := btcec.ParsePubKey(k.key)
		if err != nil {
			return nil, err
		}
		var pubKeyJ btcec.JacobianPoint
		pubKey.AsJacobian(&pubKeyJ)

		// Add the intermediate public key to the parent public key to
		// derive the final child key.
		//
		// childKey = serP(point(parse256(Il)) + parentKey)
		var childJ btcec.JacobianPoint
		btcec.AddNonConst(&ilJ, &pubKeyJ, &childJ)
		if childJ.Z.IsZero() {
			return nil, ErrInvalidChild
		}
		childJ.ToAffine()
		childKey = btcec.NewPublicKey(&childJ.X, &childJ.Y).SerializeCompressed()
	}

	// The fingerprint of the parent for the derived child is the first 4
	// bytes of the RIPEMD160(SHA256(parentPubKey)).
	parentFP := btcutil.Hash160(k.pubKeyBytes())[:4]
	return newExtendedKey(k.privVer, k.pubVer, k.family, childKey,
		childChainCode, parentFP, k.depth+1, i, isPrivate), nil
}

// Neuter returns a new extended public key from this extended private key.
// The same extended key will be returned unaltered if it is already an
// extended public key.
//
// As the name implies, an extended public key does not have access to the
// private key, so it is not capable of signing transactions or deriving
// child extended private keys.  However, it is capable of deriving further
// child extended public keys.
func (k *ExtendedKey) Neuter() *ExtendedKey {
	// Already an extended public key.
	if !k.isPrivate {
		return k
	}

	// Convert it to an extended public key.  The key for the new extended
	// key will simply be the pubkey of the current extended private key.
	return newExtendedKey(k.privVer, k.pubVer, k.family, k.pubKeyBytes(),
		k.chainCode, k.parentFP, k.depth, k.childNum, false)
}

// ConvertFamily returns a new extended key with the same key material and
// derivation metadata serialized under the given version byte family of the
// provided network.  This is how keys exported in the legacy format are
// normalized on import.
func (k *ExtendedKey) ConvertFamily(net *chaincfg.Params, family chaincfg.HDKeyFamily) *ExtendedKey {
	nk := newExtendedKey(net.HDPrivKeyVersion(family),
		net.HDPubKeyVersion(family), family, k.key, k.chainCode,
		k.parentFP, k.depth, k.childNum, k.isPrivate)
	nk.pubKey = k.pubKey
	return nk
}

// ECPubKey converts the extended key to a btcec public key and returns it.
func (k *ExtendedKey) ECPubKey() (*btcec.PublicKey, error) {
	return btcec.ParsePubKey(k.pubKeyBytes())
}

// ECPrivKey converts the extended key to a btcec private key and returns it.
// As you might imagine this is only possible if the extended key is a private
// extended key (as determined by the IsPrivate function).  The
// ErrNotPrivExtKey error will be returned if this function is called on a
// public extended key.
func (k *ExtendedKey) ECPrivKey() (*btcec.PrivateKey, error) {
	if !k.isPrivate {
		return nil, ErrNotPrivExtKey
	}
	privKey, _ := btcec.PrivKeyFromBytes(k.key)
	return privKey, nil
}

// SerializedPubKey returns the compressed serialization of the public key
// associated with the extended key.
func (k *ExtendedKey) SerializedPubKey() []byte {
	return k.pubKeyBytes()
}

// SerializedPrivKey returns the serialization of the private key associated
// with the extended key.  The ErrNotPrivExtKey error will be returned if the
// extended key is public.
func (k *ExtendedKey) SerializedPrivKey() ([]byte, error) {
	if !k.isPrivate {
		return nil, ErrNotPrivExtKey
	}
	return k.key, nil
}

// String returns the extended key as a human-readable base58-encoded string.
func (k *ExtendedKey) String() string {
	if len(k.key) == 0 {
		return "zeroed extended key"
	}

	var childNumBytes [4]byte
	binary.BigEndian.PutUint32(childNumBytes[:], k.childNum)

	// The serialized format is:
	//   version (4) || depth (1) || parent fingerprint (4)) ||
	//   child num (4) || chain code (32) || key data (33) || checksum (4)
	serializedBytes := make([]byte, 0, serializedKeyLen+4)
	if k.isPrivate {
		serializedBytes = append(serializedBytes, k.privVer[:]...)
	} else {
		serializedBytes = append(serializedBytes, k.pubVer[:]...)
	}
	serializedBytes = append(serializedBytes, k.depth)
	serializedBytes = append(serializedBytes, k.parentFP...)
	serializedBytes = append(serializedBytes, childNumBytes[:]...)
	serializedBytes = append(serializedBytes, k.chainCode...)
	if k.isPrivate {
		serializedBytes = append(serializedBytes, 0x00)
		serializedBytes = append(serializedBytes, k.key...)
	} else {
		serializedBytes = append(serializedBytes, k.pubKeyBytes()...)
	}

	checkSum := chainhash.DoubleHashB(serializedBytes)[:4]
	serializedBytes = append(serializedBytes, checkSum...)
	return base58.Encode(serializedBytes)
}

// Zero manually clears all fields and bytes in the extended key.  This can be
// used to explicitly clear key material from memory for enhanced security
// against memory scraping.  This function only clears this particular key and
// not any children that have already been derived.
func (k *ExtendedKey) Zero() {
	zero(k.key)
	zero(k.pubKey)
	zero(k.chainCode)
	zero(k.parentFP)
	k.key = nil
	k.pubKey = nil
	k.depth = 0
	k.childNum = 0
	k.isPrivate = false
}

// zero sets all bytes in the passed slice to zero.  This is used to
// explicitly clear private key material from memory.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// NewMaster creates a new master node for use in creating a hierarchical
// deterministic key chain.  The seed must be between 128 and 512 bits and
// should be generated by a cryptographically secure random generation source.
// The family selects the version bytes the resulting keys serialize under.
//
// NOTE: There is an extremely small chance (< 1 in 2^127) the provided seed
// will derive to an unusable secret key.  The ErrUnusableSeed error will be
// returned if this should occur, so the caller must check for it and generate
// a new seed accordingly.
func NewMaster(seed []byte, net *chaincfg.Params, family chaincfg.HDKeyFamily) (*ExtendedKey, error) {
	// Per [BIP32], the seed must be in range [MinSeedBytes, MaxSeedBytes].
	if len(seed) < MinSeedBytes || len(seed) > MaxSeedBytes {
		return nil, ErrInvalidSeedLen
	}

	// First take the HMAC-SHA512 of the master key and the seed data:
	//   I = HMAC-SHA512(Key = "Bitcoin seed", Data = S)
	hmac512 := hmac.New(sha512.New, masterKey)
	hmac512.Write(seed)
	lr := hmac512.Sum(nil)

	// Split "I" into two 32-byte sequences Il and Ir where:
	//   Il = master secret key
	//   Ir = master chain code
	secretKey := lr[:len(lr)/2]
	chainCode := lr[len(lr)/2:]

	// Ensure the key is usable.
	var secretKeyNum btcec.ModNScalar
	if overflow := secretKeyNum.SetByteSlice(secretKey); overflow ||
		secretKeyNum.IsZero() {

		return nil, ErrUnusableSeed
	}

	parentFP := []byte{0x00, 0x00, 0x00, 0x00}
	return newExtendedKey(net.HDPrivKeyVersion(family),
		net.HDPubKeyVersion(family), family, secretKey, chainCode,
		parentFP, 0, 0, true), nil
}

// ParseExtendedKey returns a new extended key instance from a base58-encoded
// extended key string.  All four version byte combinations registered for the
// provided network are recognized; the family and public/private visibility
// of the result reflect the version bytes of the input.
func ParseExtendedKey(key string, net *chaincfg.Params) (*ExtendedKey, error) {
	// The base58-decoded extended key must consist of a serialized payload
	// plus an additional 4 bytes for the checksum.
	decoded := base58.Decode(key)
	if len(decoded) != serializedKeyLen+4 {
		return nil, ErrInvalidKeyLen
	}

	// Split the payload and checksum up and ensure the checksum matches.
	payload := decoded[:len(decoded)-4]
	checkSum := decoded[len(decoded)-4:]
	expectedCheckSum := chainhash.DoubleHashB(payload)[:4]
	if !bytes.Equal(checkSum, expectedCheckSum) {
		return nil, ErrBadChecksum
	}

	return ParseRawExtendedKey(payload, net)
}

// ParseRawExtendedKey returns a new extended key instance from the raw
// 78-byte serialized payload, without a checksum.  This is the form extended
// keys take when embedded in larger binary structures such as unsigned
// transaction placeholders.
func ParseRawExtendedKey(payload []byte, net *chaincfg.Params) (*ExtendedKey, error) {
	// The serialized format is:
	//   version (4) || depth (1) || parent fingerprint (4)) ||
	//   child num (4) || chain code (32) || key data (33)
	if len(payload) != serializedKeyLen {
		return nil, ErrInvalidKeyLen
	}

	// Determine the key family and visibility from the version bytes.
	var version [4]byte
	copy(version[:], payload[:4])
	info, err := net.HDKeyInfo(version)
	if err != nil {
		return nil, err
	}

	// Deserialize the remaining payload fields.
	depth := payload[4]
	parentFP := payload[5:9]
	childNum := binary.BigEndian.Uint32(payload[9:13])
	chainCode := payload[13:45]
	keyData := payload[45:78]

	// The key data is a private key if the version bytes say so.  Serialized
	// private keys are padded with a leading zero byte.
	if info.IsPrivate {
		if keyData[0] != 0x00 {
			return nil, ErrInvalidKeyData
		}
		keyData = keyData[1:]

		// Ensure the private key is valid.  It must be within the range
		// of the order of the secp256k1 curve and not be 0.
		var keyNum btcec.ModNScalar
		if overflow := keyNum.SetByteSlice(keyData); overflow ||
			keyNum.IsZero() {

			return nil, ErrUnusableSeed
		}
	} else {
		// Ensure the public key parses as a valid point on the curve.
		if _, err := btcec.ParsePubKey(keyData); err != nil {
			return nil, err
		}
	}

	return newExtendedKey(net.HDPrivKeyVersion(info.Family),
		net.HDPubKeyVersion(info.Family), info.Family, keyData, chainCode,
		parentFP, depth, childNum, info.IsPrivate), nil
}

// GenerateSeed returns a cryptographically secure random seed that can be used
// as the input for the NewMaster function to generate a new master node.
//
// The length is in bytes and it must be between 16 and 64 (128 to 512 bits).
// The recommended length is 32 (256 bits) as defined by the
// RecommendedSeedLen constant.
func GenerateSeed(length uint8) ([]byte, error) {
	// Per [BIP32], the seed must be in range [MinSeedBytes, MaxSeedBytes].
	if length < MinSeedBytes || length > MaxSeedBytes {
		return nil, ErrInvalidSeedLen
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}

	return buf, nil
}
