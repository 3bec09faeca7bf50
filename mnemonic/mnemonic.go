// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mnemonic implements seed phrase classification and generation.
//
// Two seed schemes are in circulation.  Old-style seeds are either raw hex
// encoding 16 or 32 bytes, or 12/24 words encoding the same bytes through the
// legacy triplet codec.  Standard seeds carry their version in the seed
// itself: the phrase is classified by the hex prefix of an HMAC-SHA512 over
// the normalized text, so any phrase in any language can be a standard seed
// without a wordlist lookup.
//
// Because the legacy codec accepts any phrase built from the wordlist,
// generated standard seeds are 13 words, which keeps the two classifications
// disjoint.
package mnemonic

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"unicode"

	"github.com/vulpemventures/go-bip39"
	"golang.org/x/text/unicode/norm"
)

// SeedPrefixStandard is the version prefix of standard seeds.
const SeedPrefixStandard = "01"

// seedVersionKey is the HMAC key for the standard seed version check.
var seedVersionKey = []byte("Seed version")

// wordsPerGroup is the number of words the legacy codec consumes per 32-bit
// group.
const wordsPerGroup = 3

var (
	wordIndexOnce sync.Once
	wordIndex     map[string]int
)

// lookupWord returns the wordlist index of a word.
func lookupWord(word string) (int, bool) {
	wordIndexOnce.Do(func() {
		list := bip39.GetWordList()
		wordIndex = make(map[string]int, len(list))
		for i, w := range list {
			wordIndex[w] = i
		}
	})
	idx, ok := wordIndex[word]
	return idx, ok
}

// NormalizeSeed canonicalizes a seed phrase: Unicode NFKD normalization,
// lowercasing, removal of combining marks, and collapsing all runs of
// whitespace to a single space with no leading or trailing whitespace.
func NormalizeSeed(seed string) string {
	decomposed := norm.NFKD.String(seed)
	decomposed = strings.ToLower(decomposed)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// mod returns a mod n with the sign of n, matching the legacy codec which
// operates on differences that may be negative.
func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

// decodeOldMnemonic decodes words through the legacy triplet codec, returning
// the hex rendering of the encoded value and whether every word was on the
// wordlist.  Each group of three words encodes one value rendered as eight
// hex digits; a group whose value overflows 32 bits renders wider, which the
// caller detects through the total length.
func decodeOldMnemonic(words []string) (string, bool) {
	n := len(bip39.GetWordList())
	var b strings.Builder
	for i := 0; i+wordsPerGroup <= len(words); i += wordsPerGroup {
		i1, ok1 := lookupWord(words[i])
		i2, ok2 := lookupWord(words[i+1])
		i3, ok3 := lookupWord(words[i+2])
		if !ok1 || !ok2 || !ok3 {
			return "", false
		}
		x := i1 + n*mod(i2-i1, n) + n*n*mod(i3-i2, n)
		fmt.Fprintf(&b, "%08x", x)
	}
	return b.String(), true
}

// IsOldSeed determines whether the seed is an old-style seed.  That is the
// case when the whitespace-stripped seed is raw hex for exactly 16 or 32
// bytes, or when it is 12 or 24 wordlist words whose legacy decoding renders
// to the corresponding 32 or 64 hex digits.
func IsOldSeed(seed string) bool {
	normalized := NormalizeSeed(seed)

	stripped := strings.Join(strings.Fields(normalized), "")
	if decoded, err := hex.DecodeString(stripped); err == nil {
		if len(decoded) == 16 || len(decoded) == 32 {
			return true
		}
	}

	words := strings.Fields(normalized)
	if len(words) != 12 && len(words) != 24 {
		return false
	}
	decoded, ok := decodeOldMnemonic(words)
	if !ok {
		return false
	}
	return len(decoded) == 32 || len(decoded) == 64
}

// IsStandardSeed determines whether the seed is a standard versioned seed
// with the given version prefix.  The check is an HMAC-SHA512 of the
// normalized phrase keyed by a fixed string, compared by hex prefix, so it is
// independent of any wordlist.
func IsStandardSeed(seed, prefix string) bool {
	mac := hmac.New(sha512.New, seedVersionKey)
	mac.Write([]byte(NormalizeSeed(seed)))
	digest := hex.EncodeToString(mac.Sum(nil))
	return strings.HasPrefix(digest, prefix)
}

// SeedType classifies a seed phrase as "old" or "standard", or returns the
// empty string when it is neither.  The old-seed rule is checked first.
func SeedType(seed string) string {
	switch {
	case IsOldSeed(seed):
		return "old"
	case IsStandardSeed(seed, SeedPrefixStandard):
		return "standard"
	default:
		return ""
	}
}

// encodeMnemonic renders a positive integer as wordlist words, least
// significant word first.
func encodeMnemonic(i *big.Int) string {
	n := big.NewInt(int64(len(bip39.GetWordList())))
	list := bip39.GetWordList()

	x := new(big.Int).Set(i)
	rem := new(big.Int)
	var words []string
	for x.Sign() > 0 {
		x.QuoRem(x, n, rem)
		words = append(words, list[rem.Int64()])
	}
	return strings.Join(words, " ")
}

// NewSeed generates a new standard seed phrase carrying the given version
// prefix.  The phrase encodes at least 132 bits of fresh entropy as 13 words,
// incrementing a nonce until the classification comes out standard and not
// old.
func NewSeed(prefix string) (string, error) {
	entropy, err := bip39.NewEntropy(160)
	if err != nil {
		return "", err
	}

	// Clamp the entropy into [2^132, 2^143) so the phrase is always 13
	// words and therefore can never collide with the 12 and 24 word
	// old-seed lengths.
	lo := new(big.Int).Lsh(big.NewInt(1), 132)
	span := new(big.Int).Lsh(big.NewInt(1), 143)
	span.Sub(span, lo)
	base := new(big.Int).SetBytes(entropy)
	base.Mod(base, span)
	base.Add(base, lo)

	i := new(big.Int).Set(base)
	one := big.NewInt(1)
	for {
		i.Add(i, one)
		seed := encodeMnemonic(i)
		if IsOldSeed(seed) {
			continue
		}
		if IsStandardSeed(seed, prefix) {
			return seed, nil
		}
	}
}
