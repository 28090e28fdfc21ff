package query

import (
	"math/big"
	"strings"
	"unicode"
)

// AddressLength is the typical length of a base58 P2PKH address, used for the
// placement correction of "anywhere" queries.
const AddressLength = 34

var (
	base58Size = big.NewInt(int64(len(Alphabet)))
	foldedSize = big.NewInt(int64(len(Alphabet) / 2))
)

// Odds returns the expected number of candidates to generate before one
// matches text, under a uniform model over the base58 alphabet.
func Odds(text string, anchorBegin, caseSensitive bool) *big.Int {
	return OddsFor(AddressLength, text, anchorBegin, caseSensitive)
}

// OddsFor is Odds for addresses of addressLength characters.
func OddsFor(addressLength int, text string, anchorBegin, caseSensitive bool) *big.Int {
	odds := big.NewInt(1)
	for _, r := range text {
		if !caseSensitive && foldable(r) {
			odds.Mul(odds, foldedSize)
		} else {
			odds.Mul(odds, base58Size)
		}
	}
	if !anchorBegin {
		offsets := addressLength - len(text) + 1
		if offsets > 1 {
			odds.Quo(odds, big.NewInt(int64(offsets)))
		}
	}
	if odds.Sign() <= 0 {
		odds.SetInt64(1)
	}
	return odds
}

// foldable reports whether both cases of r are base58 symbols, which is when
// ignoring case halves the discriminating power of the position.
func foldable(r rune) bool {
	if !unicode.IsLetter(r) {
		return false
	}
	return strings.ContainsRune(Alphabet, unicode.ToUpper(r)) &&
		strings.ContainsRune(Alphabet, unicode.ToLower(r))
}
