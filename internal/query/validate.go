package query

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// Alphabet is the base58 symbol set used by address encodings.
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// FormatError reports query text that can never appear in a base58 address.
type FormatError struct {
	Text string
	Pos  int // byte offset of the first bad character, -1 for empty text
	Char rune
}

func (e *FormatError) Error() string {
	if e.Pos < 0 {
		return "query text must not be empty"
	}
	return fmt.Sprintf("query %q: invalid base58 character %q at position %d", e.Text, e.Char, e.Pos)
}

// CheckBase58 returns a *FormatError when text is empty or contains a
// character outside the base58 alphabet.
func CheckBase58(text string) error {
	if text == "" {
		return &FormatError{Text: text, Pos: -1}
	}
	// Decode yields an empty slice for any input with a non-alphabet symbol.
	if len(base58.Decode(text)) > 0 {
		return nil
	}
	for i, r := range text {
		if !strings.ContainsRune(Alphabet, r) {
			return &FormatError{Text: text, Pos: i, Char: r}
		}
	}
	return &FormatError{Text: text, Pos: 0, Char: []rune(text)[0]}
}
