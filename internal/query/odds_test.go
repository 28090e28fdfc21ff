package query

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pow58(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(58), big.NewInt(int64(n)), nil)
}

func TestOdds_BeginsCaseSensitive(t *testing.T) {
	prev := big.NewInt(0)
	for l := 1; l <= 60; l++ {
		text := strings.Repeat("z", l)
		got := Odds(text, true, true)
		assert.Equal(t, 0, got.Cmp(pow58(l)), "len %d", l)
		assert.Equal(t, 1, got.Cmp(prev), "len %d not increasing", l)
		prev = got
	}
}

func TestOdds_CaseInsensitive(t *testing.T) {
	// 'a' has both cases in base58, '1' is a digit, 'i' has no upper-case
	// counterpart and 'L' has no lower-case one.
	assert.Equal(t, 0, Odds("a", true, false).Cmp(big.NewInt(29)))
	assert.Equal(t, 0, Odds("1", true, false).Cmp(big.NewInt(58)))
	assert.Equal(t, 0, Odds("i", true, false).Cmp(big.NewInt(58)))
	assert.Equal(t, 0, Odds("L", true, false).Cmp(big.NewInt(58)))
	assert.Equal(t, 0, Odds("ab1", true, false).Cmp(big.NewInt(29*29*58)))
	assert.Equal(t, -1, Odds("abc", true, false).Cmp(Odds("abc", true, true)))
}

func TestOdds_Anywhere(t *testing.T) {
	// 3 characters in a 34 character address can start at 32 offsets
	want := new(big.Int).Quo(pow58(3), big.NewInt(32))
	assert.Equal(t, 0, Odds("abc", false, true).Cmp(want))

	assert.Equal(t, 0, OddsFor(4, "abc", false, true).Cmp(new(big.Int).Quo(pow58(3), big.NewInt(2))))
	// window longer than the address: no correction
	assert.Equal(t, 0, OddsFor(2, "abc", false, true).Cmp(pow58(3)))
	// never below one trial
	assert.Equal(t, 0, Odds("a", false, false).Cmp(big.NewInt(1)))
}
