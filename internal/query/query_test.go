package query

import (
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VanityGen/internal/keys"
	"VanityGen/internal/network"
)

// addr is a candidate whose address is the same for every encoding.
type addr string

func (a addr) Address(keys.Encoding) string { return string(a) }

func TestCheckBase58(t *testing.T) {
	assert.NoError(t, CheckBase58("1CATxyz"))
	assert.NoError(t, CheckBase58(Alphabet))

	for _, bad := range []string{"0", "O", "I", "l", "ab-c", "héllo"} {
		err := CheckBase58(bad)
		var fe *FormatError
		require.True(t, errors.As(err, &fe), bad)
		assert.GreaterOrEqual(t, fe.Pos, 0)
	}

	var fe *FormatError
	require.ErrorAs(t, CheckBase58(""), &fe)
	assert.Equal(t, -1, fe.Pos)
}

func TestFormatError_Position(t *testing.T) {
	var fe *FormatError
	require.ErrorAs(t, CheckBase58("abc0def"), &fe)
	assert.Equal(t, 3, fe.Pos)
	assert.Equal(t, '0', fe.Char)
	assert.Contains(t, fe.Error(), "position 3")
}

func TestNew_RejectsInvalidText(t *testing.T) {
	_, err := New(Config{Text: "C0T"})
	var fe *FormatError
	assert.ErrorAs(t, err, &fe)

	_, err = New(Config{Text: "CAT", Network: &network.Network{Name: "empty"}})
	assert.Error(t, err)
}

func TestBeginAnchored(t *testing.T) {
	q := MustNew(Config{Text: "CAT", AnchorBegin: true, CaseSensitive: true})

	assert.True(t, q.Matches(addr("1CATxyz"), network.BitcoinMainnet))
	assert.False(t, q.Matches(addr("1xCATyz"), network.BitcoinMainnet))
	assert.False(t, q.Matches(addr("1catXYZ"), network.BitcoinMainnet))

	q.SetCaseSensitive(false)
	assert.True(t, q.Matches(addr("1CATxyz"), network.BitcoinMainnet))
	assert.True(t, q.Matches(addr("1catXYZ"), network.BitcoinMainnet))
	assert.False(t, q.Matches(addr("1xCATyz"), network.BitcoinMainnet))
}

func TestAnywhere(t *testing.T) {
	q := MustNew(Config{Text: "CAT", CaseSensitive: true})

	assert.True(t, q.Matches(addr("1CATxyz"), nil))
	assert.True(t, q.Matches(addr("1xCATyz"), nil))
	assert.True(t, q.Matches(addr("1xyzCAT"), nil))
	assert.False(t, q.Matches(addr("1xyzCA"), nil))
	assert.True(t, q.Matches(addr("CATxyz"), nil))

	// the text may cover the version character
	q = MustNew(Config{Text: "1Bob", CaseSensitive: true})
	assert.Equal(t, "^.*1Bob.*$", q.Pattern().String())
	assert.True(t, q.Matches(addr("1Bobxyzxyz"), network.BitcoinMainnet))
	assert.True(t, q.Matches(addr("3x1Bobxyz"), network.BitcoinMainnet))
}

func TestTextIsLiteral(t *testing.T) {
	// base58 has no regexp metacharacters, so exercise the quoting through
	// Compile directly.
	p := Compile(Config{Text: "a.c", AnchorBegin: true, CaseSensitive: true})
	assert.True(t, p.MatchString("1a.c"))
	assert.False(t, p.MatchString("1abc"))
}

func TestNetworkScoped(t *testing.T) {
	n := &network.Network{Name: "test", Prefixes: []string{"1", "3"}}
	q := MustNew(Config{Text: "CAT", CaseSensitive: true, Network: n})

	assert.True(t, q.Matches(addr("1xxCAT"), network.Litecoin))
	assert.True(t, q.Matches(addr("3CAT"), nil))
	for _, a := range []string{"2xxCAT", "mCATCAT", "LCAT", "CAT"} {
		assert.False(t, q.Matches(addr(a), nil), a)
	}
	assert.Equal(t, n, q.Encoding(network.Litecoin).Network)
}

func TestNetworkScoped_Begins(t *testing.T) {
	q := MustNew(Config{Text: "Dog", AnchorBegin: true, CaseSensitive: true, Network: network.Dogecoin})

	assert.True(t, q.Matches(addr("DDogxyz"), nil))
	assert.True(t, q.Matches(addr("ADogxyz"), nil))
	assert.False(t, q.Matches(addr("DxDogyz"), nil))
	assert.False(t, q.Matches(addr("1Dogxyz"), nil))
}

func TestNetworkScoped_ScriptHashPrefixes(t *testing.T) {
	q := MustNew(Config{Text: "abc", CaseSensitive: true, Network: network.BitcoinMainnet})
	assert.Equal(t, "^(?:1|3).*abc.*$", q.Pattern().String())

	q.SetScriptHash(true)
	assert.Equal(t, "^(?:3).*abc.*$", q.Pattern().String())
	assert.False(t, q.Matches(addr("1abc"), nil))
	assert.True(t, q.Matches(addr("3abc"), nil))
}

func TestPlainScope_UsesDefaultNetworkForEncoding(t *testing.T) {
	q := MustNew(Config{Text: "abc", Compressed: true})

	enc := q.Encoding(network.Litecoin)
	assert.Same(t, network.Litecoin, enc.Network)
	assert.True(t, enc.Compressed)
	assert.False(t, enc.ScriptHash)
}

func TestPatternShapes(t *testing.T) {
	cases := []struct {
		cfg  Config
		want string
	}{
		{Config{Text: "abc", AnchorBegin: true, CaseSensitive: true}, "^.abc.*$"},
		{Config{Text: "abc", CaseSensitive: true}, "^.*abc.*$"},
		{Config{Text: "abc"}, "^.*(?i:abc).*$"},
		{Config{Text: "abc", AnchorBegin: true}, "^.(?i:abc).*$"},
		{Config{Text: "abc", Network: network.Litecoin}, "^(?:L|M).*(?i:abc).*$"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Compile(tc.cfg).String())
	}
}

func TestMutationNeverStale(t *testing.T) {
	q := MustNew(Config{Text: "abc"})

	require.NoError(t, q.SetText("Zz9"))
	q.SetAnchorBegin(true)
	q.SetCaseSensitive(true)
	q.SetScriptHash(true)
	require.NoError(t, q.SetNetwork(network.BitcoinTestnet))
	q.SetAnchorBegin(false)

	final := q.Config()
	assert.Equal(t, Compile(final).String(), q.Pattern().String())
	assert.Equal(t, Compile(final).String(), Compile(final).String())

	require.NoError(t, q.SetNetwork(nil))
	assert.Equal(t, "^.*Zz9.*$", q.Pattern().String())
}

func TestSetText_InvalidKeepsState(t *testing.T) {
	q := MustNew(Config{Text: "abc", CaseSensitive: true})
	before := q.Pattern().String()

	err := q.SetText("ab0")
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "abc", q.PlainText())
	assert.Equal(t, before, q.Pattern().String())
}

func TestConcurrentMutationAndMatch(t *testing.T) {
	q := MustNew(Config{Text: "abc", CaseSensitive: true})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			q.SetCaseSensitive(i%2 == 0)
			q.SetAnchorBegin(i%3 == 0)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			st := q.state.Load()
			assert.Equal(t, Compile(st.cfg).String(), st.pattern.String())
			q.Matches(addr("1abc"), nil)
		}
	}()
	wg.Wait()
	assert.Equal(t, Compile(q.Config()).String(), q.Pattern().String())
}

func TestMatch_HitCarriesTestedState(t *testing.T) {
	q := MustNew(Config{Text: "abc", SingleShot: true, Compressed: true})

	hit, ok := q.Match(addr("1abc"), network.Litecoin)
	require.True(t, ok)
	q.SetSingleShot(false)
	q.SetCompressed(false)

	assert.True(t, hit.SingleShot)
	assert.True(t, hit.Encoding.Compressed)
	assert.Same(t, network.Litecoin, hit.Encoding.Network)
	assert.Equal(t, "1abc", hit.Address)
}

func TestQueryOdds(t *testing.T) {
	q := MustNew(Config{Text: "abc", AnchorBegin: true, CaseSensitive: true})
	assert.Equal(t, 0, q.Odds().Cmp(big.NewInt(58*58*58)))
}
