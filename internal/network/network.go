// Package network describes the address-version prefixes of the coins a
// search can target.
package network

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// Network is the descriptor of one target network: the version bytes used to
// encode its base58 addresses and the leading characters those bytes produce.
type Network struct {
	Name string

	PubKeyHashAddrID byte
	ScriptHashAddrID byte
	PrivateKeyID     byte // WIF
	HDCoinType       uint32

	// Prefixes is the ordered, non-empty list of leading characters valid for
	// any address of this network.
	Prefixes []string
	// ScriptHashPrefixes narrows Prefixes for P2SH addresses. May be empty.
	ScriptHashPrefixes []string
}

var ErrUnknownNetwork = errors.New("unknown network")

var (
	BitcoinMainnet = &Network{
		Name:               "bitcoin",
		PubKeyHashAddrID:   chaincfg.MainNetParams.PubKeyHashAddrID,
		ScriptHashAddrID:   chaincfg.MainNetParams.ScriptHashAddrID,
		PrivateKeyID:       chaincfg.MainNetParams.PrivateKeyID,
		HDCoinType:         chaincfg.MainNetParams.HDCoinType,
		Prefixes:           []string{"1", "3"},
		ScriptHashPrefixes: []string{"3"},
	}

	BitcoinTestnet = &Network{
		Name:               "bitcoin-testnet",
		PubKeyHashAddrID:   chaincfg.TestNet3Params.PubKeyHashAddrID,
		ScriptHashAddrID:   chaincfg.TestNet3Params.ScriptHashAddrID,
		PrivateKeyID:       chaincfg.TestNet3Params.PrivateKeyID,
		HDCoinType:         chaincfg.TestNet3Params.HDCoinType,
		Prefixes:           []string{"m", "n", "2"},
		ScriptHashPrefixes: []string{"2"},
	}

	Litecoin = &Network{
		Name:               "litecoin",
		PubKeyHashAddrID:   0x30,
		ScriptHashAddrID:   0x32,
		PrivateKeyID:       0xb0,
		HDCoinType:         2,
		Prefixes:           []string{"L", "M"},
		ScriptHashPrefixes: []string{"M"},
	}

	Dogecoin = &Network{
		Name:               "dogecoin",
		PubKeyHashAddrID:   0x1e,
		ScriptHashAddrID:   0x16,
		PrivateKeyID:       0x9e,
		HDCoinType:         3,
		Prefixes:           []string{"D", "9", "A"},
		ScriptHashPrefixes: []string{"9", "A"},
	}
)

var registry = map[string]*Network{
	BitcoinMainnet.Name: BitcoinMainnet,
	BitcoinTestnet.Name: BitcoinTestnet,
	Litecoin.Name:       Litecoin,
	Dogecoin.Name:       Dogecoin,
}

// Lookup returns the built-in network with the given name (case-insensitive).
// An empty name selects bitcoin mainnet.
func Lookup(name string) (*Network, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return BitcoinMainnet, nil
	}
	n, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownNetwork, name, strings.Join(Names(), ", "))
	}
	return n, nil
}

// Names lists the built-in network names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// AddressPrefixes returns the prefixes an address of the requested kind may
// start with.
func (n *Network) AddressPrefixes(scriptHash bool) []string {
	if scriptHash && len(n.ScriptHashPrefixes) > 0 {
		return n.ScriptHashPrefixes
	}
	return n.Prefixes
}

// AddrID returns the version byte for pubkey-hash or script-hash addresses.
func (n *Network) AddrID(scriptHash bool) byte {
	if scriptHash {
		return n.ScriptHashAddrID
	}
	return n.PubKeyHashAddrID
}

// Validate reports whether the descriptor is usable.
func (n *Network) Validate() error {
	if n == nil {
		return errors.New("nil network")
	}
	if len(n.Prefixes) == 0 {
		return fmt.Errorf("network %q: prefixes must not be empty", n.Name)
	}
	for i, p := range n.Prefixes {
		if p == "" {
			return fmt.Errorf("network %q: prefixes[%d] is empty", n.Name, i)
		}
	}
	return nil
}

func (n *Network) String() string {
	if n == nil {
		return "<default>"
	}
	return n.Name
}
