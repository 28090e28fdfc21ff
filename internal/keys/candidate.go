// Package keys produces candidate keypairs and encodes their base58 addresses.
package keys

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg"

	"VanityGen/internal/network"
)

// Encoding selects one address form of a key.
type Encoding struct {
	Network    *network.Network
	Compressed bool
	ScriptHash bool
}

// Candidate is one generated key as seen by the matcher.
type Candidate interface {
	Address(enc Encoding) string
}

// Provider yields a fresh candidate per call. A Provider is used by a single
// worker and need not be safe for concurrent use.
type Provider interface {
	Next() (Candidate, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() (Candidate, error)

func (f ProviderFunc) Next() (Candidate, error) { return f() }

const opCheckSig = 0xac

// KeyCandidate is a candidate backed by a secp256k1 private key. Encoded
// addresses are cached per Encoding; a KeyCandidate is not safe for
// concurrent Address calls.
type KeyCandidate struct {
	priv *btcec.PrivateKey

	// Set when the key was derived from a mnemonic.
	Mnemonic string
	Path     string

	cache []cachedAddr
}

type cachedAddr struct {
	enc  Encoding
	addr string
}

func NewKeyCandidate(priv *btcec.PrivateKey) *KeyCandidate {
	return &KeyCandidate{priv: priv}
}

func (c *KeyCandidate) PrivateKey() *btcec.PrivateKey { return c.priv }

// Address encodes the key as a P2PKH address, or as a P2SH address when
// enc.ScriptHash is set: P2SH-P2WPKH for compressed keys and P2SH-P2PK for
// uncompressed ones.
func (c *KeyCandidate) Address(enc Encoding) string {
	for _, ca := range c.cache {
		if ca.enc == enc {
			return ca.addr
		}
	}
	addr := EncodeAddress(c.priv.PubKey(), enc)
	c.cache = append(c.cache, cachedAddr{enc: enc, addr: addr})
	return addr
}

// WIF returns the wallet import format of the key for the network.
func (c *KeyCandidate) WIF(n *network.Network, compressed bool) (string, error) {
	w, err := btcutil.NewWIF(c.priv, &chaincfg.Params{PrivateKeyID: n.PrivateKeyID}, compressed)
	if err != nil {
		return "", fmt.Errorf("encode wif: %w", err)
	}
	return w.String(), nil
}

// EncodeAddress builds the base58check address of pub.
func EncodeAddress(pub *btcec.PublicKey, enc Encoding) string {
	var serialized []byte
	if enc.Compressed {
		serialized = pub.SerializeCompressed()
	} else {
		serialized = pub.SerializeUncompressed()
	}
	hash := btcutil.Hash160(serialized)
	if enc.ScriptHash {
		hash = btcutil.Hash160(redeemScript(serialized, hash, enc.Compressed))
	}
	return base58.CheckEncode(hash, enc.Network.AddrID(enc.ScriptHash))
}

func redeemScript(pub, pubHash []byte, compressed bool) []byte {
	if compressed {
		// witness v0 keyhash program
		return append([]byte{0x00, 0x14}, pubHash...)
	}
	script := make([]byte, 0, len(pub)+2)
	script = append(script, byte(len(pub)))
	script = append(script, pub...)
	return append(script, opCheckSig)
}
