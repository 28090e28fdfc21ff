package keys

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// RandomProvider draws independent keys from the system entropy source.
type RandomProvider struct{}

func NewRandomProvider() *RandomProvider {
	return &RandomProvider{}
}

func (p *RandomProvider) Next() (Candidate, error) {
	k, err := NewPrivKey()
	if err != nil {
		return nil, err
	}
	return NewKeyCandidate(k), nil
}

func NewPrivKey() (*btcec.PrivateKey, error) {
	k, err := gethcrypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return fromECDSA(k), nil
}

func fromECDSA(k *ecdsa.PrivateKey) *btcec.PrivateKey {
	priv, _ := btcec.PrivKeyFromBytes(gethcrypto.FromECDSA(k))
	return priv
}
