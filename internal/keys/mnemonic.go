package keys

import (
	"fmt"

	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
	bip39 "github.com/tyler-smith/go-bip39"
)

// MnemonicOptions configures a MnemonicProvider.
type MnemonicOptions struct {
	Strength   int    // entropy bits, 128 = 12 words
	Passphrase string // BIP-39 passphrase
	DeriveN    int    // keys derived per mnemonic
	CoinType   uint32 // BIP-44 coin type
}

// MnemonicProvider generates a fresh mnemonic, derives DeriveN keys from it
// and hands them out one per Next call.
type MnemonicProvider struct {
	opt MnemonicOptions
	buf []*KeyCandidate
}

func NewMnemonicProvider(opt MnemonicOptions) *MnemonicProvider {
	if opt.Strength == 0 {
		opt.Strength = 128
	}
	if opt.DeriveN <= 0 {
		opt.DeriveN = 5
	}
	return &MnemonicProvider{opt: opt}
}

func (p *MnemonicProvider) Next() (Candidate, error) {
	if len(p.buf) == 0 {
		mn, err := NewMnemonic(p.opt.Strength)
		if err != nil {
			return nil, fmt.Errorf("mnemonic generate: %w", err)
		}
		derived, err := Derive(mn, p.opt.Passphrase, p.opt.CoinType, p.opt.DeriveN)
		if err != nil {
			return nil, fmt.Errorf("mnemonic derive: %w", err)
		}
		p.buf = derived
	}
	c := p.buf[0]
	p.buf = p.buf[1:]
	return c, nil
}

func NewMnemonic(strength int) (string, error) {
	if strength == 0 {
		strength = 128 // 12 words
	}
	entropy, err := bip39.NewEntropy(strength)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// Derive returns the first n keys of m/44'/coinType'/0'/0/i.
func Derive(mn, passphrase string, coinType uint32, n int) ([]*KeyCandidate, error) {
	if n <= 0 {
		n = 5
	}
	seed, err := bip39.NewSeedWithErrorChecking(mn, passphrase)
	if err != nil {
		return nil, err
	}
	w, err := hdwallet.NewFromSeed(seed)
	if err != nil {
		return nil, err
	}
	out := make([]*KeyCandidate, 0, n)
	for i := 0; i < n; i++ {
		pathStr := fmt.Sprintf("m/44'/%d'/0'/0/%d", coinType, i)
		path, err := hdwallet.ParseDerivationPath(pathStr)
		if err != nil {
			return nil, err
		}
		acct, err := w.Derive(path, false)
		if err != nil {
			return nil, err
		}
		priv, err := w.PrivateKey(acct)
		if err != nil {
			return nil, err
		}
		c := NewKeyCandidate(fromECDSA(priv))
		c.Mnemonic = mn
		c.Path = pathStr
		out = append(out, c)
	}
	return out, nil
}
