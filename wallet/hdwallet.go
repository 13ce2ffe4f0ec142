package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stellar/go-stellar-sdk/keypair"
	"github.com/stellar/go-stellar-sdk/tools/stellar-hd-wallet/crypto/derivation"
	"github.com/tyler-smith/go-bip39"
)

// MaxAccountIndex bounds account indexes, every path segment is hardened.
const MaxAccountIndex = derivation.FirstHardenedIndex - 1

var (
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	ErrInvalidPath     = errors.New("invalid derivation path")
)

// NewMnemonic generates a fresh 24 word mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// DerivationPath returns the SEP-5 path of the given account index.
func DerivationPath(index uint32) string {
	return fmt.Sprintf(derivation.StellarAccountPathFormat, index)
}

// DeriveKeypair derives the account at index from a BIP-39 mnemonic.
func DeriveKeypair(mnemonic, passphrase string, index uint32) (*keypair.Full, error) {
	if index > MaxAccountIndex {
		return nil, fmt.Errorf("%w: index %d out of range", ErrInvalidPath, index)
	}
	mnemonic = normalizeMnemonic(mnemonic)
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	return deriveStellarKey(seed, DerivationPath(index))
}

// deriveStellarKey derives an ed25519 key pair from seed and path
func deriveStellarKey(seed []byte, path string) (*keypair.Full, error) {
	key, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPath, path, err)
	}

	kp, err := keypair.FromRawSeed(key.RawSeed())
	if err != nil {
		return nil, fmt.Errorf("failed to build keypair: %w", err)
	}
	return kp, nil
}

func normalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
}
