package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stellar/go-stellar-sdk/keypair"
)

var ErrInvalidSecret = errors.New("invalid secret seed")

// ParseSecret parses a Stellar secret seed (S...).
func ParseSecret(secret string) (*keypair.Full, error) {
	kp, err := keypair.ParseFull(strings.TrimSpace(secret))
	if err != nil {
		return nil, ErrInvalidSecret
	}
	return kp, nil
}

// NewRandomKeypair returns a key pair that is not tied to any mnemonic.
func NewRandomKeypair() (*keypair.Full, error) {
	kp, err := keypair.Random()
	if err != nil {
		return nil, fmt.Errorf("failed to generate keypair: %w", err)
	}
	return kp, nil
}
