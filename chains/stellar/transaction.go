package stellar

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stellar/go-stellar-sdk/keypair"
	"github.com/stellar/go-stellar-sdk/strkey"
	"github.com/stellar/go-stellar-sdk/txnbuild"
)

var (
	// ErrMalformed is returned when a payment cannot be assembled into a
	// valid transaction envelope.
	ErrMalformed = errors.New("malformed payment")
	// ErrInvalidTransition is returned when a payment is moved out of order.
	ErrInvalidTransition = errors.New("invalid payment state transition")
)

// MaxMemoBytes is the largest text memo the network accepts.
const MaxMemoBytes = 28

// State is the lifecycle position of a payment.
type State int

const (
	StateNew State = iota
	StateBuilt
	StateSigned
	StateSubmitted
	StateConfirmed
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateBuilt:
		return "built"
	case StateSigned:
		return "signed"
	case StateSubmitted:
		return "submitted"
	case StateConfirmed:
		return "confirmed"
	case StateRejected:
		return "rejected"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Payment represents a single-operation Stellar payment
type Payment struct {
	Source      string
	Sequence    int64
	Destination string
	// Amount is a decimal string with at most 7 fractional digits.
	Amount  string
	Asset   txnbuild.Asset
	BaseFee int64
	Memo    string
	Timeout time.Duration

	state State
	tx    *txnbuild.Transaction
}

func NewPayment(source string, sequence int64) *Payment {
	return &Payment{
		Source:   source,
		Sequence: sequence,
		Asset:    txnbuild.NativeAsset{},
		BaseFee:  txnbuild.MinBaseFee,
	}
}

// SetAsset selects a credit asset. An empty code or issuer keeps XLM.
func (p *Payment) SetAsset(code, issuer string) {
	if code == "" || issuer == "" {
		p.Asset = txnbuild.NativeAsset{}
		return
	}
	p.Asset = txnbuild.CreditAsset{Code: code, Issuer: issuer}
}

func (p *Payment) State() State {
	return p.state
}

// Transaction returns the envelope once the payment is built.
func (p *Payment) Transaction() *txnbuild.Transaction {
	return p.tx
}

// Build assembles the transaction envelope. The sequence number of the
// envelope is one past the loaded account sequence.
func (p *Payment) Build() error {
	if p.state != StateNew {
		return p.transitionError(StateBuilt)
	}
	if _, err := ParseAddress(p.Destination); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(p.Memo) > MaxMemoBytes {
		return fmt.Errorf("%w: memo is %d bytes, max %d", ErrMalformed, len(p.Memo), MaxMemoBytes)
	}

	var memo txnbuild.Memo
	if p.Memo != "" {
		memo = txnbuild.MemoText(p.Memo)
	}

	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount: &txnbuild.SimpleAccount{
			AccountID: p.Source,
			Sequence:  p.Sequence,
		},
		IncrementSequenceNum: true,
		Operations: []txnbuild.Operation{
			&txnbuild.Payment{
				Destination: p.Destination,
				Amount:      p.Amount,
				Asset:       p.Asset,
			},
		},
		BaseFee: p.BaseFee,
		Memo:    memo,
		Preconditions: txnbuild.Preconditions{
			TimeBounds: txnbuild.NewTimeout(int64(p.Timeout.Seconds())),
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	p.tx = tx
	p.setState(StateBuilt)
	return nil
}

// Sign signs the built envelope for the given network passphrase.
func (p *Payment) Sign(passphrase string, signer *keypair.Full) (*txnbuild.Transaction, error) {
	if p.state != StateBuilt {
		return nil, p.transitionError(StateSigned)
	}
	if signer == nil {
		return nil, fmt.Errorf("no signer provided for payment")
	}
	if signer.Address() != p.Source {
		return nil, fmt.Errorf("signer %s does not match source %s", signer.Address(), p.Source)
	}

	signed, err := p.tx.Sign(passphrase, signer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	p.tx = signed
	p.setState(StateSigned)
	return signed, nil
}

// BuildAndSign runs Build and Sign in order.
func (p *Payment) BuildAndSign(passphrase string, signer *keypair.Full) (*txnbuild.Transaction, error) {
	if err := p.Build(); err != nil {
		return nil, err
	}
	return p.Sign(passphrase, signer)
}

// Submitted records that the signed envelope was handed to the network.
func (p *Payment) Submitted() error {
	if p.state != StateSigned {
		return p.transitionError(StateSubmitted)
	}
	p.setState(StateSubmitted)
	return nil
}

// Resolve records the network's verdict on a submitted payment.
func (p *Payment) Resolve(included bool) error {
	next := StateRejected
	if included {
		next = StateConfirmed
	}
	if p.state != StateSubmitted {
		return p.transitionError(next)
	}
	p.setState(next)
	return nil
}

// Hash returns the hex transaction hash for the given network.
func (p *Payment) Hash(passphrase string) (string, error) {
	if p.tx == nil {
		return "", fmt.Errorf("payment is not built")
	}
	return p.tx.HashHex(passphrase)
}

func (p *Payment) setState(next State) {
	log.WithFields(log.Fields{
		"from": p.Source,
		"to":   p.Destination,
		"prev": p.state,
	}).Debugf("payment %s", next)
	p.state = next
}

func (p *Payment) transitionError(next State) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.state, next)
}

// ParseAddress checks that address is an account id (G...) or a muxed
// account id (M...).
func ParseAddress(address string) (string, error) {
	if address == "" {
		return "", fmt.Errorf("empty Stellar address")
	}
	if strkey.IsValidEd25519PublicKey(address) || strkey.IsValidMuxedAccountEd25519PublicKey(address) {
		return address, nil
	}
	return "", fmt.Errorf("invalid Stellar address (%s)", address)
}

// ValidateAddress reports whether address can receive a payment.
func ValidateAddress(address string) bool {
	_, err := ParseAddress(address)
	return err == nil
}
