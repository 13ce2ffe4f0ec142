package stellar

import (
	"strings"
	"testing"
	"time"

	"github.com/stellar/go-stellar-sdk/keypair"
	"github.com/stellar/go-stellar-sdk/network"
	"github.com/stellar/go-stellar-sdk/txnbuild"
	"github.com/stretchr/testify/require"
)

func newTestPayment(t *testing.T) (*Payment, *keypair.Full) {
	t.Helper()
	source := keypair.MustRandom()
	p := NewPayment(source.Address(), 100)
	p.Destination = keypair.MustRandom().Address()
	p.Amount = "12.5"
	p.Timeout = 180 * time.Second
	return p, source
}

func TestPaymentLifecycle(t *testing.T) {
	p, source := newTestPayment(t)
	require.Equal(t, StateNew, p.State())

	tx, err := p.BuildAndSign(network.TestNetworkPassphrase, source)
	require.NoError(t, err)
	require.Equal(t, StateSigned, p.State())
	require.Equal(t, int64(101), tx.SequenceNumber())
	require.Equal(t, int64(txnbuild.MinBaseFee), tx.BaseFee())
	require.Len(t, tx.Signatures(), 1)

	bounds := tx.Timebounds()
	require.NotZero(t, bounds.MaxTime)
	require.InDelta(t, time.Now().Add(180*time.Second).Unix(), bounds.MaxTime, 5)

	hash, err := p.Hash(network.TestNetworkPassphrase)
	require.NoError(t, err)
	require.Len(t, hash, 64)

	require.NoError(t, p.Submitted())
	require.Equal(t, StateSubmitted, p.State())
	require.NoError(t, p.Resolve(true))
	require.Equal(t, StateConfirmed, p.State())

	// no way back once resolved
	require.ErrorIs(t, p.Resolve(false), ErrInvalidTransition)
	require.ErrorIs(t, p.Submitted(), ErrInvalidTransition)
	require.ErrorIs(t, p.Build(), ErrInvalidTransition)
}

func TestPaymentRejectedState(t *testing.T) {
	p, source := newTestPayment(t)
	_, err := p.BuildAndSign(network.TestNetworkPassphrase, source)
	require.NoError(t, err)
	require.NoError(t, p.Submitted())
	require.NoError(t, p.Resolve(false))
	require.Equal(t, StateRejected, p.State())
	require.Equal(t, "rejected", p.State().String())
}

func TestPaymentOutOfOrder(t *testing.T) {
	p, source := newTestPayment(t)

	_, err := p.Sign(network.TestNetworkPassphrase, source)
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.ErrorIs(t, p.Submitted(), ErrInvalidTransition)
	require.ErrorIs(t, p.Resolve(true), ErrInvalidTransition)
}

func TestPaymentCreditAsset(t *testing.T) {
	p, source := newTestPayment(t)
	issuer := keypair.MustRandom().Address()
	p.SetAsset("USDC", issuer)
	p.Memo = "order 77"

	tx, err := p.BuildAndSign(network.PublicNetworkPassphrase, source)
	require.NoError(t, err)

	op := tx.Operations()[0].(*txnbuild.Payment)
	require.Equal(t, "USDC", op.Asset.GetCode())
	require.Equal(t, issuer, op.Asset.GetIssuer())
	require.Equal(t, txnbuild.MemoText("order 77"), tx.Memo())

	p.SetAsset("USDC", "")
	require.True(t, p.Asset.IsNative())
}

func TestPaymentMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Payment)
	}{
		{"bad destination", func(p *Payment) { p.Destination = "GABC" }},
		{"empty destination", func(p *Payment) { p.Destination = "" }},
		{"secret as destination", func(p *Payment) { p.Destination = keypair.MustRandom().Seed() }},
		{"negative amount", func(p *Payment) { p.Amount = "-1" }},
		{"empty amount", func(p *Payment) { p.Amount = "" }},
		{"long memo", func(p *Payment) { p.Memo = strings.Repeat("x", MaxMemoBytes+1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPayment(t)
			tt.mutate(p)

			err := p.Build()
			require.ErrorIs(t, err, ErrMalformed)
			require.Equal(t, StateNew, p.State())
			require.Nil(t, p.Transaction())
		})
	}
}

func TestPaymentWrongSigner(t *testing.T) {
	p, _ := newTestPayment(t)
	require.NoError(t, p.Build())

	_, err := p.Sign(network.TestNetworkPassphrase, keypair.MustRandom())
	require.Error(t, err)
	require.Equal(t, StateBuilt, p.State())
}

func TestValidateAddress(t *testing.T) {
	require.True(t, ValidateAddress(keypair.MustRandom().Address()))
	require.False(t, ValidateAddress("GABC"))
	require.False(t, ValidateAddress(""))

	_, err := ParseAddress("not-an-address")
	require.Error(t, err)
}
