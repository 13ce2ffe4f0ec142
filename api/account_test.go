package api_test

import (
	"fmt"
	"testing"

	"github.com/stellar/go-stellar-sdk/keypair"
	"github.com/stretchr/testify/require"

	"github.com/chinmay1088/stellarpay/api"
)

var (
	accountID = keypair.MustRandom().Address()
	issuer    = keypair.MustRandom().Address()
)

func nativeOnlySnapshot() api.AccountSnapshot {
	return api.AccountSnapshot{
		AccountID: accountID,
		Sequence:  103420918407103888,
		Balances: []api.Balance{
			{Asset: api.NativeAsset(), Balance: "9999.9999900"},
		},
	}
}

func TestGetBalance(t *testing.T) {
	snapshot := nativeOnlySnapshot()
	snapshot.Balances = append(snapshot.Balances, api.Balance{
		Asset:   api.NewAsset("USDC", issuer),
		Balance: "12.5000000",
	})

	ledger := &mockLedger{}
	ledger.On("LoadAccount", accountID).Return(snapshot, nil)
	client, _ := newMockedClient(ledger, api.Config{})

	balance, err := client.GetBalance("testnet", accountID, "", "")
	require.NoError(t, err)
	require.Equal(t, "9999.99999", balance.String())

	balance, err = client.GetBalance("testnet", accountID, "USDC", issuer)
	require.NoError(t, err)
	require.Equal(t, "12.5", balance.String())

	// code without issuer selects native
	balance, err = client.GetBalance("testnet", accountID, "USDC", "")
	require.NoError(t, err)
	require.Equal(t, "9999.99999", balance.String())

	balance, err = client.GetBalance("testnet", accountID, api.NativeSymbol, issuer)
	require.NoError(t, err)
	require.Equal(t, "9999.99999", balance.String())
}

func TestGetBalanceAssetNotFound(t *testing.T) {
	ledger := &mockLedger{}
	ledger.On("LoadAccount", accountID).Return(nativeOnlySnapshot(), nil)
	client, _ := newMockedClient(ledger, api.Config{})

	_, err := client.GetBalance("testnet", accountID, "USDC", issuer)
	require.ErrorIs(t, err, api.ErrAssetNotFound)
}

func TestGetBalanceAccountNotFound(t *testing.T) {
	ledger := &mockLedger{}
	ledger.On("LoadAccount", accountID).Return(nil, fmt.Errorf("%w: %s", api.ErrAccountNotFound, accountID))
	client, _ := newMockedClient(ledger, api.Config{})

	_, err := client.GetBalance("testnet", accountID, "", "")
	require.ErrorIs(t, err, api.ErrAccountNotFound)
}

func TestIsTrustedNative(t *testing.T) {
	ledger := &mockLedger{}
	client, dialed := newMockedClient(ledger, api.Config{})

	for _, args := range [][2]string{
		{"", ""},
		{api.NativeSymbol, ""},
		{api.NativeSymbol, issuer},
	} {
		trusted, err := client.IsTrusted("main", accountID, args[0], args[1])
		require.NoError(t, err)
		require.True(t, trusted)
	}
	require.Empty(t, *dialed)
	ledger.AssertNotCalled(t, "LoadAccount", accountID)
}

func TestIsTrustedCustom(t *testing.T) {
	snapshot := nativeOnlySnapshot()
	snapshot.Balances = append(snapshot.Balances, api.Balance{
		Asset:   api.NewAsset("USDC", issuer),
		Balance: "0.0000000",
	})

	ledger := &mockLedger{}
	ledger.On("LoadAccount", accountID).Return(snapshot, nil)
	client, _ := newMockedClient(ledger, api.Config{})

	trusted, err := client.IsTrusted("testnet", accountID, "USDC", issuer)
	require.NoError(t, err)
	require.True(t, trusted)

	trusted, err = client.IsTrusted("testnet", accountID, "EURT", issuer)
	require.NoError(t, err)
	require.False(t, trusted)
}

func TestIsTrustedMissingAccount(t *testing.T) {
	ledger := &mockLedger{}
	ledger.On("LoadAccount", accountID).Return(nil, fmt.Errorf("%w: %s", api.ErrAccountNotFound, accountID))
	client, _ := newMockedClient(ledger, api.Config{})

	trusted, err := client.IsTrusted("testnet", accountID, "USDC", issuer)
	require.NoError(t, err)
	require.False(t, trusted)
}

func TestIsTrustedUnreachable(t *testing.T) {
	ledger := &mockLedger{}
	ledger.On("LoadAccount", accountID).Return(nil, fmt.Errorf("%w: dial tcp", api.ErrNetworkUnreachable))
	client, _ := newMockedClient(ledger, api.Config{})

	_, err := client.IsTrusted("testnet", accountID, "USDC", issuer)
	require.ErrorIs(t, err, api.ErrNetworkUnreachable)
}
