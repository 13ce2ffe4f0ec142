package api

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// GetBalance fetches the balance of accountID for the selected asset. Native
// XLM is used unless both assetCode and assetIssuer are given.
func (c *Client) GetBalance(selector, accountID, assetCode, assetIssuer string) (decimal.Decimal, error) {
	snapshot, err := c.loadAccount(selector, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	asset := NewAsset(assetCode, assetIssuer)
	entry, ok := snapshot.Find(asset)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrAssetNotFound, asset)
	}

	balance, err := decimal.NewFromString(entry.Balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse balance %q: %w", entry.Balance, err)
	}
	return balance, nil
}

// IsTrusted reports whether accountID holds a trust line for the asset.
// Native XLM is always trusted and needs no network call. An account that
// does not exist trusts nothing.
func (c *Client) IsTrusted(selector, accountID, assetCode, assetIssuer string) (bool, error) {
	asset := NewAsset(assetCode, assetIssuer)
	if asset.IsNative() {
		return true, nil
	}

	snapshot, err := c.loadAccount(selector, accountID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return false, nil
		}
		return false, err
	}

	_, ok := snapshot.Find(asset)
	return ok, nil
}

func (c *Client) loadAccount(selector, accountID string) (AccountSnapshot, error) {
	ledger, err := c.GetClient(selector)
	if err != nil {
		return AccountSnapshot{}, err
	}
	snapshot, err := ledger.LoadAccount(accountID)
	if err != nil {
		return AccountSnapshot{}, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	return snapshot, nil
}
