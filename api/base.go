package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/stellar/go-stellar-sdk/strkey"
	"github.com/stellar/go-stellar-sdk/txnbuild"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultTxTimeout   = 180 * time.Second
)

// Ledger is the slice of a horizon client the orchestrator depends on.
type Ledger interface {
	LoadAccount(address string) (AccountSnapshot, error)
	SubmitTransaction(tx *txnbuild.Transaction) (TransactionRecord, error)
	FeeStats() (RawFeeStats, error)
}

// Dialer builds a Ledger for a resolved network.
type Dialer func(cfg NetworkConfig, httpClient *http.Client) (Ledger, error)

// Config tunes a Client. The zero value is usable.
type Config struct {
	HTTPClient *http.Client
	Dialer     Dialer
	// FeePercentileCap bounds estimated fees in stroops, 0 disables it.
	FeePercentileCap int64
	TxTimeout        time.Duration
	DefaultMemo      string
}

// Client handles calls to the Stellar network
type Client struct {
	httpClient  *http.Client
	dial        Dialer
	feeCap      int64
	txTimeout   time.Duration
	defaultMemo string
}

// NewClient creates a new API client
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: defaultHTTPTimeout,
		}
	}
	dial := cfg.Dialer
	if dial == nil {
		dial = dialHorizon
	}
	txTimeout := cfg.TxTimeout
	if txTimeout <= 0 {
		txTimeout = defaultTxTimeout
	}
	feeCap := cfg.FeePercentileCap
	if feeCap < 0 {
		feeCap = 0
	}

	return &Client{
		httpClient:  httpClient,
		dial:        dial,
		feeCap:      feeCap,
		txTimeout:   txTimeout,
		defaultMemo: cfg.DefaultMemo,
	}
}

// GetClient returns a fresh ledger handle for the given network selector.
// Handles are never pooled or shared between calls.
func (c *Client) GetClient(selector string) (Ledger, error) {
	cfg := Resolve(selector)
	ledger, err := c.dial(cfg, c.httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Name, err)
	}
	return ledger, nil
}

// IsValidAddress reports whether address is a well formed account id (G...).
func IsValidAddress(address string) bool {
	return strkey.IsValidEd25519PublicKey(address)
}
