package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Asset is either the native asset (zero value) or a credit asset identified
// by code and issuer.
type Asset struct {
	Code   string `json:"code,omitempty"`
	Issuer string `json:"issuer,omitempty"`
}

func NativeAsset() Asset {
	return Asset{}
}

// NewAsset selects a credit asset only when both code and issuer are given
// and the code is not the native symbol.
func NewAsset(code, issuer string) Asset {
	if code == "" || issuer == "" || code == NativeSymbol {
		return Asset{}
	}
	return Asset{Code: code, Issuer: issuer}
}

func (a Asset) IsNative() bool {
	return a == Asset{}
}

func (a Asset) Equal(other Asset) bool {
	return a.Code == other.Code && a.Issuer == other.Issuer
}

func (a Asset) String() string {
	if a.IsNative() {
		return NativeSymbol
	}
	return fmt.Sprintf("%s:%s", a.Code, a.Issuer)
}

// Balance is one entry of an account snapshot.
type Balance struct {
	Asset   Asset  `json:"asset"`
	Balance string `json:"balance"`
}

// AccountSnapshot is a point in time read of an account.
type AccountSnapshot struct {
	AccountID string    `json:"account_id"`
	Sequence  int64     `json:"sequence"`
	Balances  []Balance `json:"balances"`
}

// Find returns the balance entry for asset, if the account holds it.
func (s AccountSnapshot) Find(asset Asset) (Balance, bool) {
	for _, b := range s.Balances {
		if b.Asset.Equal(asset) {
			return b, true
		}
	}
	return Balance{}, false
}

// FeeDistribution mirrors the percentile buckets horizon reports, in stroops.
type FeeDistribution struct {
	Min  int64
	Mode int64
	P10  int64
	P50  int64
	P90  int64
	P99  int64
	Max  int64
}

// RawFeeStats is the subset of the horizon fee_stats document the fee
// estimator relies on. All values are stroops.
type RawFeeStats struct {
	LastLedger        uint32
	LastLedgerBaseFee int64
	FeeCharged        FeeDistribution
	MaxFee            FeeDistribution
}

func (s RawFeeStats) validate() error {
	fc := s.FeeCharged
	for _, v := range []int64{s.LastLedgerBaseFee, fc.P10, fc.P50, fc.P90, fc.Max} {
		if v < 0 {
			return fmt.Errorf("negative fee in stats: %d", v)
		}
	}
	if s.LastLedgerBaseFee == 0 {
		return fmt.Errorf("missing last ledger base fee")
	}
	return nil
}

// FeeStats are the recent network fees in XLM.
type FeeStats struct {
	FeeCryptoCurrency  string          `json:"feeCryptoCurrency"`
	BaseFee            decimal.Decimal `json:"baseFee"`
	LowFeeCharged      decimal.Decimal `json:"lowFeeCharged"`
	StandardFeeCharged decimal.Decimal `json:"standardFeeCharged"`
	FastFeeCharged     decimal.Decimal `json:"fastFeeCharged"`
	MaxFeeCharged      decimal.Decimal `json:"maxFeeCharged"`
}

// PaymentRequest holds everything SendPayment needs. PrivateKey is only read
// once to derive the signer.
type PaymentRequest struct {
	To          string `json:"to"`
	Amount      string `json:"amount"`
	Network     string `json:"network"`
	PrivateKey  string `json:"privateKey"`
	AssetCode   string `json:"assetCode,omitempty"`
	AssetIssuer string `json:"assetIssuer,omitempty"`
	// Fee is the per-operation fee in XLM. Empty means estimate it.
	Fee  string `json:"fee,omitempty"`
	Memo string `json:"memo,omitempty"`
}

// Receipt is the normalized result of both SendPayment and GetTransaction.
// Transfer is set only on the submit path, Status only on the query path.
type Receipt struct {
	Date                  *time.Time      `json:"date"`
	GasCostCryptoCurrency string          `json:"gasCostCryptoCurrency"`
	GasCostInCrypto       decimal.Decimal `json:"gasCostInCrypto"`
	GasLimit              decimal.Decimal `json:"gasLimit"`
	Network               string          `json:"network"`
	Nonce                 int             `json:"nonce"`
	TransactionHash       string          `json:"transactionHash"`
	TransactionLink       string          `json:"transactionLink"`

	*Transfer
	*Status
}

// Transfer holds the submit-only receipt fields.
type Transfer struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from"`
	To     string          `json:"to"`
}

// Status holds the query-only receipt flags.
type Status struct {
	IsPending    bool `json:"isPending"`
	IsExecuted   bool `json:"isExecuted"`
	IsSuccessful bool `json:"isSuccessful"`
	IsFailed     bool `json:"isFailed"`
	IsInvalid    bool `json:"isInvalid"`
}

// TransactionRecord is the horizon transaction document, restricted to the
// fields receipts are built from. Horizon encodes fees as strings.
type TransactionRecord struct {
	Hash          string      `json:"hash"`
	Ledger        int32       `json:"ledger"`
	CreatedAt     string      `json:"created_at"`
	SourceAccount string      `json:"source_account"`
	FeeCharged    json.Number `json:"fee_charged"`
	MaxFee        json.Number `json:"max_fee"`
	Successful    bool        `json:"successful"`
}

// Validate checks the record carries what normalization needs.
func (r TransactionRecord) Validate() error {
	if r.Hash == "" {
		return fmt.Errorf("missing hash")
	}
	if _, err := r.FeeCharged.Int64(); err != nil {
		return fmt.Errorf("invalid fee_charged %q", r.FeeCharged)
	}
	if _, err := r.MaxFee.Int64(); err != nil {
		return fmt.Errorf("invalid max_fee %q", r.MaxFee)
	}
	if r.CreatedAt != "" {
		if _, err := time.Parse(time.RFC3339, r.CreatedAt); err != nil {
			return fmt.Errorf("invalid created_at %q", r.CreatedAt)
		}
	}
	return nil
}

func (r TransactionRecord) date() *time.Time {
	if r.CreatedAt == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return nil
	}
	return &t
}
