package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/stellar/go-stellar-sdk/clients/horizonclient"
	hProtocol "github.com/stellar/go-stellar-sdk/protocols/horizon"
	"github.com/stellar/go-stellar-sdk/txnbuild"
)

// horizonLedger adapts horizonclient to the Ledger interface and translates
// its errors into this package's error kinds.
type horizonLedger struct {
	client *horizonclient.Client
}

func dialHorizon(cfg NetworkConfig, httpClient *http.Client) (Ledger, error) {
	if cfg.HorizonURL == "" {
		return nil, fmt.Errorf("no horizon endpoint for network %q", cfg.Name)
	}
	return &horizonLedger{
		client: &horizonclient.Client{
			HorizonURL: cfg.HorizonURL,
			HTTP:       httpClient,
		},
	}, nil
}

func (h *horizonLedger) LoadAccount(address string) (AccountSnapshot, error) {
	account, err := h.client.AccountDetail(horizonclient.AccountRequest{AccountID: address})
	if err != nil {
		if horizonclient.IsNotFoundError(err) {
			return AccountSnapshot{}, fmt.Errorf("%w: %s", ErrAccountNotFound, address)
		}
		return AccountSnapshot{}, transportError("failed to load account", err)
	}

	seq, err := account.GetSequenceNumber()
	if err != nil {
		return AccountSnapshot{}, fmt.Errorf("failed to parse sequence number: %w", err)
	}

	snapshot := AccountSnapshot{
		AccountID: account.AccountID,
		Sequence:  seq,
	}
	for _, b := range account.Balances {
		var asset Asset
		switch b.Type {
		case "native":
		case "credit_alphanum4", "credit_alphanum12":
			asset = Asset{Code: b.Code, Issuer: b.Issuer}
		default:
			// pool shares are not payable assets
			continue
		}
		snapshot.Balances = append(snapshot.Balances, Balance{Asset: asset, Balance: b.Balance})
	}
	return snapshot, nil
}

func (h *horizonLedger) FeeStats() (RawFeeStats, error) {
	stats, err := h.client.FeeStats()
	if err != nil {
		return RawFeeStats{}, transportError("failed to fetch fee stats", err)
	}
	raw := RawFeeStats{
		LastLedger:        stats.LastLedger,
		LastLedgerBaseFee: stats.LastLedgerBaseFee,
		FeeCharged:        feeDistribution(stats.FeeCharged),
		MaxFee:            feeDistribution(stats.MaxFee),
	}
	if err := raw.validate(); err != nil {
		return RawFeeStats{}, fmt.Errorf("malformed fee stats: %w", err)
	}
	return raw, nil
}

func (h *horizonLedger) SubmitTransaction(tx *txnbuild.Transaction) (TransactionRecord, error) {
	resp, err := h.client.SubmitTransaction(tx)
	if err != nil {
		return TransactionRecord{}, submitError(err)
	}
	return transactionRecord(resp), nil
}

func submitError(err error) error {
	if errors.Is(err, horizonclient.ErrAccountRequiresMemo) {
		return &RejectedError{TransactionCode: "tx_memo_required", Reason: err.Error()}
	}
	herr := horizonclient.GetError(err)
	if herr == nil {
		return transportError("failed to submit transaction", err)
	}
	rejected := &RejectedError{Reason: herr.Problem.Title}
	if codes, cerr := herr.ResultCodes(); cerr == nil && codes != nil {
		rejected.TransactionCode = codes.TransactionCode
		rejected.OperationCodes = codes.OperationCodes
	}
	if rejected.TransactionCode == "" {
		rejected.TransactionCode = fmt.Sprintf("http_%d", herr.Problem.Status)
	}
	return rejected
}

// transportError marks failures that never produced a horizon problem
// document as unreachable. Problem responses keep their own message.
func transportError(msg string, err error) error {
	if herr := horizonclient.GetError(err); herr != nil {
		return fmt.Errorf("%s: %s (status %d)", msg, herr.Problem.Title, herr.Problem.Status)
	}
	return fmt.Errorf("%s: %w: %v", msg, ErrNetworkUnreachable, err)
}

func feeDistribution(d hProtocol.FeeDistribution) FeeDistribution {
	return FeeDistribution{
		Min:  d.Min,
		Mode: d.Mode,
		P10:  d.P10,
		P50:  d.P50,
		P90:  d.P90,
		P99:  d.P99,
		Max:  d.Max,
	}
}

func transactionRecord(tx hProtocol.Transaction) TransactionRecord {
	record := TransactionRecord{
		Hash:          tx.Hash,
		Ledger:        tx.Ledger,
		SourceAccount: tx.Account,
		FeeCharged:    jsonInt(tx.FeeCharged),
		MaxFee:        jsonInt(tx.MaxFee),
		Successful:    tx.Successful,
	}
	if !tx.LedgerCloseTime.IsZero() {
		record.CreatedAt = tx.LedgerCloseTime.UTC().Format(time.RFC3339)
	}
	return record
}

func jsonInt(v int64) json.Number {
	return json.Number(strconv.FormatInt(v, 10))
}
