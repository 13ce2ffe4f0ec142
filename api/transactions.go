package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stellar/go-stellar-sdk/keypair"

	"github.com/chinmay1088/stellarpay/chains/stellar"
)

// maxResponseBytes bounds transaction documents read from horizon.
const maxResponseBytes = 1 << 20

// SendPayment builds, signs and submits a single payment and blocks until
// the network includes or rejects it. Rejections are returned as
// *RejectedError and are never retried.
func (c *Client) SendPayment(req PaymentRequest) (*Receipt, error) {
	cfg := Resolve(req.Network)
	ledger, err := c.GetClient(cfg.Name)
	if err != nil {
		return nil, err
	}

	signer, err := keypair.ParseFull(strings.TrimSpace(req.PrivateKey))
	if err != nil {
		return nil, ErrInvalidKey
	}
	from := signer.Address()

	amount, err := formatAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	memo := req.Memo
	if memo == "" {
		memo = c.defaultMemo
	}
	if len(memo) > stellar.MaxMemoBytes {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrInvalidMemo, len(memo), stellar.MaxMemoBytes)
	}

	source, err := ledger.LoadAccount(from)
	if err != nil {
		return nil, fmt.Errorf("failed to load source account: %w", err)
	}

	fee, err := c.submissionFee(ledger, cfg.Name, req.Fee)
	if err != nil {
		return nil, err
	}

	asset := NewAsset(req.AssetCode, req.AssetIssuer)
	payment := stellar.NewPayment(from, source.Sequence)
	payment.Destination = req.To
	payment.Amount = amount
	payment.SetAsset(asset.Code, asset.Issuer)
	payment.BaseFee = fee
	payment.Memo = memo
	payment.Timeout = c.txTimeout

	tx, err := payment.BuildAndSign(cfg.Passphrase, signer)
	if err != nil {
		if errors.Is(err, stellar.ErrMalformed) {
			paymentsTotal.WithLabelValues(cfg.Name, outcomeRejected).Inc()
			return nil, &RejectedError{TransactionCode: codeMalformed, Reason: err.Error()}
		}
		return nil, err
	}

	if err := payment.Submitted(); err != nil {
		return nil, err
	}
	record, err := ledger.SubmitTransaction(tx)
	if err != nil {
		if rejected, ok := AsRejected(err); ok {
			if rerr := payment.Resolve(false); rerr != nil {
				log.WithError(rerr).Debug("payment state not updated")
			}
			paymentsTotal.WithLabelValues(cfg.Name, outcomeRejected).Inc()
			log.WithFields(log.Fields{
				"network": cfg.Name,
				"from":    from,
				"to":      req.To,
				"code":    rejected.TransactionCode,
			}).Info("payment rejected")
			return nil, rejected
		}
		paymentsTotal.WithLabelValues(cfg.Name, outcomeError).Inc()
		return nil, err
	}
	if err := payment.Resolve(true); err != nil {
		log.WithError(err).Debug("payment state not updated")
	}
	paymentsTotal.WithLabelValues(cfg.Name, outcomeConfirmed).Inc()

	if record.Hash == "" {
		// horizon answered without the envelope hash, derive it locally
		if record.Hash, err = payment.Hash(cfg.Passphrase); err != nil {
			return nil, fmt.Errorf("failed to hash transaction: %w", err)
		}
	}
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("invalid submission response: %w", err)
	}

	log.WithFields(log.Fields{
		"network": cfg.Name,
		"from":    from,
		"to":      req.To,
		"hash":    record.Hash,
	}).Info("payment confirmed")

	return newSubmitReceipt(cfg, record, Transfer{
		Amount: decimal.RequireFromString(amount),
		From:   from,
		To:     req.To,
	}), nil
}

// submissionFee resolves the per-operation fee in stroops. An explicit fee
// wins, otherwise the recommended fee is used.
func (c *Client) submissionFee(ledger Ledger, network, explicit string) (int64, error) {
	if strings.TrimSpace(explicit) == "" {
		return c.recommendedFee(ledger, network), nil
	}
	fee, err := XLMToStroops(explicit)
	if err != nil {
		return 0, fmt.Errorf("invalid fee: %w", err)
	}
	if fee < MinimumFee {
		return 0, fmt.Errorf("%w: fee %s is below the network minimum", ErrInvalidAmount, explicit)
	}
	return fee, nil
}

// GetTransaction fetches a transaction by hash. It returns nil when the
// transaction cannot be found or read for any reason.
func (c *Client) GetTransaction(txID, selector string) *Receipt {
	cfg := Resolve(selector)
	logger := log.WithFields(log.Fields{"network": cfg.Name, "hash": txID})

	record, err := c.fetchTransaction(cfg, txID)
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			logger.Debug("transaction not found")
			transactionLookupsTotal.WithLabelValues(cfg.Name, outcomeMissing).Inc()
		} else {
			logger.WithError(err).Warn("failed to fetch transaction")
			transactionLookupsTotal.WithLabelValues(cfg.Name, outcomeError).Inc()
		}
		return nil
	}

	transactionLookupsTotal.WithLabelValues(cfg.Name, outcomeFound).Inc()
	return newQueryReceipt(cfg, record)
}

func (c *Client) fetchTransaction(cfg NetworkConfig, txID string) (TransactionRecord, error) {
	if strings.TrimSpace(txID) == "" {
		return TransactionRecord{}, fmt.Errorf("%w: empty transaction id", ErrTransactionNotFound)
	}
	endpoint := fmt.Sprintf("%s/transactions/%s", strings.TrimRight(cfg.HorizonURL, "/"), url.PathEscape(txID))

	httpReq, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return TransactionRecord{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return TransactionRecord{}, fmt.Errorf("%w: %v", ErrNetworkUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return TransactionRecord{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return TransactionRecord{}, ErrTransactionNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return TransactionRecord{}, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var record TransactionRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return TransactionRecord{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if err := record.Validate(); err != nil {
		return TransactionRecord{}, fmt.Errorf("invalid transaction document: %w", err)
	}
	return record, nil
}

func newSubmitReceipt(cfg NetworkConfig, record TransactionRecord, transfer Transfer) *Receipt {
	receipt := newReceipt(cfg, record)
	receipt.Transfer = &transfer
	return receipt
}

func newQueryReceipt(cfg NetworkConfig, record TransactionRecord) *Receipt {
	receipt := newReceipt(cfg, record)
	receipt.Status = &Status{
		IsPending:    false,
		IsExecuted:   true,
		IsSuccessful: record.Successful,
		IsFailed:     !record.Successful,
		IsInvalid:    !record.Successful,
	}
	return receipt
}

// newReceipt expects a validated record. Network carries the resolved
// network name, so unknown selectors report testnet.
func newReceipt(cfg NetworkConfig, record TransactionRecord) *Receipt {
	feeCharged, _ := record.FeeCharged.Int64()
	maxFee, _ := record.MaxFee.Int64()

	return &Receipt{
		Date:                  record.date(),
		GasCostCryptoCurrency: NativeSymbol,
		GasCostInCrypto:       StroopsToXLM(feeCharged),
		GasLimit:              StroopsToXLM(maxFee),
		Network:               cfg.Name,
		Nonce:                 0,
		TransactionHash:       record.Hash,
		TransactionLink:       cfg.TransactionLink(record.Hash),
	}
}
