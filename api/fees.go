package api

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/stellar/go-stellar-sdk/txnbuild"
)

// MinimumFee is the protocol minimum per-operation fee in stroops.
const MinimumFee = int64(txnbuild.MinBaseFee)

// GetFeeStats fetches recent fee percentiles for the given network and
// converts them to XLM.
func (c *Client) GetFeeStats(selector string) (FeeStats, error) {
	raw, err := c.rawFeeStats(selector)
	if err != nil {
		return FeeStats{}, err
	}

	fc := raw.FeeCharged
	return FeeStats{
		FeeCryptoCurrency:  NativeSymbol,
		BaseFee:            StroopsToXLM(raw.LastLedgerBaseFee),
		LowFeeCharged:      StroopsToXLM(c.capFee(fc.P10, raw.LastLedgerBaseFee)),
		StandardFeeCharged: StroopsToXLM(c.capFee(fc.P50, raw.LastLedgerBaseFee)),
		FastFeeCharged:     StroopsToXLM(c.capFee(fc.P90, raw.LastLedgerBaseFee)),
		MaxFeeCharged:      StroopsToXLM(c.capFee(fc.Max, raw.LastLedgerBaseFee)),
	}, nil
}

// RecommendedFee returns the per-operation fee in stroops to submit with.
// It uses the fast percentile and never fails: any problem fetching stats
// yields MinimumFee.
func (c *Client) RecommendedFee(selector string) int64 {
	network := Resolve(selector).Name

	ledger, err := c.GetClient(selector)
	if err != nil {
		return c.fallbackFee(network, fmt.Errorf("%w: %v", ErrFeeEstimationFailed, err))
	}
	return c.recommendedFee(ledger, network)
}

// recommendedFee is RecommendedFee over a ledger handle the caller already
// holds.
func (c *Client) recommendedFee(ledger Ledger, network string) int64 {
	raw, err := feeStats(ledger)
	if err != nil {
		return c.fallbackFee(network, err)
	}

	fee := c.capFee(raw.FeeCharged.P90, raw.LastLedgerBaseFee)
	if fee < MinimumFee {
		return MinimumFee
	}
	return fee
}

func (c *Client) fallbackFee(network string, err error) int64 {
	log.WithError(err).WithField("network", network).Warn("using minimum fee")
	feeFallbacksTotal.WithLabelValues(network).Inc()
	return MinimumFee
}

func (c *Client) rawFeeStats(selector string) (RawFeeStats, error) {
	ledger, err := c.GetClient(selector)
	if err != nil {
		return RawFeeStats{}, fmt.Errorf("%w: %v", ErrFeeEstimationFailed, err)
	}
	return feeStats(ledger)
}

func feeStats(ledger Ledger) (RawFeeStats, error) {
	raw, err := ledger.FeeStats()
	if err != nil {
		return RawFeeStats{}, fmt.Errorf("%w: %v", ErrFeeEstimationFailed, err)
	}
	return raw, nil
}

// capFee bounds fee by the configured cap. The cap never pushes a fee below
// the network base fee.
func (c *Client) capFee(fee, baseFee int64) int64 {
	if c.feeCap <= 0 || fee <= c.feeCap {
		return fee
	}
	if c.feeCap < baseFee {
		return baseFee
	}
	return c.feeCap
}
