package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

// outcome label values
const (
	outcomeConfirmed = "confirmed"
	outcomeRejected  = "rejected"
	outcomeError     = "error"
	outcomeFound     = "found"
	outcomeMissing   = "missing"
)

var (
	paymentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stellarpay",
			Name:      "payments_total",
			Help:      "Payment submissions by network and outcome.",
		},
		[]string{"network", "outcome"},
	)
	feeFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stellarpay",
			Name:      "fee_fallbacks_total",
			Help:      "Times the recommended fee fell back to the network minimum.",
		},
		[]string{"network"},
	)
	transactionLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stellarpay",
			Name:      "transaction_lookups_total",
			Help:      "Transaction lookups by network and outcome.",
		},
		[]string{"network", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(paymentsTotal, feeFallbacksTotal, transactionLookupsTotal)
}
