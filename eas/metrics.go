package eas

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	receiptBuckets = []float64{0.5, 1, 2, 4, 8, 16, 32}
	receiptLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "eas_transaction_receipt_latency",
		Help:    "Latency of transaction submission to mined receipt in seconds",
		Buckets: receiptBuckets,
	})
	attestationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eas_attestations_submitted",
		Help: "Number of attestation transactions submitted",
	})
	revocationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eas_revocations_submitted",
		Help: "Number of revocation transactions submitted",
	})
)
