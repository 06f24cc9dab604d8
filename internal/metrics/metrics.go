// Package metrics defines the Prometheus instrumentation for the ledger.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the ledger's Prometheus collectors.
type Metrics struct {
	PaymentsCreated prometheus.Counter
	Contributions   prometheus.Counter
	Refunds         prometheus.Counter
	PotsCreated     prometheus.Counter
	PotsBroken      prometheus.Counter
	PayoutFailures  prometheus.Counter
	PayoutDuration  prometheus.Histogram
}

// New registers the ledger collectors with reg and returns them.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PaymentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_payments_created_total",
			Help: "Total number of group payments created.",
		}),
		Contributions: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_contributions_total",
			Help: "Total number of accepted contributions (payments and pots).",
		}),
		Refunds: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_refunds_total",
			Help: "Total number of completed payment refunds.",
		}),
		PotsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_pots_created_total",
			Help: "Total number of savings pots created.",
		}),
		PotsBroken: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_pots_broken_total",
			Help: "Total number of savings pots broken.",
		}),
		PayoutFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_payout_failures_total",
			Help: "Total number of payout sink failures.",
		}),
		PayoutDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_payout_duration_seconds",
			Help:    "Payout sink transfer duration.",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
	}
}
