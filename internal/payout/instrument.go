package payout

import (
	"context"
	"time"

	"github.com/protectedpay/ledger/internal/amount"
	"github.com/protectedpay/ledger/internal/ledger"
	"github.com/protectedpay/ledger/internal/metrics"
)

// InstrumentedSink wraps a PayoutSink with transfer duration and failure
// metrics.
type InstrumentedSink struct {
	next ledger.PayoutSink
	m    *metrics.Metrics
}

// Instrument wraps sink with the given metrics.
func Instrument(sink ledger.PayoutSink, m *metrics.Metrics) *InstrumentedSink {
	return &InstrumentedSink{next: sink, m: m}
}

// Transfer delegates to the wrapped sink, observing duration and failures.
func (s *InstrumentedSink) Transfer(ctx context.Context, from, to string, amt amount.Amount) error {
	start := time.Now()
	err := s.next.Transfer(ctx, from, to, amt)
	s.m.PayoutDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.m.PayoutFailures.Inc()
	}
	return err
}

var _ ledger.PayoutSink = (*InstrumentedSink)(nil)
