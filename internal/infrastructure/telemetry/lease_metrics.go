package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// OccupancyProvider reports the number of spaces per status.
// It lets the collector read occupancy without depending on the leasing domain.
type OccupancyProvider interface {
	SpaceCountsByStatus(ctx context.Context) (map[string]int64, error)
}

// LeaseMetricsConfig holds configuration for lease metrics.
type LeaseMetricsConfig struct {
	Meter             metric.Meter
	Logger            *zap.Logger
	OccupancyProvider OccupancyProvider
}

// LeaseMetrics tracks contract lifecycle activity, rent collection and
// space occupancy. All Record methods are safe on a nil receiver.
type LeaseMetrics struct {
	logger *zap.Logger

	contractsCreated     *Counter
	contractsTerminated  *Counter
	paymentsRecorded     *Counter
	paymentAmountMinor   *Counter
	compensations        *Counter
	occupancySyncFailure *Counter
	overdueMarked        *Counter
	spacesByStatus       *Gauge

	occupancy   OccupancyProvider
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once
}

// NewLeaseMetrics creates the lease metric instruments on cfg.Meter.
func NewLeaseMetrics(cfg LeaseMetricsConfig) (*LeaseMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	lm := &LeaseMetrics{
		logger:    logger,
		occupancy: cfg.OccupancyProvider,
		stopChan:  make(chan struct{}),
	}

	counters := []struct {
		dst              **Counter
		name, desc, unit string
	}{
		{&lm.contractsCreated, "market_contract_created_total", "Total number of contracts created", "{contracts}"},
		{&lm.contractsTerminated, "market_contract_terminated_total", "Total number of contracts terminated", "{contracts}"},
		{&lm.paymentsRecorded, "market_payment_recorded_total", "Total number of rent payments recorded", "{payments}"},
		{&lm.paymentAmountMinor, "market_payment_amount_total", "Total collected rent in minor currency units", "{cents}"},
		{&lm.compensations, "market_compensation_total", "Total number of compensating deletes after a failed onboarding step", "{operations}"},
		{&lm.occupancySyncFailure, "market_occupancy_sync_failure_total", "Total number of failed space status synchronizations", "{operations}"},
		{&lm.overdueMarked, "market_payment_overdue_marked_total", "Total number of payments moved to overdue", "{payments}"},
	}
	for _, c := range counters {
		counter, err := NewCounter(cfg.Meter, c.name, c.desc, c.unit)
		if err != nil {
			return nil, err
		}
		*c.dst = counter
	}

	var err error
	lm.spacesByStatus, err = NewGauge(cfg.Meter, "market_spaces", "Current number of spaces by status", "{spaces}")
	if err != nil {
		return nil, err
	}

	return lm, nil
}

// RecordContractCreated counts a contract created by the given operation.
func (lm *LeaseMetrics) RecordContractCreated(ctx context.Context, operation string) {
	if lm == nil {
		return
	}
	lm.contractsCreated.Inc(ctx, AttrOperation.String(operation))
}

// RecordContractTerminated counts a contract moved to terminated.
func (lm *LeaseMetrics) RecordContractTerminated(ctx context.Context) {
	if lm == nil {
		return
	}
	lm.contractsTerminated.Inc(ctx)
}

// RecordPayment counts a payment and adds amount in minor units.
func (lm *LeaseMetrics) RecordPayment(ctx context.Context, status string, amount decimal.Decimal) {
	if lm == nil {
		return
	}
	attr := AttrPaymentStatus.String(status)
	lm.paymentsRecorded.Inc(ctx, attr)
	if amount.IsPositive() {
		lm.paymentAmountMinor.Add(ctx, amount.Shift(2).Round(0).IntPart(), attr)
	}
}

// RecordCompensation counts a compensating delete for the failed step.
func (lm *LeaseMetrics) RecordCompensation(ctx context.Context, step string) {
	if lm == nil {
		return
	}
	lm.compensations.Inc(ctx, AttrStep.String(step))
}

// RecordOccupancySyncFailure counts a failed space status synchronization.
func (lm *LeaseMetrics) RecordOccupancySyncFailure(ctx context.Context, operation string) {
	if lm == nil {
		return
	}
	lm.occupancySyncFailure.Inc(ctx, AttrOperation.String(operation))
}

// RecordOverdueMarked adds the number of payments moved to overdue by a sweep.
func (lm *LeaseMetrics) RecordOverdueMarked(ctx context.Context, count int64) {
	if lm == nil || count <= 0 {
		return
	}
	lm.overdueMarked.Add(ctx, count)
}

// RecordSpaces records the current count of spaces in status.
func (lm *LeaseMetrics) RecordSpaces(ctx context.Context, status string, count int64) {
	if lm == nil {
		return
	}
	lm.spacesByStatus.Record(ctx, count, AttrSpaceStatus.String(status))
}

// StartPeriodicCollection samples occupancy every interval until Stop is
// called or ctx is done. Only the first call starts a collector.
func (lm *LeaseMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	if lm == nil {
		return
	}
	lm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		go lm.runPeriodicCollection(ctx, interval)
	})
}

func (lm *LeaseMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lm.collectOccupancy(ctx)

	for {
		select {
		case <-lm.stopChan:
			lm.logger.Info("Stopping periodic lease metrics collection")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			lm.collectOccupancy(ctx)
		}
	}
}

func (lm *LeaseMetrics) collectOccupancy(ctx context.Context) {
	if lm.occupancy == nil {
		lm.logger.Debug("No occupancy provider configured, skipping occupancy collection")
		return
	}

	counts, err := lm.occupancy.SpaceCountsByStatus(ctx)
	if err != nil {
		lm.logger.Warn("Failed to collect space occupancy", zap.Error(err))
		return
	}
	for status, count := range counts {
		lm.RecordSpaces(ctx, status, count)
	}
}

// Stop stops the periodic collection. It is safe to call more than once.
func (lm *LeaseMetrics) Stop() {
	if lm == nil {
		return
	}
	lm.stopOnce.Do(func() {
		close(lm.stopChan)
	})
}
