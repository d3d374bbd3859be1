package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/marketrent/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// OverdueMarker moves unpaid payments whose period ended before a date to overdue
type OverdueMarker interface {
	MarkOverdue(ctx context.Context, before time.Time) (int64, error)
}

// OverdueSweeperConfig holds configuration for the overdue sweeper
type OverdueSweeperConfig struct {
	Enabled bool

	// Interval is how often the sweeper wakes up. A sweep runs at most once
	// per calendar day regardless of the interval.
	Interval time.Duration

	// Timeout bounds a single sweep
	Timeout time.Duration
}

// DefaultOverdueSweeperConfig returns default configuration
func DefaultOverdueSweeperConfig() OverdueSweeperConfig {
	return OverdueSweeperConfig{
		Enabled:  true,
		Interval: time.Hour,
		Timeout:  2 * time.Minute,
	}
}

// Validate checks the configuration
func (c OverdueSweeperConfig) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive", ErrInvalidConfig)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// SweepResult describes one sweeper wake-up
type SweepResult struct {
	Day     time.Time
	Skipped bool
	Marked  int64
}

// OverdueSweeper periodically marks pending and partial payments overdue
type OverdueSweeper struct {
	marker  OverdueMarker
	metrics *telemetry.LeaseMetrics
	logger  *zap.Logger
	config  OverdueSweeperConfig
	now     func() time.Time

	lastSwept time.Time

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	sweepMu   sync.Mutex
	isRunning bool
}

// OverdueSweeperOption configures an OverdueSweeper
type OverdueSweeperOption func(*OverdueSweeper)

// WithSweeperMetrics sets the lease metrics the sweeper reports to
func WithSweeperMetrics(metrics *telemetry.LeaseMetrics) OverdueSweeperOption {
	return func(s *OverdueSweeper) {
		s.metrics = metrics
	}
}

// WithSweeperClock overrides the clock, for tests
func WithSweeperClock(now func() time.Time) OverdueSweeperOption {
	return func(s *OverdueSweeper) {
		s.now = now
	}
}

// NewOverdueSweeper creates a new overdue sweeper
func NewOverdueSweeper(marker OverdueMarker, logger *zap.Logger, config OverdueSweeperConfig, opts ...OverdueSweeperOption) *OverdueSweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &OverdueSweeper{
		marker: marker,
		logger: logger,
		config: config,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs a first sweep immediately and then one per interval
func (s *OverdueSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Overdue sweeper is disabled")
		return nil
	}
	if err := s.config.Validate(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("Overdue sweeper started",
		zap.Duration("interval", s.config.Interval),
		zap.Duration("timeout", s.config.Timeout),
	)
	return nil
}

// Stop gracefully stops the sweeper
func (s *OverdueSweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Overdue sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Overdue sweeper stop timed out")
		return ctx.Err()
	}
}

// IsRunning returns whether the sweeper is running
func (s *OverdueSweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

func (s *OverdueSweeper) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.execute(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Overdue sweeper loop stopping")
			return
		case <-ticker.C:
			s.execute(ctx)
		}
	}
}

func (s *OverdueSweeper) execute(ctx context.Context) {
	telemetry.WithProfilingLabels(ctx, map[string]string{"job": "overdue_sweep"}, func(ctx context.Context) {
		sweepCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
		if _, err := s.Sweep(sweepCtx); err != nil {
			s.logger.Error("Overdue sweep failed", zap.Error(err))
		}
	})
}

// Sweep marks payments overdue whose period ended before today. It does
// nothing if today's sweep already succeeded; a failed sweep is retried on
// the next wake-up.
func (s *OverdueSweeper) Sweep(ctx context.Context) (SweepResult, error) {
	s.sweepMu.Lock()
	defer s.sweepMu.Unlock()

	today := shared.DateOf(s.now())
	result := SweepResult{Day: today}
	if s.lastSwept.Equal(today) {
		result.Skipped = true
		return result, nil
	}

	ctx, span := telemetry.StartSpan(ctx, "scheduler.overdue_sweep")
	defer span.End()

	start := time.Now()
	marked, err := s.marker.MarkOverdue(ctx, today)
	if err != nil {
		telemetry.RecordError(span, err)
		return result, fmt.Errorf("mark overdue payments: %w", err)
	}

	s.lastSwept = today
	result.Marked = marked
	s.metrics.RecordOverdueMarked(ctx, marked)
	telemetry.SetAttributes(span, telemetry.SpanAttrCount, marked)
	telemetry.SetOK(span)

	s.logger.Info("Overdue sweep completed",
		zap.Time("before", today),
		zap.Int64("marked", marked),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}
