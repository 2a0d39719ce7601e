// Package scan fans a username out to every configured platform.
package scan

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/handy-recon/internal/domain"
	"github.com/handy-recon/internal/metrics"
	"github.com/handy-recon/internal/probe"
)

// Coordinator runs one probe per platform concurrently and joins every
// outcome, successful or not, into a ScanReport.
type Coordinator struct {
	prober         probe.Prober
	platforms      []domain.PlatformTarget
	maxConcurrency int
	logger         *zap.Logger
}

// NewCoordinator creates a coordinator over an immutable platform set.
// maxConcurrency <= 0 allows one in-flight probe per platform.
func NewCoordinator(prober probe.Prober, platforms []domain.PlatformTarget, maxConcurrency int, logger *zap.Logger) *Coordinator {
	owned := make([]domain.PlatformTarget, len(platforms))
	copy(owned, platforms)

	if maxConcurrency <= 0 || maxConcurrency > len(owned) {
		maxConcurrency = len(owned)
	}

	return &Coordinator{
		prober:         prober,
		platforms:      owned,
		maxConcurrency: maxConcurrency,
		logger:         logger.Named("scan"),
	}
}

// Platforms returns a copy of the configured platform set.
func (c *Coordinator) Platforms() []domain.PlatformTarget {
	out := make([]domain.PlatformTarget, len(c.platforms))
	copy(out, c.platforms)
	return out
}

// Scan probes every platform for username. It never fails: probe errors,
// panics and cancellation are all recorded as error outcomes.
func (c *Coordinator) Scan(ctx context.Context, username string) domain.ScanReport {
	start := time.Now()
	c.logger.Info("scanning platforms",
		zap.String("username", username),
		zap.Int("platforms", len(c.platforms)),
		zap.Int("concurrency", c.maxConcurrency),
	)

	// Each unit writes only its own slot.
	results := make([]domain.ProbeOutcome, len(c.platforms))
	done := make([]bool, len(c.platforms))

	var group errgroup.Group
	if c.maxConcurrency > 0 {
		group.SetLimit(c.maxConcurrency)
	}

	for idx := range c.platforms {
		group.Go(func() error {
			results[idx] = c.runUnit(ctx, c.platforms[idx], username)
			done[idx] = true
			return nil
		})
	}
	// Units never return errors; Wait only joins them.
	_ = group.Wait()

	report := domain.ScanReport{
		Username:     username,
		Outcomes:     make(map[string]domain.ProbeOutcome, len(c.platforms)),
		TotalChecked: len(c.platforms),
	}
	for idx, target := range c.platforms {
		outcome := results[idx]
		if !done[idx] || outcome.Platform != target.Name || !outcome.Status.IsValid() {
			outcome = synthesized(target, fmt.Errorf("%w: no outcome recorded", domain.ErrProbePanic))
		}
		report.Outcomes[target.Name] = outcome
		metrics.ProbesTotal.WithLabelValues(target.Name, string(outcome.Status)).Inc()
	}
	report.Duration = time.Since(start).Seconds()

	c.logger.Info("scan completed",
		zap.String("username", username),
		zap.Int("found", report.Count(domain.ProbeFound)),
		zap.Int("not_found", report.Count(domain.ProbeNotFound)),
		zap.Int("errors", report.Count(domain.ProbeError)),
		zap.Float64("duration_seconds", report.Duration),
	)

	return report
}

// runUnit isolates one probe: a panic or a cancelled scan becomes an error outcome.
func (c *Coordinator) runUnit(ctx context.Context, target domain.PlatformTarget, username string) (outcome domain.ProbeOutcome) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("probe panicked",
				zap.String("platform", target.Name),
				zap.Any("panic", r),
			)
			outcome = synthesized(target, fmt.Errorf("%w: %v", domain.ErrProbePanic, r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return synthesized(target, fmt.Errorf("scan cancelled: %w", err))
	}

	metrics.ProbesInFlight.Inc()
	defer metrics.ProbesInFlight.Dec()

	outcome = c.prober.Probe(ctx, target, username)
	// The prober owns the outcome's contents but not its key.
	outcome.Platform = target.Name
	return outcome
}

func synthesized(target domain.PlatformTarget, err error) domain.ProbeOutcome {
	return domain.ProbeOutcome{
		Platform: target.Name,
		Status:   domain.ProbeError,
		Error:    err.Error(),
	}
}
