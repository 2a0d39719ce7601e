// Package service contains the business logic layer.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/handy-recon/internal/domain"
	"github.com/handy-recon/internal/metrics"
)

// PatternAnalyzer classifies a username.
type PatternAnalyzer interface {
	Analyze(username string) (domain.PatternProfile, error)
}

// Scanner probes every configured platform for a username.
type Scanner interface {
	Scan(ctx context.Context, username string) domain.ScanReport
	Platforms() []domain.PlatformTarget
}

// IntelGatherer produces supplementary signals for a username.
type IntelGatherer interface {
	Gather(ctx context.Context, username string, scan domain.ScanReport) (domain.IntelligenceReport, error)
}

// RiskCorrelator merges upstream signals into a risk assessment.
type RiskCorrelator interface {
	Correlate(
		ctx context.Context,
		username string,
		profile domain.PatternProfile,
		scan domain.ScanReport,
		intel domain.IntelligenceReport,
	) (domain.RiskAssessment, error)
}

// UsernameNormalizer validates raw input before the pipeline starts.
type UsernameNormalizer interface {
	Normalize(raw string) (string, error)
}

// StageLatency holds the placeholder delays awaited before the stages that
// stand in for remote services.
type StageLatency struct {
	Pattern      time.Duration
	Intelligence time.Duration
	Correlation  time.Duration
}

// DefaultStageLatency mirrors the response times of the services the
// simulated stages replace.
var DefaultStageLatency = StageLatency{
	Pattern:      500 * time.Millisecond,
	Intelligence: 300 * time.Millisecond,
	Correlation:  200 * time.Millisecond,
}

// InvestigatorConfig contains configuration for the Investigator.
type InvestigatorConfig struct {
	SimulateLatency bool
	Latency         StageLatency
}

// Investigator orchestrates the investigation pipeline.
type Investigator struct {
	normalizer UsernameNormalizer
	analyzer   PatternAnalyzer
	scanner    Scanner
	gatherer   IntelGatherer
	correlator RiskCorrelator
	validator  *ReportValidator
	config     InvestigatorConfig
	now        func() time.Time
	logger     *zap.Logger
}

// NewInvestigator creates a new Investigator with all dependencies.
func NewInvestigator(
	normalizer UsernameNormalizer,
	analyzer PatternAnalyzer,
	scanner Scanner,
	gatherer IntelGatherer,
	correlator RiskCorrelator,
	config InvestigatorConfig,
	logger *zap.Logger,
) *Investigator {
	return &Investigator{
		normalizer: normalizer,
		analyzer:   analyzer,
		scanner:    scanner,
		gatherer:   gatherer,
		correlator: correlator,
		validator:  NewReportValidator(),
		config:     config,
		now:        time.Now,
		logger:     logger.Named("investigator"),
	}
}

// Platforms returns the platform set every investigation probes.
func (i *Investigator) Platforms() []domain.PlatformTarget {
	return i.scanner.Platforms()
}

// investigation is the per-call state threaded through the stages.
// It is never shared between calls.
type investigation struct {
	username string
	pattern  domain.PatternProfile
	scan     domain.ScanReport
	intel    domain.IntelligenceReport
	risk     domain.RiskAssessment
}

// Investigate runs the pipeline for one username:
// 1. Normalize the username and classify its pattern
// 2. Probe every platform concurrently
// 3. Gather intelligence
// 4. Correlate everything into a risk assessment
//
// It returns a complete report or a *domain.StageError naming the stage that
// failed. Probe failures never fail the investigation. Once the pattern stage
// has passed, cancellation turns the pending probes into error outcomes and
// the remaining stages still run to produce the report.
func (i *Investigator) Investigate(ctx context.Context, rawUsername string) (*domain.InvestigationReport, error) {
	startTime := i.now()
	state := &investigation{username: rawUsername}
	logger := i.logger

	stage := domain.StageStart
	for {
		stage = stage.Next()
		if stage.IsTerminal() {
			break
		}

		if stage.IsFatal() {
			if err := ctx.Err(); err != nil {
				return nil, i.fail(logger, stage, err, startTime)
			}
		}

		stageStart := time.Now()
		err := i.runStage(ctx, stage, state)
		elapsed := time.Since(stageStart)
		metrics.StageDuration.WithLabelValues(string(stage)).Observe(elapsed.Seconds())

		if err != nil {
			return nil, i.fail(logger, stage, err, startTime)
		}

		switch stage {
		case domain.StagePatternAnalysis:
			logger = logger.With(zap.String("username", state.username))
		case domain.StageScanning:
			if err := ctx.Err(); err != nil {
				logger.Warn("scan cancelled, finishing with partial outcomes", zap.Error(err))
				ctx = context.WithoutCancel(ctx)
			}
		}
		logger.Debug("stage completed",
			zap.String("stage", string(stage)),
			zap.Duration("duration", elapsed),
		)
	}

	finished := i.now()
	report := &domain.InvestigationReport{
		OperationID:   newOperationID(finished),
		Username:      state.username,
		Pattern:       state.pattern,
		Scan:          state.scan,
		Intelligence:  state.intel,
		Risk:          state.risk,
		TotalDuration: finished.Sub(startTime).Seconds(),
		Timestamp:     finished.UTC(),
	}

	if err := i.validator.Validate(report, i.scanner.Platforms()); err != nil {
		return nil, i.fail(logger, domain.StageComplete, err, startTime)
	}

	metrics.InvestigationsTotal.WithLabelValues("completed", string(domain.StageComplete)).Inc()
	metrics.InvestigationDuration.Observe(report.TotalDuration)

	logger.Info("investigation completed",
		zap.String("operation_id", report.OperationID),
		zap.String("pattern_type", string(report.Pattern.PatternType)),
		zap.Int("found", report.Scan.Count(domain.ProbeFound)),
		zap.Int("probe_errors", report.Scan.Count(domain.ProbeError)),
		zap.String("risk_level", string(report.Risk.Level)),
		zap.Float64("duration_seconds", report.TotalDuration),
	)

	return report, nil
}

func (i *Investigator) runStage(ctx context.Context, stage domain.Stage, state *investigation) error {
	switch stage {
	case domain.StagePatternAnalysis:
		username, err := i.normalizer.Normalize(state.username)
		if err != nil {
			return err
		}
		state.username = username

		if err := i.await(ctx, i.config.Latency.Pattern); err != nil {
			return err
		}
		state.pattern, err = i.analyzer.Analyze(username)
		return err

	case domain.StageScanning:
		state.scan = i.scanner.Scan(ctx, state.username)
		return nil

	case domain.StageIntelligenceGathering:
		if err := i.await(ctx, i.config.Latency.Intelligence); err != nil {
			return err
		}
		var err error
		state.intel, err = i.gatherer.Gather(ctx, state.username, state.scan)
		return err

	case domain.StageCorrelation:
		if err := i.await(ctx, i.config.Latency.Correlation); err != nil {
			return err
		}
		var err error
		state.risk, err = i.correlator.Correlate(ctx, state.username, state.pattern, state.scan, state.intel)
		return err

	default:
		return fmt.Errorf("unknown stage %q", stage)
	}
}

// await suspends for d when latency simulation is enabled.
func (i *Investigator) await(ctx context.Context, d time.Duration) error {
	if !i.config.SimulateLatency || d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (i *Investigator) fail(logger *zap.Logger, stage domain.Stage, err error, startTime time.Time) error {
	metrics.InvestigationsTotal.WithLabelValues("failed", string(stage)).Inc()
	logger.Error("investigation failed",
		zap.String("stage", string(stage)),
		zap.Error(err),
		zap.Duration("duration", i.now().Sub(startTime)),
	)
	return domain.WrapStage(stage, err)
}

func newOperationID(t time.Time) string {
	return fmt.Sprintf("op_%d_%s", t.Unix(), uuid.NewString())
}
