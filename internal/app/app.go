// Package app wires configuration into a ready-to-use investigation pipeline.
package app

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/handy-recon/internal/config"
	"github.com/handy-recon/internal/correlate"
	"github.com/handy-recon/internal/intel"
	"github.com/handy-recon/internal/pattern"
	"github.com/handy-recon/internal/probe"
	"github.com/handy-recon/internal/scan"
	"github.com/handy-recon/internal/service"
	"github.com/handy-recon/pkg/username"
)

// Application owns the process-wide resources shared by every investigation.
type Application struct {
	Investigator *service.Investigator

	client *http.Client
	logger *zap.Logger
}

// New builds the pipeline described by cfg. The outbound HTTP client is
// created here once and shared read-only by all probes.
func New(cfg *config.Config, logger *zap.Logger) *Application {
	client := probe.NewHTTPClient(cfg.Scan.ProbeTimeout)
	prober := probe.NewHTTPProber(client, cfg.Scan.UserAgent, logger)
	coordinator := scan.NewCoordinator(prober, cfg.Scan.Platforms, cfg.Scan.MaxConcurrency, logger)

	investigator := service.NewInvestigator(
		username.New(username.DefaultMaxLength),
		pattern.NewAnalyzer(pattern.DefaultRules(), logger),
		coordinator,
		intel.NewAggregator(newProvider(cfg.Intel, logger), logger),
		correlate.NewCorrelator(newScorer(cfg.Intel), logger),
		service.InvestigatorConfig{
			SimulateLatency: cfg.Intel.SimulateLatency,
			Latency:         service.DefaultStageLatency,
		},
		logger,
	)

	logger.Info("pipeline ready",
		zap.Int("platforms", len(cfg.Scan.Platforms)),
		zap.Int("concurrency", cfg.Scan.Concurrency()),
		zap.Duration("probe_timeout", cfg.Scan.ProbeTimeout),
		zap.String("intel_provider", string(cfg.Intel.Provider)),
		zap.String("risk_scorer", string(cfg.Intel.Scorer)),
		zap.Bool("simulate_latency", cfg.Intel.SimulateLatency),
	)

	return &Application{
		Investigator: investigator,
		client:       client,
		logger:       logger,
	}
}

// Close releases the shared HTTP client's idle connections.
func (a *Application) Close() {
	a.client.CloseIdleConnections()
	a.logger.Debug("http client closed")
}

func newProvider(cfg config.IntelConfig, logger *zap.Logger) intel.Provider {
	switch cfg.Provider {
	case config.IntelProviderStatic:
		return intel.NewStaticProvider()
	default:
		logger.Warn("using simulated intelligence provider - breach and social signals are synthetic")
		return intel.NewSimulatedProvider(cfg.Seed, logger)
	}
}

func newScorer(cfg config.IntelConfig) correlate.Scorer {
	switch cfg.Scorer {
	case config.RiskScorerHeuristic:
		return correlate.HeuristicScorer{}
	default:
		seed := cfg.Seed
		if seed != 0 {
			// Keep the scorer's stream independent of the provider's.
			seed++
		}
		return correlate.NewRandomScorer(seed)
	}
}
