package intel

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/handy-recon/internal/domain"
)

// Aggregator assembles an IntelligenceReport from a Provider.
type Aggregator struct {
	provider Provider
	logger   *zap.Logger
}

// NewAggregator creates a new Aggregator.
func NewAggregator(provider Provider, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		provider: provider,
		logger:   logger.Named("intel"),
	}
}

// Gather queries the provider for username. The scan report is accepted so
// providers that cross-reference platform findings can be introduced without
// changing callers; the current providers do not read it.
// Any provider failure fails the whole gathering.
func (a *Aggregator) Gather(ctx context.Context, username string, _ domain.ScanReport) (domain.IntelligenceReport, error) {
	breach, err := a.provider.CheckBreaches(ctx, username)
	if err != nil {
		return domain.IntelligenceReport{}, fmt.Errorf("check breaches: %w", err)
	}
	if breach.BreachesFound < 0 {
		return domain.IntelligenceReport{}, fmt.Errorf("%w: negative breach count %d",
			domain.ErrProviderUnavailable, breach.BreachesFound)
	}
	if breach.BreachDetails == nil {
		breach.BreachDetails = []domain.BreachRecord{}
	}

	social, err := a.provider.AnalyzeSocial(ctx, username)
	if err != nil {
		return domain.IntelligenceReport{}, fmt.Errorf("analyze social: %w", err)
	}
	if !social.ActivityLevel.IsValid() {
		return domain.IntelligenceReport{}, fmt.Errorf("%w: activity level must be low, medium or high, got %q",
			domain.ErrProviderUnavailable, social.ActivityLevel)
	}
	if social.InfluenceScore < 0 || social.InfluenceScore > 100 {
		return domain.IntelligenceReport{}, fmt.Errorf("%w: influence score %v outside [0,100]",
			domain.ErrProviderUnavailable, social.InfluenceScore)
	}

	reputation, err := a.provider.Reputation(ctx, username)
	if err != nil {
		return domain.IntelligenceReport{}, fmt.Errorf("reputation: %w", err)
	}
	if reputation < 0 || reputation > 1 {
		return domain.IntelligenceReport{}, fmt.Errorf("%w: reputation score %v outside [0,1]",
			domain.ErrProviderUnavailable, reputation)
	}

	a.logger.Debug("intelligence gathered",
		zap.String("username", username),
		zap.Int("breaches_found", breach.BreachesFound),
		zap.String("activity_level", string(social.ActivityLevel)),
		zap.Float64("reputation", reputation),
	)

	return domain.IntelligenceReport{
		Username:        username,
		Breach:          breach,
		Social:          social,
		ReputationScore: reputation,
	}, nil
}
