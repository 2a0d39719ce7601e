package intel

import (
	"context"
	"time"

	"github.com/handy-recon/internal/domain"
)

// StaticProvider returns the same signals for every username.
type StaticProvider struct {
	Breaches  []domain.BreachRecord
	Activity  domain.ActivityLevel
	AgeMonths int
	Influence float64
	Score     float64
}

// NewStaticProvider creates a provider reporting no breaches, low activity
// and a neutral reputation.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		Breaches:  []domain.BreachRecord{},
		Activity:  domain.ActivityLow,
		AgeMonths: 12,
		Influence: 0,
		Score:     0.5,
	}
}

// CheckBreaches implements Provider.
func (p *StaticProvider) CheckBreaches(ctx context.Context, _ string) (domain.BreachSummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.BreachSummary{}, err
	}
	details := make([]domain.BreachRecord, len(p.Breaches))
	copy(details, p.Breaches)
	return domain.BreachSummary{
		BreachesFound: len(details),
		BreachDetails: details,
		CheckedAt:     time.Now().UTC(),
	}, nil
}

// AnalyzeSocial implements Provider.
func (p *StaticProvider) AnalyzeSocial(ctx context.Context, _ string) (domain.SocialSummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.SocialSummary{}, err
	}
	return domain.SocialSummary{
		ActivityLevel:    p.Activity,
		AccountAgeMonths: p.AgeMonths,
		InfluenceScore:   p.Influence,
	}, nil
}

// Reputation implements Provider.
func (p *StaticProvider) Reputation(ctx context.Context, _ string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return p.Score, nil
}
