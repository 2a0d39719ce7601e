package intel

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/handy-recon/internal/domain"
)

// breachCatalog is the fixed set of breaches the simulated provider samples from.
var breachCatalog = []domain.BreachRecord{
	{Name: "Collection1", Date: "2019-01-15", CompromisedFields: "emails, passwords"},
	{Name: "AntiPublic", Date: "2017-03-10", CompromisedFields: "usernames, IPs"},
}

var activityLevels = []domain.ActivityLevel{
	domain.ActivityLow,
	domain.ActivityMedium,
	domain.ActivityHigh,
}

// SimulatedProvider generates stochastic stand-in signals.
type SimulatedProvider struct {
	mu     sync.Mutex
	rng    *rand.Rand
	now    func() time.Time
	logger *zap.Logger
}

// NewSimulatedProvider creates a simulated provider.
// A zero seed draws a random seed so runs differ.
func NewSimulatedProvider(seed uint64, logger *zap.Logger) *SimulatedProvider {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &SimulatedProvider{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now:    time.Now,
		logger: logger.Named("simulated_intel"),
	}
}

// CheckBreaches implements Provider.
func (p *SimulatedProvider) CheckBreaches(ctx context.Context, username string) (domain.BreachSummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.BreachSummary{}, err
	}

	p.mu.Lock()
	found := p.rng.IntN(3)
	details := []domain.BreachRecord{}
	if p.rng.Float64() > 0.7 {
		k := p.rng.IntN(len(breachCatalog) + 1)
		for _, idx := range p.rng.Perm(len(breachCatalog))[:k] {
			details = append(details, breachCatalog[idx])
		}
	}
	p.mu.Unlock()

	p.logger.Debug("simulated breach check",
		zap.String("username", username),
		zap.Int("breaches_found", found),
		zap.Int("details", len(details)),
	)

	return domain.BreachSummary{
		BreachesFound: found,
		BreachDetails: details,
		CheckedAt:     p.now().UTC(),
	}, nil
}

// AnalyzeSocial implements Provider.
func (p *SimulatedProvider) AnalyzeSocial(ctx context.Context, username string) (domain.SocialSummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.SocialSummary{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return domain.SocialSummary{
		ActivityLevel:    activityLevels[p.rng.IntN(len(activityLevels))],
		AccountAgeMonths: 1 + p.rng.IntN(60),
		InfluenceScore:   p.rng.Float64() * 100,
	}, nil
}

// Reputation implements Provider.
func (p *SimulatedProvider) Reputation(ctx context.Context, username string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Float64(), nil
}
