package intel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/handy-recon/internal/domain"
)

// stubProvider lets tests override individual provider answers.
type stubProvider struct {
	*StaticProvider
	breachErr  error
	socialErr  error
	reputation *float64
	activity   domain.ActivityLevel
}

func (s *stubProvider) CheckBreaches(ctx context.Context, username string) (domain.BreachSummary, error) {
	if s.breachErr != nil {
		return domain.BreachSummary{}, s.breachErr
	}
	return s.StaticProvider.CheckBreaches(ctx, username)
}

func (s *stubProvider) AnalyzeSocial(ctx context.Context, username string) (domain.SocialSummary, error) {
	if s.socialErr != nil {
		return domain.SocialSummary{}, s.socialErr
	}
	summary, err := s.StaticProvider.AnalyzeSocial(ctx, username)
	if s.activity != "" {
		summary.ActivityLevel = s.activity
	}
	return summary, err
}

func (s *stubProvider) Reputation(ctx context.Context, username string) (float64, error) {
	if s.reputation != nil {
		return *s.reputation, nil
	}
	return s.StaticProvider.Reputation(ctx, username)
}

func TestAggregator_Gather_Static(t *testing.T) {
	provider := NewStaticProvider()
	provider.Breaches = []domain.BreachRecord{breachCatalog[0]}
	provider.Activity = domain.ActivityHigh
	provider.Score = 0.25

	report, err := NewAggregator(provider, zap.NewNop()).Gather(context.Background(), "john_doe", domain.ScanReport{})
	require.NoError(t, err)

	assert.Equal(t, "john_doe", report.Username)
	assert.Equal(t, 1, report.Breach.BreachesFound)
	assert.Equal(t, "Collection1", report.Breach.BreachDetails[0].Name)
	assert.False(t, report.Breach.CheckedAt.IsZero())
	assert.Equal(t, domain.ActivityHigh, report.Social.ActivityLevel)
	assert.Equal(t, 0.25, report.ReputationScore)
}

func TestAggregator_Gather_ProviderErrors(t *testing.T) {
	outside := 1.5
	tests := []struct {
		name     string
		provider *stubProvider
		wantIs   error
	}{
		{
			name:     "breach lookup fails",
			provider: &stubProvider{StaticProvider: NewStaticProvider(), breachErr: domain.ErrProviderUnavailable},
			wantIs:   domain.ErrProviderUnavailable,
		},
		{
			name:     "social lookup fails",
			provider: &stubProvider{StaticProvider: NewStaticProvider(), socialErr: errors.New("rate limited")},
		},
		{
			name:     "invalid activity level",
			provider: &stubProvider{StaticProvider: NewStaticProvider(), activity: "extreme"},
			wantIs:   domain.ErrProviderUnavailable,
		},
		{
			name:     "reputation out of range",
			provider: &stubProvider{StaticProvider: NewStaticProvider(), reputation: &outside},
			wantIs:   domain.ErrProviderUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAggregator(tt.provider, zap.NewNop()).Gather(context.Background(), "x", domain.ScanReport{})
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestAggregator_Gather_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAggregator(NewSimulatedProvider(1, zap.NewNop()), zap.NewNop()).Gather(ctx, "x", domain.ScanReport{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulatedProvider_Ranges(t *testing.T) {
	p := NewSimulatedProvider(7, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 500; i++ {
		breach, err := p.CheckBreaches(ctx, "john_doe")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, breach.BreachesFound, 0)
		assert.LessOrEqual(t, breach.BreachesFound, 2)
		assert.LessOrEqual(t, len(breach.BreachDetails), len(breachCatalog))
		assert.NotNil(t, breach.BreachDetails)

		social, err := p.AnalyzeSocial(ctx, "john_doe")
		require.NoError(t, err)
		assert.True(t, social.ActivityLevel.IsValid())
		assert.GreaterOrEqual(t, social.AccountAgeMonths, 1)
		assert.LessOrEqual(t, social.AccountAgeMonths, 60)
		assert.GreaterOrEqual(t, social.InfluenceScore, 0.0)
		assert.Less(t, social.InfluenceScore, 100.0)

		rep, err := p.Reputation(ctx, "john_doe")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rep, 0.0)
		assert.Less(t, rep, 1.0)
	}
}

func TestSimulatedProvider_SeedIsReproducible(t *testing.T) {
	ctx := context.Background()
	a := NewSimulatedProvider(42, zap.NewNop())
	b := NewSimulatedProvider(42, zap.NewNop())

	for i := 0; i < 20; i++ {
		sa, _ := a.AnalyzeSocial(ctx, "x")
		sb, _ := b.AnalyzeSocial(ctx, "x")
		assert.Equal(t, sa, sb)
	}
}

func TestSimulatedProvider_DistinctBreachDetails(t *testing.T) {
	p := NewSimulatedProvider(3, zap.NewNop())
	for i := 0; i < 200; i++ {
		breach, err := p.CheckBreaches(context.Background(), "x")
		require.NoError(t, err)
		if len(breach.BreachDetails) == 2 {
			assert.NotEqual(t, breach.BreachDetails[0].Name, breach.BreachDetails[1].Name)
		}
	}
}
