package correlate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/handy-recon/internal/domain"
)

// Confidence bounds of a risk assessment.
const (
	MinConfidence = 0.8
	MaxConfidence = 0.95
)

// Factor tags attached to every assessment.
var defaultFactors = []string{
	"multiple_platforms",
	"pattern_analysis",
	"breach_data",
}

var defaultRecommendations = []string{
	"Monitor social media activity",
	"Check for additional aliases",
	"Verify breach exposure details",
}

// Correlator turns upstream signals into a RiskAssessment.
type Correlator struct {
	scorer Scorer
	logger *zap.Logger
}

// NewCorrelator creates a new Correlator.
func NewCorrelator(scorer Scorer, logger *zap.Logger) *Correlator {
	return &Correlator{
		scorer: scorer,
		logger: logger.Named("correlator"),
	}
}

// Correlate scores the evidence and buckets it into a risk level.
func (c *Correlator) Correlate(
	ctx context.Context,
	username string,
	profile domain.PatternProfile,
	scan domain.ScanReport,
	intel domain.IntelligenceReport,
) (domain.RiskAssessment, error) {
	score, err := c.scorer.Score(ctx, Evidence{
		Username:     username,
		Pattern:      profile,
		Scan:         scan,
		Intelligence: intel,
	})
	if err != nil {
		return domain.RiskAssessment{}, fmt.Errorf("score: %w", err)
	}

	value := clamp(score.Value, 0, 1)
	confidence := clamp(score.Confidence, MinConfidence, MaxConfidence)
	level := domain.LevelForScore(value)

	c.logger.Debug("risk scored",
		zap.String("username", username),
		zap.Float64("score", value),
		zap.String("level", string(level)),
		zap.Float64("confidence", confidence),
	)

	return domain.RiskAssessment{
		Score:           value,
		Level:           level,
		Factors:         append([]string(nil), defaultFactors...),
		Confidence:      confidence,
		Recommendations: append([]string(nil), defaultRecommendations...),
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
