// Package correlate merges the upstream stage outputs into a risk assessment.
package correlate

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/handy-recon/internal/domain"
)

// Evidence bundles every upstream artifact a scorer may consult.
type Evidence struct {
	Username     string
	Pattern      domain.PatternProfile
	Scan         domain.ScanReport
	Intelligence domain.IntelligenceReport
}

// Score is a raw risk score and the scorer's confidence in it.
type Score struct {
	Value      float64
	Confidence float64
}

// Scorer defines the interface for risk scoring strategies.
type Scorer interface {
	Score(ctx context.Context, ev Evidence) (Score, error)
}

// RandomScorer draws a uniform score, standing in for a real scoring model.
type RandomScorer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomScorer creates a random scorer. A zero seed draws a random seed.
func NewRandomScorer(seed uint64) *RandomScorer {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &RandomScorer{rng: rand.New(rand.NewPCG(seed, ^seed))}
}

// Score implements Scorer.
func (s *RandomScorer) Score(ctx context.Context, _ Evidence) (Score, error) {
	if err := ctx.Err(); err != nil {
		return Score{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return Score{
		Value:      s.rng.Float64(),
		Confidence: MinConfidence + s.rng.Float64()*(MaxConfidence-MinConfidence),
	}, nil
}

// FixedScorer always returns the same score.
type FixedScorer struct {
	Value      float64
	Confidence float64
}

// Score implements Scorer.
func (s FixedScorer) Score(ctx context.Context, _ Evidence) (Score, error) {
	if err := ctx.Err(); err != nil {
		return Score{}, err
	}
	return Score{Value: s.Value, Confidence: s.Confidence}, nil
}

// Heuristic weights. They sum to one so the score stays in [0,1].
const (
	weightFootprint  = 0.4
	weightBreaches   = 0.25
	weightReputation = 0.2
	weightPattern    = 0.15
)

// HeuristicScorer derives a deterministic score from the evidence.
//
// A larger confirmed platform footprint, more breaches, a poorer reputation
// and a generic-looking handle all raise the score. Confidence grows with the
// share of probes that produced a definitive answer.
type HeuristicScorer struct{}

// Score implements Scorer.
func (HeuristicScorer) Score(ctx context.Context, ev Evidence) (Score, error) {
	if err := ctx.Err(); err != nil {
		return Score{}, err
	}

	var footprint, answered float64
	if total := float64(ev.Scan.TotalChecked); total > 0 {
		found := float64(ev.Scan.Count(domain.ProbeFound))
		footprint = found / total
		answered = (total - float64(ev.Scan.Count(domain.ProbeError))) / total
	}

	breaches := float64(ev.Intelligence.Breach.BreachesFound) / 2
	if breaches > 1 {
		breaches = 1
	}

	value := weightFootprint*footprint +
		weightBreaches*breaches +
		weightReputation*(1-ev.Intelligence.ReputationScore) +
		weightPattern*patternRisk(ev.Pattern.PatternType)

	return Score{
		Value:      value,
		Confidence: MinConfidence + answered*(MaxConfidence-MinConfidence),
	}, nil
}

func patternRisk(t domain.PatternType) float64 {
	switch t {
	case domain.PatternGeneric:
		return 1
	case domain.PatternNumeric:
		return 0.6
	case domain.PatternShort:
		return 0.4
	default:
		return 0.2
	}
}
