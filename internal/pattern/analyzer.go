package pattern

import (
	"math/rand/v2"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/handy-recon/internal/domain"
)

// Confidence bounds for pattern classification.
const (
	MinConfidence = 0.7
	MaxConfidence = 0.95
)

// ConfidenceSource annotates a classification with a confidence value.
type ConfidenceSource interface {
	Confidence(patternType domain.PatternType) float64
}

// RandomConfidence draws a confidence uniformly from [MinConfidence, MaxConfidence].
type RandomConfidence struct{}

// Confidence implements ConfidenceSource.
func (RandomConfidence) Confidence(domain.PatternType) float64 {
	return MinConfidence + rand.Float64()*(MaxConfidence-MinConfidence)
}

// FixedConfidence always reports the same confidence.
type FixedConfidence float64

// Confidence implements ConfidenceSource.
func (f FixedConfidence) Confidence(domain.PatternType) float64 {
	return float64(f)
}

// Analyzer applies classification rules to usernames.
type Analyzer struct {
	rules      []*Rule
	confidence ConfidenceSource
	now        func() time.Time
	logger     *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithConfidenceSource replaces the default random confidence.
func WithConfidenceSource(src ConfidenceSource) Option {
	return func(a *Analyzer) { a.confidence = src }
}

// WithClock replaces time.Now for the profile timestamp.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// NewAnalyzer creates a new analyzer with the provided rules.
func NewAnalyzer(rules []*Rule, logger *zap.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		rules:      rules,
		confidence: RandomConfidence{},
		now:        time.Now,
		logger:     logger.Named("pattern_analyzer"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze extracts the lexical features of username and classifies it.
func (a *Analyzer) Analyze(username string) (domain.PatternProfile, error) {
	if strings.TrimSpace(username) == "" {
		return domain.PatternProfile{}, domain.ErrEmptyUsername
	}

	features := Extract(username)
	patternType := domain.PatternPersonal
	for _, rule := range a.rules {
		if rule.Match(username, features) {
			a.logger.Debug("rule matched",
				zap.String("rule_id", rule.ID),
				zap.String("pattern_type", string(rule.Result)),
			)
			patternType = rule.Result
			break
		}
	}

	return domain.PatternProfile{
		PatternType: patternType,
		Features:    features,
		Confidence:  clamp(a.confidence.Confidence(patternType), MinConfidence, MaxConfidence),
		Timestamp:   a.now().UTC(),
	}, nil
}

// Extract derives the lexical features of username.
func Extract(username string) domain.PatternFeatures {
	return domain.PatternFeatures{
		Length:        utf8.RuneCountInString(username),
		HasDigits:     strings.IndexFunc(username, unicode.IsDigit) >= 0,
		HasUnderscore: strings.Contains(username, "_"),
		HasDot:        strings.Contains(username, "."),
	}
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
