package pattern

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/handy-recon/internal/domain"
)

func newTestAnalyzer(opts ...Option) *Analyzer {
	return NewAnalyzer(DefaultRules(), zap.NewNop(), opts...)
}

func TestAnalyzer_Classification(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		username string
		want     domain.PatternType
	}{
		{"admin123", domain.PatternGeneric},
		{"ab", domain.PatternShort},
		{"a1b2c3d4", domain.PatternNumeric},
		{"john_doe", domain.PatternPersonal},
		{"TestPilot", domain.PatternPersonal},
		{"testpilot", domain.PatternGeneric},
		{"SuperUser", domain.PatternPersonal},
		{"superuser", domain.PatternGeneric},
		// generic wins over short
		{"user", domain.PatternGeneric},
		// short wins over numeric
		{"1234", domain.PatternShort},
		{"jane99", domain.PatternPersonal},
		{"jane999", domain.PatternNumeric},
		// non-ASCII decimal digits count too
		{"ana١٢٣", domain.PatternNumeric},
		{"j.smith", domain.PatternPersonal},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			profile, err := a.Analyze(tt.username)
			if err != nil {
				t.Fatalf("Analyze(%q) error = %v", tt.username, err)
			}
			if profile.PatternType != tt.want {
				t.Errorf("Analyze(%q).PatternType = %s, want %s", tt.username, profile.PatternType, tt.want)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		username string
		want     domain.PatternFeatures
	}{
		{"john_doe", domain.PatternFeatures{Length: 8, HasUnderscore: true}},
		{"j.smith42", domain.PatternFeatures{Length: 9, HasDigits: true, HasDot: true}},
		{"ab", domain.PatternFeatures{Length: 2}},
		{"josé", domain.PatternFeatures{Length: 4}},
		{"ana١٢٣", domain.PatternFeatures{Length: 6, HasDigits: true}},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			if got := Extract(tt.username); got != tt.want {
				t.Errorf("Extract(%q) = %+v, want %+v", tt.username, got, tt.want)
			}
		})
	}
}

func TestAnalyzer_Annotations(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a := newTestAnalyzer(
		WithConfidenceSource(FixedConfidence(0.8)),
		WithClock(func() time.Time { return fixed }),
	)

	profile, err := a.Analyze("john_doe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Confidence != 0.8 {
		t.Errorf("Confidence = %v, want 0.8", profile.Confidence)
	}
	if !profile.Timestamp.Equal(fixed) {
		t.Errorf("Timestamp = %v, want %v", profile.Timestamp, fixed)
	}
}

func TestAnalyzer_ConfidenceRange(t *testing.T) {
	a := newTestAnalyzer()
	for i := 0; i < 200; i++ {
		profile, err := a.Analyze("john_doe")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if profile.Confidence < MinConfidence || profile.Confidence > MaxConfidence {
			t.Fatalf("Confidence = %v, outside [%v, %v]", profile.Confidence, MinConfidence, MaxConfidence)
		}
	}

	// Out-of-range sources are clamped.
	high := newTestAnalyzer(WithConfidenceSource(FixedConfidence(3)))
	profile, _ := high.Analyze("john_doe")
	if profile.Confidence != MaxConfidence {
		t.Errorf("Confidence = %v, want %v", profile.Confidence, MaxConfidence)
	}
}

func TestAnalyzer_EmptyUsername(t *testing.T) {
	a := newTestAnalyzer()
	for _, in := range []string{"", "   "} {
		if _, err := a.Analyze(in); !errors.Is(err, domain.ErrEmptyUsername) {
			t.Errorf("Analyze(%q) error = %v, want ErrEmptyUsername", in, err)
		}
	}
}

func TestRule_Match(t *testing.T) {
	rule := genericMarker()
	if !rule.Match("administrator", Extract("administrator")) {
		t.Error("expected keyword match for administrator")
	}
	if rule.Match("ADMINISTRATOR", Extract("ADMINISTRATOR")) {
		t.Error("generic markers must match case-sensitively")
	}
	if rule.Match("john_doe", Extract("john_doe")) {
		t.Error("unexpected match for john_doe")
	}
}
