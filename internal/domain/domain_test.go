package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  RiskLevel
	}{
		{0.0, RiskLow},
		{0.1, RiskLow},
		{0.2999, RiskLow},
		{0.3, RiskMedium},
		{0.5, RiskMedium},
		{0.6999, RiskMedium},
		{0.7, RiskHigh},
		{0.9, RiskHigh},
		{1.0, RiskHigh},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.4f", tt.score), func(t *testing.T) {
			assert.Equal(t, tt.want, LevelForScore(tt.score))
		})
	}
}

func TestStage_Next(t *testing.T) {
	var visited []Stage
	for s := StageStart; !s.IsTerminal(); s = s.Next() {
		visited = append(visited, s)
	}
	visited = append(visited, StageComplete)

	assert.Equal(t, Stages(), visited)
	assert.Equal(t, StageComplete, StageComplete.Next())
	assert.Equal(t, StageComplete, Stage("bogus").Next())
}

func TestStage_IsFatal(t *testing.T) {
	assert.True(t, StagePatternAnalysis.IsFatal())
	assert.True(t, StageIntelligenceGathering.IsFatal())
	assert.True(t, StageCorrelation.IsFatal())
	assert.False(t, StageScanning.IsFatal())
	assert.False(t, StageStart.IsFatal())
}

func TestWrapStage(t *testing.T) {
	require.NoError(t, WrapStage(StageCorrelation, nil))

	cause := errors.New("boom")
	err := WrapStage(StageIntelligenceGathering, cause)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "intelligence_gathering: boom", err.Error())

	stage, ok := FailedStage(err)
	require.True(t, ok)
	assert.Equal(t, StageIntelligenceGathering, stage)

	// Rewrapping keeps the original stage.
	again := WrapStage(StageCorrelation, fmt.Errorf("outer: %w", err))
	stage, _ = FailedStage(again)
	assert.Equal(t, StageIntelligenceGathering, stage)

	_, ok = FailedStage(cause)
	assert.False(t, ok)
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Field: "PROBE_TIMEOUT", Message: "must be positive"}
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "PROBE_TIMEOUT")
}

func TestPlatformTarget_URLFor(t *testing.T) {
	p := PlatformTarget{Name: "reddit", URLTemplate: "https://reddit.com/user/{}"}
	assert.Equal(t, "https://reddit.com/user/john_doe", p.URLFor("john_doe"))
	assert.Equal(t, "https://reddit.com/user/a%2Fb", p.URLFor("a/b"))
}

func TestScanReport_Count(t *testing.T) {
	r := ScanReport{Outcomes: map[string]ProbeOutcome{
		"a": {Platform: "a", Status: ProbeFound},
		"b": {Platform: "b", Status: ProbeError},
		"c": {Platform: "c", Status: ProbeFound},
	}}
	assert.Equal(t, 2, r.Count(ProbeFound))
	assert.Equal(t, 1, r.Count(ProbeError))
	assert.Equal(t, 0, r.Count(ProbeNotFound))
}
