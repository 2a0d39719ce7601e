package domain

// Stage is one state of the investigation state machine.
// Transitions are strictly linear: Start → PatternAnalysis → Scanning →
// IntelligenceGathering → Correlation → Complete.
type Stage string

const (
	StageStart                 Stage = "start"
	StagePatternAnalysis       Stage = "pattern_analysis"
	StageScanning              Stage = "scanning"
	StageIntelligenceGathering Stage = "intelligence_gathering"
	StageCorrelation           Stage = "correlation"
	StageComplete              Stage = "complete"
)

var stageOrder = []Stage{
	StageStart,
	StagePatternAnalysis,
	StageScanning,
	StageIntelligenceGathering,
	StageCorrelation,
	StageComplete,
}

// Stages returns the full stage sequence in execution order.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// Next returns the successor of s. Complete and unknown stages return Complete.
func (s Stage) Next() Stage {
	for i, st := range stageOrder {
		if st == s && i+1 < len(stageOrder) {
			return stageOrder[i+1]
		}
	}
	return StageComplete
}

// IsTerminal reports whether s is the final stage.
func (s Stage) IsTerminal() bool {
	return s == StageComplete
}

// IsFatal reports whether an error raised in s aborts the investigation.
// Scanning absorbs its failures into probe outcomes.
func (s Stage) IsFatal() bool {
	switch s {
	case StagePatternAnalysis, StageIntelligenceGathering, StageCorrelation:
		return true
	default:
		return false
	}
}
