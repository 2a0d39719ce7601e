package service

import (
	"fmt"

	"github.com/handy-recon/internal/domain"
)

// ReportValidator checks an assembled report before it is handed out.
type ReportValidator struct{}

// NewReportValidator creates a new report validator.
func NewReportValidator() *ReportValidator {
	return &ReportValidator{}
}

// Validate checks if the report conforms to its invariants for the given platform set.
func (v *ReportValidator) Validate(report *domain.InvestigationReport, platforms []domain.PlatformTarget) error {
	if report == nil {
		return fmt.Errorf("%w: report is nil", domain.ErrInvalidReport)
	}

	if report.OperationID == "" {
		return fmt.Errorf("%w: operation_id is required", domain.ErrInvalidReport)
	}

	if report.Username == "" {
		return fmt.Errorf("%w: username is required", domain.ErrInvalidReport)
	}

	// Validate pattern analysis
	if !report.Pattern.PatternType.IsValid() {
		return fmt.Errorf("%w: pattern_type must be generic, short, numeric or personal, got: %s",
			domain.ErrInvalidReport, report.Pattern.PatternType)
	}

	// Validate scan: exactly one outcome per configured platform
	if report.Scan.TotalChecked != len(platforms) {
		return fmt.Errorf("%w: total_checked is %d, want %d",
			domain.ErrInvalidReport, report.Scan.TotalChecked, len(platforms))
	}
	if len(report.Scan.Outcomes) != len(platforms) {
		return fmt.Errorf("%w: %d platform results, want %d",
			domain.ErrInvalidReport, len(report.Scan.Outcomes), len(platforms))
	}
	for _, p := range platforms {
		outcome, ok := report.Scan.Outcomes[p.Name]
		if !ok {
			return fmt.Errorf("%w: missing result for platform %s", domain.ErrInvalidReport, p.Name)
		}
		if !outcome.Status.IsValid() {
			return fmt.Errorf("%w: platform %s has status %q", domain.ErrInvalidReport, p.Name, outcome.Status)
		}
	}

	// Validate intelligence
	if report.Intelligence.Breach.BreachesFound < 0 {
		return fmt.Errorf("%w: breaches_found is negative", domain.ErrInvalidReport)
	}
	if r := report.Intelligence.ReputationScore; r < 0 || r > 1 {
		return fmt.Errorf("%w: reputation_score %v outside [0,1]", domain.ErrInvalidReport, r)
	}

	// Validate risk assessment
	risk := report.Risk
	if risk.Score < 0 || risk.Score > 1 {
		return fmt.Errorf("%w: risk score %v outside [0,1]", domain.ErrInvalidReport, risk.Score)
	}
	if risk.Level != domain.LevelForScore(risk.Score) {
		return fmt.Errorf("%w: risk level %s does not match score %v",
			domain.ErrInvalidReport, risk.Level, risk.Score)
	}
	for i, rec := range risk.Recommendations {
		if rec == "" {
			return fmt.Errorf("%w: recommendation[%d] is empty", domain.ErrInvalidReport, i)
		}
	}

	return nil
}
