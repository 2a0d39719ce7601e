// Package domain contains the core domain models and types.
// These models describe one username investigation and are independent
// of any transport or storage concerns.
package domain

import (
	"net/url"
	"strings"
	"time"
)

// Placeholder is the substitution slot in a platform URL template.
const Placeholder = "{}"

// PlatformTarget is one external platform probed for account existence.
type PlatformTarget struct {
	// Name is the platform identifier used as the outcome key.
	Name string `json:"name" yaml:"name"`

	// URLTemplate contains exactly one Placeholder for the username.
	URLTemplate string `json:"url_template" yaml:"url_template"`
}

// URLFor builds the profile URL for username.
func (p PlatformTarget) URLFor(username string) string {
	return strings.Replace(p.URLTemplate, Placeholder, url.PathEscape(username), 1)
}

// ProbeStatus is the tri-state result of a single platform probe.
type ProbeStatus string

const (
	ProbeFound    ProbeStatus = "found"
	ProbeNotFound ProbeStatus = "not_found"
	ProbeError    ProbeStatus = "error"
)

// IsValid checks if the status value is one of the allowed values.
func (s ProbeStatus) IsValid() bool {
	switch s {
	case ProbeFound, ProbeNotFound, ProbeError:
		return true
	default:
		return false
	}
}

// ProbeOutcome records what one platform probe observed.
type ProbeOutcome struct {
	Platform   string      `json:"platform"`
	Status     ProbeStatus `json:"status"`
	StatusCode *int        `json:"status_code,omitempty"`
	URL        string      `json:"url,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// ScanReport aggregates the outcomes of one platform scan.
type ScanReport struct {
	Username string `json:"username"`

	// Outcomes holds exactly one entry per configured platform.
	Outcomes map[string]ProbeOutcome `json:"platform_results"`

	// Duration is the wall-clock scan time in seconds.
	Duration float64 `json:"scan_duration"`

	// TotalChecked always equals the number of configured platforms.
	TotalChecked int `json:"total_checked"`
}

// Count returns the number of outcomes with the given status.
func (r ScanReport) Count(status ProbeStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// PatternType is the coarse classification of a username.
type PatternType string

const (
	PatternGeneric  PatternType = "generic"
	PatternShort    PatternType = "short"
	PatternNumeric  PatternType = "numeric"
	PatternPersonal PatternType = "personal"
)

// IsValid checks if the pattern type is one of the allowed values.
func (p PatternType) IsValid() bool {
	switch p {
	case PatternGeneric, PatternShort, PatternNumeric, PatternPersonal:
		return true
	default:
		return false
	}
}

// PatternFeatures are the lexical features extracted from a username.
type PatternFeatures struct {
	Length        int  `json:"length"`
	HasDigits     bool `json:"has_digits"`
	HasUnderscore bool `json:"has_underscore"`
	HasDot        bool `json:"has_dot"`
}

// PatternProfile is the output of pattern analysis.
// Only PatternType and Features are deterministic.
type PatternProfile struct {
	PatternType PatternType     `json:"pattern_type"`
	Features    PatternFeatures `json:"features"`
	Confidence  float64         `json:"confidence"`
	Timestamp   time.Time       `json:"timestamp"`
}

// BreachRecord describes one known breach.
type BreachRecord struct {
	Name              string `json:"breach"`
	Date              string `json:"date"`
	CompromisedFields string `json:"data_compromised"`
}

// BreachSummary is the breach exposure signal for a username.
type BreachSummary struct {
	BreachesFound int            `json:"breaches_found"`
	BreachDetails []BreachRecord `json:"breach_details"`
	CheckedAt     time.Time      `json:"last_checked"`
}

// ActivityLevel estimates how active an identity is on social platforms.
type ActivityLevel string

const (
	ActivityLow    ActivityLevel = "low"
	ActivityMedium ActivityLevel = "medium"
	ActivityHigh   ActivityLevel = "high"
)

// IsValid checks if the activity level is one of the allowed values.
func (a ActivityLevel) IsValid() bool {
	switch a {
	case ActivityLow, ActivityMedium, ActivityHigh:
		return true
	default:
		return false
	}
}

// SocialSummary is the social-activity signal for a username.
type SocialSummary struct {
	ActivityLevel    ActivityLevel `json:"activity_level"`
	AccountAgeMonths int           `json:"account_age"`
	InfluenceScore   float64       `json:"influence_score"`
}

// IntelligenceReport bundles the supplementary signals of stage three.
type IntelligenceReport struct {
	Username        string        `json:"username"`
	Breach          BreachSummary `json:"breach_data"`
	Social          SocialSummary `json:"social_analysis"`
	ReputationScore float64       `json:"reputation_score"`
}

// RiskLevel is the bucketed risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// IsValid checks if the risk level is one of the allowed values.
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

// Risk bucket boundaries. A score equal to a boundary belongs to the upper bucket.
const (
	MediumRiskThreshold = 0.3
	HighRiskThreshold   = 0.7
)

// LevelForScore buckets a score in [0,1] into a RiskLevel.
func LevelForScore(score float64) RiskLevel {
	switch {
	case score < MediumRiskThreshold:
		return RiskLow
	case score < HighRiskThreshold:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// RiskAssessment is the output of correlation.
type RiskAssessment struct {
	Score           float64   `json:"score"`
	Level           RiskLevel `json:"level"`
	Factors         []string  `json:"factors"`
	Confidence      float64   `json:"confidence"`
	Recommendations []string  `json:"recommendations"`
}

// InvestigationReport is the final, immutable result of one investigation.
type InvestigationReport struct {
	OperationID   string             `json:"operation_id"`
	Username      string             `json:"username"`
	Pattern       PatternProfile     `json:"brain_analysis"`
	Scan          ScanReport         `json:"scan_results"`
	Intelligence  IntelligenceReport `json:"api_intelligence"`
	Risk          RiskAssessment     `json:"risk_assessment"`
	TotalDuration float64            `json:"total_duration"`
	Timestamp     time.Time          `json:"timestamp"`
}

// InvestigationRequest is an incoming investigation request.
type InvestigationRequest struct {
	// Username is the identifier to investigate.
	Username string `json:"username" binding:"required"`
}
