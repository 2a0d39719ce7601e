// Package pattern classifies usernames by their lexical shape.
// Rules are evaluated in order and the first match decides the pattern type.
package pattern

import (
	"strings"
	"unicode"

	"github.com/handy-recon/internal/domain"
)

// Rule represents a single classification rule.
type Rule struct {
	// ID is the unique identifier for this rule.
	ID string

	// Description explains what this rule detects.
	Description string

	// Keywords are substring matches, case-insensitive unless CaseSensitive is set.
	Keywords []string

	// CaseSensitive makes keyword matching respect case.
	CaseSensitive bool

	// Predicate is an optional check over the extracted features.
	Predicate func(username string, features domain.PatternFeatures) bool

	// Result is the pattern type assigned when this rule matches.
	Result domain.PatternType
}

// Match checks if the username matches this rule.
func (r *Rule) Match(username string, features domain.PatternFeatures) bool {
	subject := username
	if !r.CaseSensitive {
		subject = strings.ToLower(username)
	}

	// Check keywords first (faster)
	for _, kw := range r.Keywords {
		if !r.CaseSensitive {
			kw = strings.ToLower(kw)
		}
		if strings.Contains(subject, kw) {
			return true
		}
	}

	if r.Predicate != nil {
		return r.Predicate(username, features)
	}

	return false
}

// ShortLength is the length below which a username is considered short.
const ShortLength = 5

// NumericDigits is the digit count above which a username is considered numeric.
const NumericDigits = 2

// DefaultRules returns the built-in classification rules in evaluation order.
// Usernames that match none of them are classified as personal.
func DefaultRules() []*Rule {
	return []*Rule{
		genericMarker(),
		shortName(),
		numericHeavy(),
	}
}

func genericMarker() *Rule {
	return &Rule{
		ID:            "generic_marker",
		Description:   "Contains a lowercase marker typical of throwaway or role accounts",
		Keywords:      []string{"admin", "test", "user"},
		CaseSensitive: true,
		Result:        domain.PatternGeneric,
	}
}

func shortName() *Rule {
	return &Rule{
		ID:          "short_name",
		Description: "Shorter than the short-name threshold",
		Predicate: func(_ string, f domain.PatternFeatures) bool {
			return f.Length < ShortLength
		},
		Result: domain.PatternShort,
	}
}

func numericHeavy() *Rule {
	return &Rule{
		ID:          "numeric_heavy",
		Description: "Carries more digits than a typical personal handle",
		Predicate: func(username string, _ domain.PatternFeatures) bool {
			return countDigits(username) > NumericDigits
		},
		Result: domain.PatternNumeric,
	}
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
