// Package username provides username normalization and batch input parsing.
package username

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/handy-recon/internal/domain"
)

// DefaultMaxLength is the longest username accepted by default.
const DefaultMaxLength = 128

// Normalizer validates and canonicalizes usernames before they are probed.
type Normalizer struct {
	maxLength int
	rejects   []*regexp.Regexp
}

// Values that would change the meaning of a platform URL once substituted.
var defaultRejects = []*regexp.Regexp{
	regexp.MustCompile(`[/?#\\]`),
	regexp.MustCompile(`^\.+$`),
	regexp.MustCompile(`%[0-9a-fA-F]{2}`),
}

// New creates a Normalizer. A non-positive maxLength selects DefaultMaxLength.
func New(maxLength int) *Normalizer {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Normalizer{
		maxLength: maxLength,
		rejects:   defaultRejects,
	}
}

// Normalize trims surrounding whitespace and validates the result.
func (n *Normalizer) Normalize(raw string) (string, error) {
	if n.IsEmpty(raw) {
		return "", domain.ErrEmptyUsername
	}
	name := strings.TrimSpace(raw)

	if n.IsTooLong(name) {
		return "", fmt.Errorf("%w: longer than %d characters", domain.ErrInvalidUsername, n.maxLength)
	}

	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return "", fmt.Errorf("%w: contains whitespace or control characters", domain.ErrInvalidUsername)
		}
	}

	for _, pattern := range n.rejects {
		if pattern.MatchString(name) {
			return "", fmt.Errorf("%w: %q is not a profile name", domain.ErrInvalidUsername, name)
		}
	}

	return name, nil
}

// IsEmpty checks if the username is empty or whitespace only.
func (n *Normalizer) IsEmpty(raw string) bool {
	return strings.TrimSpace(raw) == ""
}

// IsTooLong checks if the username exceeds the maximum length in characters.
func (n *Normalizer) IsTooLong(name string) bool {
	return len([]rune(name)) > n.maxLength
}
