// Package intel gathers supplementary signals about a username.
package intel

import (
	"context"

	"github.com/handy-recon/internal/domain"
)

// Provider defines the interface for intelligence sources.
// This interface allows a real breach database or social-graph service
// to replace the stand-in providers without touching the pipeline.
type Provider interface {
	// CheckBreaches reports known breach exposure for username.
	CheckBreaches(ctx context.Context, username string) (domain.BreachSummary, error)

	// AnalyzeSocial estimates the social footprint of username.
	AnalyzeSocial(ctx context.Context, username string) (domain.SocialSummary, error)

	// Reputation returns a reputation score in [0,1].
	Reputation(ctx context.Context, username string) (float64, error)
}
