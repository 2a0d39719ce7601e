// Package probe checks whether a username exists on one external platform.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/handy-recon/internal/domain"
	"github.com/handy-recon/internal/metrics"
)

// maxDrainBytes caps how much of a response body is read before closing,
// so keep-alive connections can be reused without downloading whole pages.
const maxDrainBytes = 64 << 10

// Prober is the single-platform existence check used by the scan coordinator.
type Prober interface {
	// Probe never returns an error: every failure becomes a ProbeOutcome
	// with status error.
	Probe(ctx context.Context, target domain.PlatformTarget, username string) domain.ProbeOutcome
}

// NewHTTPClient builds the process-wide client shared by all probes.
// Redirects are never followed and every request is bounded by timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 4

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// HTTPProber probes platforms with a single GET request.
type HTTPProber struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// NewHTTPProber creates a prober around a shared client.
// The client must not follow redirects; use NewHTTPClient.
func NewHTTPProber(client *http.Client, userAgent string, logger *zap.Logger) *HTTPProber {
	return &HTTPProber{
		client:    client,
		userAgent: userAgent,
		logger:    logger.Named("prober"),
	}
}

// Probe issues one request for username on target.
func (p *HTTPProber) Probe(ctx context.Context, target domain.PlatformTarget, username string) domain.ProbeOutcome {
	start := time.Now()
	profileURL := target.URLFor(username)

	outcome := p.do(ctx, target.Name, profileURL)

	elapsed := time.Since(start)
	metrics.ProbeDuration.WithLabelValues(target.Name).Observe(elapsed.Seconds())
	p.logger.Debug("probe finished",
		zap.String("platform", target.Name),
		zap.String("url", profileURL),
		zap.String("status", string(outcome.Status)),
		zap.Duration("duration", elapsed),
	)

	return outcome
}

func (p *HTTPProber) do(ctx context.Context, platform, profileURL string) domain.ProbeOutcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profileURL, nil)
	if err != nil {
		return errorOutcome(platform, profileURL, fmt.Errorf("build request: %w", err))
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return errorOutcome(platform, profileURL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	code := resp.StatusCode
	status := domain.ProbeNotFound
	if code == http.StatusOK {
		status = domain.ProbeFound
	}

	return domain.ProbeOutcome{
		Platform:   platform,
		Status:     status,
		StatusCode: &code,
		URL:        resp.Request.URL.String(),
	}
}

func errorOutcome(platform, profileURL string, err error) domain.ProbeOutcome {
	detail := err.Error()
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		detail = "timeout: " + detail
	}
	return domain.ProbeOutcome{
		Platform: platform,
		Status:   domain.ProbeError,
		URL:      profileURL,
		Error:    detail,
	}
}
