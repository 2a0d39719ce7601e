// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/handy-recon/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	// Server configuration
	Server ServerConfig

	// Platform scan configuration
	Scan ScanConfig

	// Intelligence and scoring configuration
	Intel IntelConfig

	// Output configuration for the CLI
	Output OutputConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Port is the HTTP port to listen on.
	Port string

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes of the response.
	// Must exceed ProbeTimeout plus simulated stage latency.
	WriteTimeout time.Duration
}

// ScanConfig contains platform probing settings.
type ScanConfig struct {
	// ProbeTimeout bounds each individual platform request.
	ProbeTimeout time.Duration

	// MaxConcurrency bounds concurrent probes. Zero means one per platform.
	MaxConcurrency int

	// UserAgent is sent with every probe.
	UserAgent string

	// PlatformsFile optionally points to a YAML platform set.
	PlatformsFile string

	// Platforms is the immutable platform set resolved at startup.
	Platforms []domain.PlatformTarget
}

// IntelProvider names an intelligence provider implementation.
type IntelProvider string

const (
	// IntelProviderSimulated generates stochastic stand-in signals.
	IntelProviderSimulated IntelProvider = "simulated"

	// IntelProviderStatic returns fixed signals.
	IntelProviderStatic IntelProvider = "static"
)

// RiskScorer names a risk scoring implementation.
type RiskScorer string

const (
	// RiskScorerSimulated draws a random score.
	RiskScorerSimulated RiskScorer = "simulated"

	// RiskScorerHeuristic derives the score from upstream signals.
	RiskScorerHeuristic RiskScorer = "heuristic"
)

// IntelConfig contains intelligence gathering and correlation settings.
type IntelConfig struct {
	// Provider selects the intelligence provider.
	Provider IntelProvider

	// Seed makes stochastic providers reproducible. Zero seeds from the clock.
	Seed uint64

	// Scorer selects the risk scorer.
	Scorer RiskScorer

	// SimulateLatency enables the placeholder delays between stages.
	SimulateLatency bool
}

// OutputConfig contains report output settings.
type OutputConfig struct {
	// ResultsDir is where saved reports are written.
	ResultsDir string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnvOrDefault("PORT", "8080"),
			ReadTimeout:  getDurationOrDefault("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationOrDefault("SERVER_WRITE_TIMEOUT", 60*time.Second),
		},
		Scan: ScanConfig{
			ProbeTimeout:   getDurationOrDefault("PROBE_TIMEOUT", 10*time.Second),
			MaxConcurrency: getIntOrDefault("SCAN_MAX_CONCURRENCY", 0),
			UserAgent:      getEnvOrDefault("PROBE_USER_AGENT", "handy-recon/1.0"),
			PlatformsFile:  os.Getenv("PLATFORMS_FILE"),
		},
		Intel: IntelConfig{
			Provider:        IntelProvider(strings.ToLower(getEnvOrDefault("INTEL_PROVIDER", string(IntelProviderSimulated)))),
			Seed:            getUintOrDefault("INTEL_SEED", 0),
			Scorer:          RiskScorer(strings.ToLower(getEnvOrDefault("RISK_SCORER", string(RiskScorerSimulated)))),
			SimulateLatency: getBoolOrDefault("SIMULATE_LATENCY", false),
		},
		Output: OutputConfig{
			ResultsDir: getEnvOrDefault("RESULTS_DIR", "results"),
		},
	}

	if cfg.Scan.PlatformsFile != "" {
		platforms, err := LoadPlatformsFile(cfg.Scan.PlatformsFile)
		if err != nil {
			return nil, err
		}
		cfg.Scan.Platforms = platforms
	} else {
		cfg.Scan.Platforms = DefaultPlatforms()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Scan.ProbeTimeout < 100*time.Millisecond {
		return &domain.ConfigError{Field: "PROBE_TIMEOUT", Message: "must be at least 100ms"}
	}

	if c.Scan.MaxConcurrency < 0 {
		return &domain.ConfigError{Field: "SCAN_MAX_CONCURRENCY", Message: "must not be negative"}
	}

	switch c.Intel.Provider {
	case IntelProviderSimulated, IntelProviderStatic:
	default:
		return &domain.ConfigError{
			Field:   "INTEL_PROVIDER",
			Message: fmt.Sprintf("unknown provider %q (valid: simulated, static)", c.Intel.Provider),
		}
	}

	switch c.Intel.Scorer {
	case RiskScorerSimulated, RiskScorerHeuristic:
	default:
		return &domain.ConfigError{
			Field:   "RISK_SCORER",
			Message: fmt.Sprintf("unknown scorer %q (valid: simulated, heuristic)", c.Intel.Scorer),
		}
	}

	if err := ValidatePlatforms(c.Scan.Platforms); err != nil {
		return err
	}

	return nil
}

// Concurrency returns the effective probe concurrency limit.
func (c *ScanConfig) Concurrency() int {
	if c.MaxConcurrency <= 0 || c.MaxConcurrency > len(c.Platforms) {
		return len(c.Platforms)
	}
	return c.MaxConcurrency
}

// Helper functions for reading environment variables

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getUintOrDefault(key string, defaultVal uint64) uint64 {
	if val := os.Getenv(key); val != "" {
		if u, err := strconv.ParseUint(val, 10, 64); err == nil {
			return u
		}
	}
	return defaultVal
}

func getBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		// Try parsing as seconds first (e.g., "15")
		if secs, err := strconv.Atoi(val); err == nil {
			return time.Duration(secs) * time.Second
		}
		// Try parsing as duration string (e.g., "15s", "1m")
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
