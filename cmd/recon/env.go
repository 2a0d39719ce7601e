package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/handy-recon/internal/app"
	"github.com/handy-recon/internal/config"
	"github.com/handy-recon/internal/domain"
	"github.com/handy-recon/internal/logger"
)

// investigator is the part of the pipeline the CLI drives.
type investigator interface {
	Investigate(ctx context.Context, username string) (*domain.InvestigationReport, error)
}

// environment is everything a command needs to run investigations.
type environment struct {
	investigator investigator
	resultsDir   string
	close        func()
}

// loader builds the environment once flags are parsed.
type loader func(verbose bool) (*environment, error)

func loadEnvironment(verbose bool) (*environment, error) {
	_ = godotenv.Load()

	level := "warn"
	if verbose {
		level = "debug"
	}
	// Logs go to stderr so reports on stdout can be piped.
	zapLogger, err := logger.New(logger.Options{Development: true, Level: level, Stderr: true})
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	application := app.New(cfg, zapLogger)
	return &environment{
		investigator: application.Investigator,
		resultsDir:   cfg.Output.ResultsDir,
		close: func() {
			application.Close()
			_ = zapLogger.Sync()
		},
	}, nil
}
