package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure cases.
var (
	// ErrEmptyUsername indicates the username is empty or whitespace only.
	ErrEmptyUsername = errors.New("username is empty")

	// ErrInvalidUsername indicates the username contains characters that cannot be probed.
	ErrInvalidUsername = errors.New("username is invalid")

	// ErrInvalidConfig indicates invalid configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoPlatforms indicates the platform set is empty.
	ErrNoPlatforms = errors.New("no platforms configured")

	// ErrProviderUnavailable indicates the intelligence provider could not answer.
	ErrProviderUnavailable = errors.New("intelligence provider unavailable")

	// ErrProbePanic indicates a probe unit terminated abnormally.
	ErrProbePanic = errors.New("probe terminated abnormally")

	// ErrInvalidReport indicates an assembled report violates its invariants.
	ErrInvalidReport = errors.New("invalid investigation report")
)

// StageError is a failure that aborts one investigation.
type StageError struct {
	// Stage is the stage that failed.
	Stage Stage

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}

// WrapStage creates a new StageError. A nil err yields nil.
func WrapStage(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	var se *StageError
	if errors.As(err, &se) {
		return err
	}
	return &StageError{Stage: stage, Err: err}
}

// FailedStage extracts the failing stage from err.
func FailedStage(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}

// ConfigError describes an invalid configuration value.
type ConfigError struct {
	// Field names the offending setting.
	Field string

	// Message explains what is wrong with it.
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalidConfig, e.Field, e.Message)
}

// Unwrap makes every ConfigError match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
