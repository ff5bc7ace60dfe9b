package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// PlanPath locates the project plan (.hcl or .json).
	PlanPath string
	// OutputPrefix is the artifact path prefix; the solution index and an
	// extension are appended per retained solution.
	OutputPrefix string

	TimeLimitSeconds int
	MaxSolutions     int
	// MaxDuration caps the makespan when positive. Zero defers to the
	// plan file's own max_duration, if any.
	MaxDuration int

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PlanPath == "" {
		return nil, errors.New("PlanPath is a required configuration field and cannot be empty")
	}
	if cfg.OutputPrefix == "" {
		return nil, errors.New("OutputPrefix is a required configuration field and cannot be empty")
	}
	if cfg.TimeLimitSeconds <= 0 {
		return nil, errors.New("TimeLimitSeconds must be positive")
	}
	if cfg.MaxSolutions <= 0 {
		return nil, errors.New("MaxSolutions must be positive")
	}
	if cfg.MaxDuration < 0 {
		return nil, errors.New("MaxDuration must not be negative")
	}
	return &cfg, nil
}
