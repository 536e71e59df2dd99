package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	TemplateDir string   // module and aggregate templates
	OutputDir   string   // generated artifacts
	SpecPaths   []string // spec files or directories, in module order

	LogFormat   string
	LogLevel    string
	WorkerCount int

	// DryRun reports which artifacts would change without writing them.
	DryRun bool
	// Lenient tolerates template values that no placeholder references.
	Lenient bool
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.SpecPaths) == 0 {
		return nil, errors.New("at least one specification path is required")
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("worker count must be positive, got %d", cfg.WorkerCount)
	}
	return &cfg, nil
}
