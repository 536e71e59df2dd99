package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/optgen/internal/config"
	"github.com/specialistvlad/optgen/internal/ctxlog"
	"github.com/specialistvlad/optgen/internal/hcldoc"
	"github.com/specialistvlad/optgen/internal/tomldoc"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logger *slog.Logger
	config *Config
	loader config.ExtensionLoader
}

// DefaultLoader reads .hcl and .toml specifications.
func DefaultLoader() config.ExtensionLoader {
	return config.ExtensionLoader{
		".hcl":  hcldoc.NewLoader(),
		".toml": tomldoc.NewLoader(),
	}
}

// NewApp is the constructor for the main application. Logs go to logW; a
// nil loader selects DefaultLoader.
func NewApp(logW io.Writer, cfg *Config, loader config.ExtensionLoader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	if loader == nil {
		loader = DefaultLoader()
	}
	return &App{
		logger: logger,
		config: cfg,
		loader: loader,
	}
}

// withLogger attaches the app's logger to ctx.
func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
