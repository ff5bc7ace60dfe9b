package app

import (
	"io"
	"log/slog"

	"github.com/vk/ganttsolver/internal/config"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	loader *config.Loader
}

// New is the constructor for the main application. Human-readable results go
// to outW; structured logs go to logW.
func New(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		loader: config.NewLoader(),
	}
}
