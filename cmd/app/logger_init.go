package main

import (
	"github.com/osse101/HomeboxBridge_Go/internal/config"
	"github.com/osse101/HomeboxBridge_Go/internal/logger"
)

// initLogger logs to stdout only; used for one-shot runs that should not
// leave session files behind.
func initLogger(cfg *config.Config) {
	// Source locations only in dev
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	)

	logger.InitLogger(loggerConfig)
}
