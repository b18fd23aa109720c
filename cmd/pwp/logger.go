package main

import (
	"fmt"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/calculation"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zap's SugaredLogger is the CLI's calculation logger.
var _ calculation.Logger = (*zap.SugaredLogger)(nil)

func initializeLogger(loggingConfig config.LoggingSettings) (*zap.Logger, error) {
	level := loggingConfig.Level
	if level == "" {
		level = "warn"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	var cfg zap.Config
	switch loggingConfig.Format {
	case "", "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", loggingConfig.Format)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}
