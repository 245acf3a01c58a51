package config

import (
	"fmt"

	"github.com/viant/baseclient"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger builds a zap backed logger from Log settings
func (l Log) Logger() (baseclient.Logger, *zap.Logger, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log.level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	if l.Format != "json" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return baseclient.NewZapLogger(logger), logger, nil
}
