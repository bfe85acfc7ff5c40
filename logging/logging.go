// Package logging constrói o *zap.Logger do serviço.
//
// development: console colorido, nível debug, stacktrace em warn.
// production: JSON, nível info, amostragem padrão do zap.
// Um nível explícito (LOG_LEVEL) sobrepõe o padrão do ambiente.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config monta a configuração do zap para o ambiente, sem construir o logger.
func Config(env, level string) (zap.Config, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(env)) {
	case EnvProduction:
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	case EnvDevelopment, "":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return zap.Config{}, fmt.Errorf("unknown environment %q", env)
	}

	if level = strings.TrimSpace(level); level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return zap.Config{}, fmt.Errorf("log level: %w", err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return cfg, nil
}

func New(env, level string, opts ...zap.Option) (*zap.Logger, error) {
	cfg, err := Config(env, level)
	if err != nil {
		return nil, err
	}
	logger, err := cfg.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("logger initialized",
		zap.String("env", env),
		zap.String("level", cfg.Level.String()))
	return logger, nil
}
