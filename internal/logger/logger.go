package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Zap: логгер приложения. Компоненты получают встроенный *zap.Logger.
type Zap struct {
	*zap.Logger
}

// New собирает JSON-логгер для prod и консольный для остальных окружений.
func New(env, level string) (*Zap, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("уровень логирования %q: %w", level, err)
	}

	var cfg zap.Config
	if env == "prod" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("сборка логгера: %w", err)
	}
	return &Zap{Logger: l}, nil
}

// Nop: логгер, который ничего не пишет.
func Nop() *Zap {
	return &Zap{Logger: zap.NewNop()}
}
