package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
	level  zap.AtomicLevel
	once   sync.Once
)

// GetLogger returns zap.Logger instance, using singleton pattern creates only one reusable instance.
// development config by default, APP_ENV=production switches to JSON output, LOG_LEVEL sets the level
func GetLogger() *zap.Logger {
	once.Do(func() {
		var err error
		logger, level, err = build(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))
		if err != nil {
			panic("failed logger setup : " + err.Error())
		}
	})
	return logger
}

// SetLevel changes the level of every logger handed out by GetLogger.
func SetLevel(text string) error {
	GetLogger()
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(text)); err != nil {
		return err
	}
	level.SetLevel(lvl)
	return nil
}

func build(env, levelText string) (*zap.Logger, zap.AtomicLevel, error) {
	cfg := zap.NewDevelopmentConfig()
	if strings.EqualFold(env, "production") {
		cfg = zap.NewProductionConfig()
	}
	if levelText != "" {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(levelText)); err != nil {
			return nil, cfg.Level, err
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	l, err := cfg.Build()
	return l, cfg.Level, err
}
