package config

import (
	"time"

	"go.uber.org/zap/zapcore"
)

const defaultWriteTimeout = 30 * time.Second

type Option func(*Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) {
		c.Log.LogLevel = level
	}
}

func WithWriteTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Server.WriteTimeout = timeout
	}
}
