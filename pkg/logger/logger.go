// Package logger builds the structured logger shared by every minikv
// component. It wraps zap the way the rest of the codebase expects:
// every subsystem takes a *zap.SugaredLogger rather than constructing its
// own.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-style sugared logger tagged with the given
// service name. Callers in tests typically use NewNop instead.
func New(service string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true

	log, err := cfg.Build()
	if err != nil {
		// Fall back to a no-op logger rather than panicking; a missing
		// logger must never prevent the engine from opening.
		log = zap.NewNop()
	}

	return log.Sugar().With("service", service)
}

// NewNop returns a logger that discards everything, used by tests and by
// callers that don't want log output.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
