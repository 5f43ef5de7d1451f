// Package logging builds the logr.Logger shared by the reader and the CLI.
package logging

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels passed to logr's V().
const (
	DEFAULT = 0
	DEBUG   = 1
	TRACE   = 2
)

// NewLogger returns a zap-backed logger that emits V(level) records for every
// level up to verbosity. Development loggers write console text, others JSON.
func NewLogger(verbosity int, development bool) (logr.Logger, error) {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	if verbosity < DEFAULT {
		verbosity = DEFAULT
	}
	// logr V(n) maps to zap level -n.
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	cfg.DisableStacktrace = !development
	cfg.OutputPaths = []string{"stderr"}

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), err
	}
	return zapr.NewLogger(zl), nil
}

// NewTestLogger returns a development logger at TRACE verbosity, for suites
// that want to see everything the reader says.
func NewTestLogger() logr.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-TRACE))
	cfg.OutputPaths = []string{"stderr"}
	return zapr.NewLogger(zap.Must(cfg.Build()))
}
