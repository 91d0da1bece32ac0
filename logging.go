package main

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the session logger. Verbosity maps onto logr V-levels:
// 0 prints lifecycle entries, 1 adds per-command detail, 2 and above adds
// per-frame detail. development selects the console encoder.
func newLogger(verbosity int, development bool) (logr.Logger, error) {
	var zcfg zap.Config
	if development {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	// logr V(n) entries log at zap level -n, so the verbosity flag becomes
	// a negative level floor.
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))

	z, err := zcfg.Build()
	if err != nil {
		return logr.Logger{}, errors.Wrap(err, "build logger")
	}
	return zapr.NewLogger(z).WithName("sortviz"), nil
}
