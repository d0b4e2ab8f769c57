// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the zap logger shared by the CLI and the linter.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a console logger writing to stderr. Debug enables the development
// config; otherwise only warnings and errors are emitted.
func New(debug bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	cfg.DisableStacktrace = !debug
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Sugar(), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
