// Package logging configures the structured logger used across the
// Secret Custody Core. Every component takes a *Logger rather than
// reaching for a package-level global, mirroring the teacher's
// preference for explicit, passed-in state over ambient singletons.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin wrapper around zap.Logger. It exists so call sites
// read "logging.Logger" rather than reaching into zap's API directly,
// and so the redaction contract (never log secret-derived bytes) has a
// single place to be enforced in review.
type Logger struct {
	z *zap.Logger
}

// New builds a production-style JSON logger. verbose lowers the level
// to Debug; otherwise only Info and above are emitted.
func New(verbose bool) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// NewNop returns a logger that discards everything, for tests.
func NewNop() *Logger { return &Logger{z: zap.NewNop()} }

func (l *Logger) Sync() { _ = l.z.Sync() }

// Debug logs non-sensitive diagnostic detail. Never pass secret bytes,
// passwords, mnemonics, seeds, or private keys as fields.
func (l *Logger) Debug(msg string, fields ...zap.Field) { l.z.Debug(msg, fields...) }

// Info logs routine operational events (login succeeded, session
// issued, address derived) identified only by non-secret fields.
func (l *Logger) Info(msg string, fields ...zap.Field) { l.z.Info(msg, fields...) }

// Warn logs recoverable anomalies (rate limit engaged, retrying RNG).
func (l *Logger) Warn(msg string, fields ...zap.Field) { l.z.Warn(msg, fields...) }

// Error logs internal failures (RngFailure, StorageFailure, AeadFailure)
// per the spec's contract that these, unlike authentication failures,
// are logged at error level.
func (l *Logger) Error(msg string, fields ...zap.Field) { l.z.Error(msg, fields...) }

// String, Int and Err re-export the zap field constructors so callers
// need only import this package.
func String(key, val string) zap.Field { return zap.String(key, val) }
func Int(key string, val int) zap.Field { return zap.Int(key, val) }
func Err(err error) zap.Field { return zap.Error(err) }
