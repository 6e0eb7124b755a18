// Package logging configures the zap structured logger shared by the CLI
// and the pipeline coordinator. The teacher module declares go.uber.org/zap
// in go.mod but never constructs a logger from it; every diagnostic goes
// through fmt.Fprintf(os.Stderr, ...) instead. This package is the wiring
// the teacher's go.mod already paid for: one JSON-or-console logger,
// built once at startup and threaded through the coordinator so per-query
// failures (§7) and run start/finish lines carry structured fields instead
// of formatted strings.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nextgenomics/nextplace/internal/errs"
)

// Config selects the logger's verbosity and encoding.
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // console encoding for a terminal instead of JSON
}

// New builds a *zap.Logger from cfg. Pretty selects zap's human-readable
// console encoder (for interactive use); otherwise JSON lines go to stderr
// so the CLI's stdout stays reserved for report output (§6).
func New(cfg Config) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Pretty {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(os.Stderr)), level)
	return zap.New(core), nil
}

// Nop returns a logger that discards everything, for tests that exercise
// code paths taking a *zap.Logger without asserting on its output.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// QueryFields builds the structured fields attached to every log line about
// a single query: its name and current pipeline stage (§4's state machine).
func QueryFields(name string, stage errs.Stage) []zap.Field {
	return []zap.Field{zap.String("query", name), zap.String("stage", string(stage))}
}

// NonFatalFields builds the structured fields for a per-query failure (§7):
// stage, machine-readable kind, and the underlying error.
func NonFatalFields(err *errs.NonFatal) []zap.Field {
	return []zap.Field{
		zap.String("query", err.Query),
		zap.String("stage", string(err.Stage)),
		zap.String("kind", err.Kind),
		zap.Error(err.Err),
	}
}
