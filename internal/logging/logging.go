// Package logging builds the zap loggers used by the eav command and the
// catalog backend.
package logging

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

type options struct {
	out io.Writer
}

// Option configures New.
type Option func(*options)

// WithOutput directs log output to w instead of stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// New returns a logger writing in the given format ("console" or "json") at
// the given level ("debug", "info", "warn", "error"). Empty values select
// console and info.
func New(format, level string, opts ...Option) (*zap.Logger, error) {
	o := options{out: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, errors.Wrapf(err, "log level %q", level)
		}
		lvl = parsed
	}

	var encoder zapcore.Encoder
	switch format {
	case FormatJSON:
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	case FormatConsole, "":
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		encoder = zapcore.NewConsoleEncoder(cfg)
	default:
		return nil, errors.Newf("unknown log format %q", format)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(o.out), zap.NewAtomicLevelAt(lvl))
	return zap.New(core), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
