package fastlog

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// A logging library must not log its own failures through itself -
// doing so could recurse into the very pipeline that is misbehaving.
// diag is the secondary, synchronous sink for the library's own
// worker-side errors (bad appender writes, exhausted packer retries):
// all are best-effort logged to stderr and then swallowed, per the
// error-handling policy. Retention removal errors are swallowed
// without going through it.
var (
	diagOnce sync.Once
	diag     *zap.Logger
	diagOut  zapcore.WriteSyncer = zapcore.AddSync(os.Stderr)
)

func diagLogger() *zap.Logger {
	diagOnce.Do(func() {
		diag = newDiagLogger(diagOut)
	})
	return diag
}

func newDiagLogger(w zapcore.WriteSyncer) *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), w, zapcore.WarnLevel)
	return zap.New(core).Named("fastlog")
}
