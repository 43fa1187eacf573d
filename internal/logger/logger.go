package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log *zap.SugaredLogger

// Init initializes the global logger. Diagnostics go to stderr so that link
// output on stdout stays pipeable; logPath redirects them to a file instead
// (overwriting it).
func Init(verbose bool, logPath string) {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	enc.EncodeCaller = nil

	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	sink := zapcore.AddSync(os.Stderr)
	if logPath != "" {
		// No color codes in files.
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
		if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644); err == nil {
			sink = zapcore.AddSync(f)
		} else {
			println("failed to create log file: " + err.Error())
		}
	}

	Log = zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(enc), sink, level)).Sugar()
}

// Sync flushes any buffered log entries.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
