package lines

import (
	"log/slog"
	"os"
)

// linesLogLevel controls the package log level.
// Default is LevelInfo, which suppresses Debug messages.
var linesLogLevel = new(slog.LevelVar)

// SetVerbose enables or disables debug logging of GPU resource lifetimes.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		linesLogLevel.Set(slog.LevelDebug)
	} else {
		linesLogLevel.Set(slog.LevelInfo)
	}
}

// Verbose reports whether debug logging is enabled.
func Verbose() bool {
	return linesLogLevel.Level() <= slog.LevelDebug
}

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: linesLogLevel}))

// Logger returns the package logger so backends and drivers share its level.
func Logger() *slog.Logger {
	return logger
}
