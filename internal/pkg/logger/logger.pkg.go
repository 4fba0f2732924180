package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "transfer-storefront"

var (
	Info    *log.Logger = log.New(os.Stdout, "INFO: ", log.LstdFlags)
	Warning *log.Logger = log.New(os.Stdout, "WARNING: ", log.LstdFlags)
	Error   *log.Logger = log.New(os.Stderr, "ERROR: ", log.LstdFlags)
	Debug   *log.Logger = log.New(os.Stdout, "DEBUG: ", log.LstdFlags)
	HTTP    *log.Logger = log.New(os.Stdout, "HTTP: ", log.LstdFlags)

	base = zap.NewNop()
)

// Setup replaces the package loggers with zap-backed ones. Calling it again
// rebuilds the loggers, which tests rely on.
func Setup() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "msg"
	config.EncoderConfig.LevelKey = "level"
	config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)

	l, err := config.Build()
	if err != nil {
		Error.Println("failed to build zap logger, keeping stdlib loggers:", err)
		return
	}
	base = l.With(zap.String("service", serviceName))

	Info = mustStdLog(base.Named("app"), zapcore.InfoLevel)
	Warning = mustStdLog(base.Named("app"), zapcore.WarnLevel)
	Error = mustStdLog(base.Named("app"), zapcore.ErrorLevel)
	Debug = mustStdLog(base.Named("app"), zapcore.DebugLevel)
	HTTP = mustStdLog(base.Named("http"), zapcore.InfoLevel)
}

func mustStdLog(l *zap.Logger, level zapcore.Level) *log.Logger {
	std, err := zap.NewStdLogAt(l, level)
	if err != nil {
		return zap.NewStdLog(l)
	}
	return std
}

// Z returns the structured logger for call sites that log fields.
func Z() *zap.Logger {
	return base
}

// Sync flushes buffered entries.
func Sync() error {
	return base.Sync()
}
