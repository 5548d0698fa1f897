package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps Uber's Zap logger behind the house logging interface.
// The underlying zap.Logger stays exposed for the rare case that needs
// Zap-specific functionality; regular logging goes through the wrapper
// methods.
type Logger struct {
	Zap *zap.Logger
}

// NewLoggerClient builds a configured logger: JSON encoding, ISO8601
// timestamps, capitalized levels, caller information, and pid/service
// initial fields, writing to stderr.
//
// Example:
//
//	log := logger.NewLoggerClient(logger.DefaultConfig())
//	log.Info("client ready", nil, nil)
func NewLoggerClient(cfg Config) *Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	logLevel := zap.InfoLevel
	switch cfg.Level {
	case Debug:
		logLevel = zap.DebugLevel
	case Info:
		logLevel = zap.InfoLevel
	case Warning:
		logLevel = zap.WarnLevel
	case Error:
		logLevel = zap.ErrorLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(logLevel),
		Encoding:         "json",
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}

	zl, err := config.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		log.Fatal(err)
	}

	return &Logger{Zap: zl}
}
