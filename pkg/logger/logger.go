package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide application logger. It is a no-op until Init runs,
// so packages and tests can log safely without setup.
var Log = zap.NewNop().Sugar()

// Init builds the application logger. Production emits JSON, anything else
// uses the human readable console encoder.
func Init(environment string) error {
	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return err
	}
	Log = l.Sugar().With("service", "ninetytozero-api")
	return nil
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Log.Sync()
}
