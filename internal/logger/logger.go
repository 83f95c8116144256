package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the engine-wide logger. It is a no-op logger until Init is called
// so packages can log from tests without setting anything up.
var Log = zap.NewNop()

// Init builds the production logger at info level.
func Init() {
	InitWithLevel(false)
}

// InitWithLevel builds the engine logger. Debug switches to the development
// encoder and enables debug level output.
func InitWithLevel(debug bool) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	l, err := cfg.Build()
	if err != nil {
		// Keep whatever logger was there before, logging is never fatal
		return
	}
	Log = l
}

// Sync flushes buffered entries. Call it before the process exits.
func Sync() {
	_ = Log.Sync()
}
