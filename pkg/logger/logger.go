package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Log   *zap.Logger
	Sugar *zap.SugaredLogger
)

// The globals are never nil: packages (and their tests) may log before
// main has a chance to call Init.
func init() {
	Init(false)
}

// Init initializes the global logger configuration.
// With debug enabled the level drops to Debug, otherwise Info and above.
func Init(debug bool) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	encoder := zapcore.NewJSONEncoder(encoderConfig)
	writer := zapcore.AddSync(os.Stdout)

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(encoder, writer, level)

	Log = zap.New(core, zap.AddCaller())
	Sugar = Log.Sugar()
}
