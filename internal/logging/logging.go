// Package logging builds the zap logger for the vecino client. The TUI owns
// stdout, so logs go to a rotating file under the config directory; a
// console core is added only for non-interactive commands.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction.
type Options struct {
	// LogFile is the rotating sink path. Empty means <dir>/logs/vecino.log.
	LogFile string
	// Dir is the config directory used when LogFile is empty.
	Dir string
	// Verbose lowers the level to debug.
	Verbose bool
	// Console adds a stdout core. Must stay false while the TUI is running.
	Console bool
}

// New builds a zap logger per opts.
func New(opts Options) *zap.Logger {
	path := opts.LogFile
	if path == "" {
		path = filepath.Join(opts.Dir, "logs", "vecino.log")
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	level := zap.InfoLevel
	if opts.Verbose {
		level = zap.DebugLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotator), level),
	}
	if opts.Console {
		consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}
