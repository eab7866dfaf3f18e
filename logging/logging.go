// Package logging builds the console logger used by the mlnotes CLI.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps debug, info, warn or error to a zap level. Empty means info.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zap.DebugLevel, nil
	case "", "info":
		return zap.InfoLevel, nil
	case "warn", "warning":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	}
	return zap.InfoLevel, errors.Errorf("logging: unknown level %q", level)
}

// New returns a sugared logger writing to stderr.
func New(level string) (*zap.SugaredLogger, error) {
	return NewWriter(os.Stderr, level)
}

// NewWriter returns a sugared logger writing console lines such as
// "2024-05-01 10:00:00.000 [INFO] msg" to w.
func NewWriter(w io.Writer, level string) (*zap.SugaredLogger, error) {
	zapLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	levelEncoder := func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + level.CapitalString() + "]")
	}
	timeEncoder := func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
	}
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    levelEncoder,
		EncodeTime:     timeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), zapLevel)
	return zap.New(core).Named("mlnotes").Sugar(), nil
}

// Nop discards everything.
func Nop() *zap.SugaredLogger { return zap.NewNop().Sugar() }
