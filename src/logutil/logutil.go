package logutil

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultLogFile = "debug.log"
	maxSizeMB      = 10
	maxArchives    = 3
	maxLogLength   = 100
)

// Options controls where log records go.
type Options struct {
	EnableFileLogging bool
	FilePath          string
	Level             string
	// Console mirrors info and above to stderr.
	Console bool
}

// Setup builds the process logger. File output rotates at 10MB keeping 3
// archives. The returned logger also replaces zap's globals so package-level
// helpers using zap.S() share the same sinks.
func Setup(opts Options) (*zap.SugaredLogger, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil || opts.Level == "" {
		level = zapcore.DebugLevel
	}

	var cores []zapcore.Core
	if opts.EnableFileLogging {
		path := opts.FilePath
		if path == "" {
			path = DefaultLogFile
		}
		fileEnc := zap.NewProductionEncoderConfig()
		fileEnc.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEnc),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   path,
				MaxSize:    maxSizeMB,
				MaxBackups: maxArchives,
			}),
			level,
		))
	}
	if opts.Console {
		consoleEnc := zap.NewDevelopmentEncoderConfig()
		consoleEnc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEnc),
			zapcore.Lock(os.Stderr),
			zapcore.InfoLevel,
		))
	}
	if len(cores) == 0 {
		logger := zap.NewNop()
		zap.ReplaceGlobals(logger)
		return logger.Sugar(), nil
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	zap.ReplaceGlobals(logger)
	return logger.Sugar(), nil
}

// RedactKey masks an API key, leaving first/last 4 chars: xxxx...yyyy
func RedactKey(k string) string {
	if len(k) <= 8 {
		return "********"
	}
	return fmt.Sprintf("%s...%s", k[:4], k[len(k)-4:])
}

// Sanitize prepares user text for a single log line: long input is
// truncated and control characters cannot forge new records.
func Sanitize(text string) string {
	text = Preview(text, maxLogLength)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r':
			b.WriteString("\\n")
		case r == '\t':
			b.WriteString("\\t")
		case r < 32 || r == 127:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Preview returns the first n runes of s followed by "..." when cut.
func Preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
