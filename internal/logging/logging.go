// internal/logging/logging.go

// Package logging configures the process-wide structured logger.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options selects where log events go. With no Path and no Console the
// logger discards everything.
type Options struct {
	Path    string
	Level   string
	Console io.Writer
}

var (
	mu      sync.Mutex
	logFile *os.File
	logger  = zerolog.Nop()
)

// Init replaces the global logger. JSON lines go to Path, human-readable
// lines to Console.
func Init(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: opts.Console, NoColor: true, TimeFormat: time.RFC3339})
	}
	if opts.Path != "" {
		if dir := filepath.Dir(opts.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, file)
	}

	if len(writers) == 0 {
		logger = zerolog.Nop()
		return nil
	}
	logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(parseLevel(opts.Level)).
		With().
		Timestamp().
		Str("service", "kbqa").
		Logger()
	return nil
}

// Close flushes and detaches the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	logger = zerolog.Nop()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Logger returns a copy of the current logger.
func Logger() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	l := logger
	return &l
}

// LogEvent records an informational message.
func LogEvent(format string, args ...any) {
	Logger().Info().Msg(fmt.Sprintf(format, args...))
}

// Warn records a recoverable failure.
func Warn(err error, msg string) {
	Logger().Warn().Err(err).Msg(msg)
}

// LogRequest records a payload crossing a process boundary at debug level.
func LogRequest(direction, host, model string, payload any) {
	dir, hostValue, modelValue := requestFields(direction, host, model)
	Logger().Debug().
		Str("direction", dir).
		Str("host", hostValue).
		Str("model", modelValue).
		Str("payload", formatPayload(payload)).
		Msg("request")
}

func requestFields(direction, host, model string) (string, string, string) {
	dir := strings.ToUpper(strings.TrimSpace(direction))
	hostValue := strings.TrimSpace(host)
	if hostValue == "" {
		hostValue = "unknown"
	}
	modelValue := strings.TrimSpace(model)
	if modelValue == "" {
		modelValue = "unknown"
	}
	return dir, hostValue, modelValue
}

func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(v) == 0 {
			return "[]"
		}
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

// parseLevel accepts zerolog's level names plus "warning". Empty or unknown
// names fall back to info.
func parseLevel(level string) zerolog.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
