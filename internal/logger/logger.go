// logger/logger.go
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"sales-crm/internal/config"
)

// Logger defines the interface for our custom logger.
// Messages are printf-style; implementations decide the encoding.
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	Fatal(format string, v ...interface{}) // Calls os.Exit(1) after logging
	SetOutput(w io.Writer)
	SetPrefix(prefix string)
}

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

// String returns the string representation of a LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a configured level name; unknown names mean info.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	case "fatal":
		return LogLevelFatal
	default:
		return LogLevelInfo
	}
}

// levelFatal sits above slog's error level so handlers keep it distinct.
const levelFatal = slog.LevelError + 4

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	case LogLevelFatal:
		return levelFatal
	}
	if l > LogLevelFatal {
		return levelFatal + 4
	}
	return slog.LevelInfo
}

// SlogLogger writes JSON records through log/slog.
type SlogLogger struct {
	mu     sync.Mutex
	level  *slog.LevelVar
	prefix string
	out    io.Writer
	slog   *slog.Logger
	exit   func(int)
}

func NewSlogLogger(output io.Writer, minLevel LogLevel) *SlogLogger {
	lv := new(slog.LevelVar)
	lv.Set(minLevel.slogLevel())
	sl := &SlogLogger{level: lv, exit: os.Exit}
	sl.setOutput(output)
	return sl
}

// New builds the process logger from configuration: stdout and/or a rotating file.
func New(cfg config.LogConfig) *SlogLogger {
	var writers []io.Writer
	if cfg.Console {
		writers = append(writers, os.Stdout)
	}
	if cfg.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			LocalTime:  true,
		})
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}
	l := NewSlogLogger(io.MultiWriter(writers...), ParseLevel(cfg.Level))
	l.Info("logger initialized level=%s file=%q", cfg.Level, cfg.File)
	return l
}

// NewNop discards everything. Used by tests.
func NewNop() *SlogLogger {
	return NewSlogLogger(io.Discard, LogLevelFatal+1)
}

func (sl *SlogLogger) setOutput(w io.Writer) {
	sl.out = w
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: sl.level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == levelFatal {
					return slog.String(slog.LevelKey, "FATAL")
				}
			}
			return a
		},
	})
	logger := slog.New(h)
	if sl.prefix != "" {
		logger = logger.With("component", sl.prefix)
	}
	sl.slog = logger
}

func (sl *SlogLogger) logf(level LogLevel, format string, v ...interface{}) {
	sl.mu.Lock()
	l := sl.slog
	sl.mu.Unlock()

	lvl := level.slogLevel()
	if !l.Enabled(context.Background(), lvl) {
		if level == LogLevelFatal {
			sl.exit(1)
		}
		return
	}
	l.Log(context.Background(), lvl, fmt.Sprintf(format, v...))
	if level == LogLevelFatal {
		sl.exit(1) // Exit the application on Fatal errors
	}
}

// Debug logs a debug message.
func (sl *SlogLogger) Debug(format string, v ...interface{}) {
	sl.logf(LogLevelDebug, format, v...)
}

// Info logs an info message.
func (sl *SlogLogger) Info(format string, v ...interface{}) {
	sl.logf(LogLevelInfo, format, v...)
}

// Warn logs a warning message.
func (sl *SlogLogger) Warn(format string, v ...interface{}) {
	sl.logf(LogLevelWarn, format, v...)
}

// Error logs an error message.
func (sl *SlogLogger) Error(format string, v ...interface{}) {
	sl.logf(LogLevelError, format, v...)
}

// Fatal logs a fatal message and exits the application.
func (sl *SlogLogger) Fatal(format string, v ...interface{}) {
	sl.logf(LogLevelFatal, format, v...)
}

// SetOutput sets the output destination for the logger.
func (sl *SlogLogger) SetOutput(w io.Writer) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.setOutput(w)
}

// SetPrefix tags every record with a component attribute.
func (sl *SlogLogger) SetPrefix(prefix string) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.prefix = prefix
	sl.setOutput(sl.out)
}

// SetLevel changes the minimum level at runtime.
func (sl *SlogLogger) SetLevel(level LogLevel) {
	sl.level.Set(level.slogLevel())
}

var _ Logger = (*SlogLogger)(nil)
