package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

// slog has no trace or fatal levels, so they sit just outside debug and error
const (
	slogTrace = slog.LevelDebug - 4
	slogFatal = slog.LevelError + 4
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// ParseLevel translates a (case-insensitive) level name to a log level enum.
// Unknown names map to InfoLevel.
func ParseLevel(name string) int {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return TraceLevel
	case "DEBUG":
		return DebugLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	case "FATAL":
		return FatalLevel
	default:
		return InfoLevel
	}
}

// ToSlog maps a log level enum onto an slog.Level
func ToSlog(level int) slog.Level {
	switch level {
	case TraceLevel:
		return slogTrace
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	case FatalLevel:
		return slogFatal
	default:
		return slog.LevelInfo
	}
}

// New builds a text logger writing to w at the given level
func New(w io.Writer, level int) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ToSlog(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key != slog.LevelKey {
				return a
			}
			if lvl, ok := a.Value.Any().(slog.Level); ok {
				switch lvl {
				case slogTrace:
					a.Value = slog.StringValue(LogLevelToString(TraceLevel))
				case slogFatal:
					a.Value = slog.StringValue(LogLevelToString(FatalLevel))
				}
			}
			return a
		},
	})
	return slog.New(h)
}

// NewFromName builds a stderr logger from a level name such as "debug"
func NewFromName(name string) *slog.Logger {
	return New(os.Stderr, ParseLevel(name))
}

// Discard returns a logger which drops every record
func Discard() *slog.Logger {
	return New(io.Discard, FatalLevel+1)
}
