// Package logger provides structured JSON logging for the persistence core.
//
// Log entries carry a level, a message, and key-value fields. Repositories
// attach entity fields (song_id, user_id) so degraded bulk loads can be
// traced back to the row that failed.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"
)

// Level represents the severity of a log entry.
type Level int

const (
	// DebugLevel for debug messages.
	DebugLevel Level = iota
	// InfoLevel for informational messages.
	InfoLevel
	// WarnLevel for warning messages.
	WarnLevel
	// ErrorLevel for error messages.
	ErrorLevel
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// Logger is the main logger interface.
type Logger interface {
	SetLevel(level Level)

	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	WithFields(fields ...Field) Logger
}

// Entry represents a single log entry.
type Entry struct {
	Time    time.Time              `json:"time"`
	Level   string                 `json:"level"`
	Message string                 `json:"message"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
	Caller  string                 `json:"caller,omitempty"`
}

// Config holds logger configuration.
type Config struct {
	Level  Level
	Output io.Writer
	Caller bool // Include caller information
}

// DefaultConfig returns default logger configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:  InfoLevel,
		Output: os.Stdout,
		Caller: true,
	}
}

type jsonLogger struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
	fields []Field
	caller bool
}

// New creates a new logger with the given configuration.
func New(cfg *Config) Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	return &jsonLogger{
		level:  cfg.Level,
		output: cfg.Output,
		caller: cfg.Caller,
	}
}

// Default returns a logger with default configuration.
func Default() Logger {
	return New(DefaultConfig())
}

// SetLevel sets the minimum log level.
func (l *jsonLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *jsonLogger) getLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Debug logs a debug message.
func (l *jsonLogger) Debug(msg string, fields ...Field) {
	l.log(DebugLevel, msg, fields...)
}

// Info logs an info message.
func (l *jsonLogger) Info(msg string, fields ...Field) {
	l.log(InfoLevel, msg, fields...)
}

// Warn logs a warning message.
func (l *jsonLogger) Warn(msg string, fields ...Field) {
	l.log(WarnLevel, msg, fields...)
}

// Error logs an error message.
func (l *jsonLogger) Error(msg string, fields ...Field) {
	l.log(ErrorLevel, msg, fields...)
}

// WithFields returns a logger that adds fields to every entry.
func (l *jsonLogger) WithFields(fields ...Field) Logger {
	child := &jsonLogger{
		level:  l.getLevel(),
		output: l.output,
		fields: make([]Field, len(l.fields)+len(fields)),
		caller: l.caller,
	}
	copy(child.fields, l.fields)
	copy(child.fields[len(l.fields):], fields)
	return child
}

func (l *jsonLogger) log(level Level, msg string, fields ...Field) {
	if level < l.getLevel() {
		return
	}

	entry := Entry{
		Time:    time.Now(),
		Level:   level.String(),
		Message: msg,
	}

	if len(l.fields)+len(fields) > 0 {
		entry.Fields = make(map[string]interface{}, len(l.fields)+len(fields))
		for _, f := range l.fields {
			entry.Fields[f.Key] = f.Value
		}
		for _, f := range fields {
			entry.Fields[f.Key] = f.Value
		}
	}

	if l.caller {
		entry.Caller = getCaller(3)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal log entry: %v\n", err)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.Write(data)
	l.output.Write([]byte("\n"))
}

// getCaller returns the file:line of the logging call site.
func getCaller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}

	for i := len(file) - 1; i > 0; i-- {
		if file[i] == '/' {
			file = file[i+1:]
			break
		}
	}

	return fmt.Sprintf("%s:%d", file, line)
}

// Helper functions for creating fields

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Int64 creates an int64 field.
func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

// Float64 creates a float64 field.
func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

// Duration creates a duration field.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

// Error creates an error field.
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Any creates a field with any value.
func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Nop returns a logger that discards everything. Useful in tests.
func Nop() Logger {
	return New(&Config{Level: ErrorLevel + 1, Output: io.Discard})
}
