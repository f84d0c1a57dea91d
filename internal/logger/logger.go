package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileName is the log file created inside the log directory.
const FileName = "studentsuite.jsonl"

// Level orders log entries by severity.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
	Off
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	}
	return "off"
}

func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// ParseLevel accepts debug, info, warn, error and off in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug, nil
	case "info", "":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	case "off", "none":
		return Off, nil
	}
	return Off, fmt.Errorf("logger: unknown level %q", s)
}

// LogEntry - single event record (fields ordered by priority)
type LogEntry struct {
	Event     string         `json:"event"`
	Level     Level          `json:"level"`
	Fields    map[string]any `json:"fields,omitempty"`
	Timestamp string         `json:"timestamp"`
}

// Logger - appends JSON lines to a file in the log directory.
// A nil *Logger discards everything.
type Logger struct {
	logPath string
	level   Level
	mu      sync.Mutex
	now     func() time.Time
}

// New - creates Logger writing to logDir/studentsuite.jsonl
func New(logDir string, level Level) (*Logger, error) {
	if logDir == "" {
		return nil, fmt.Errorf("logger: empty log directory")
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &Logger{
		logPath: filepath.Join(logDir, FileName),
		level:   level,
		now:     time.Now,
	}, nil
}

// Discard returns a logger that writes nothing.
func Discard() *Logger { return nil }

// Path is the log file location, empty for a discarding logger.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.logPath
}

// Enabled reports whether entries at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return l != nil && l.level != Off && level >= l.level && level != Off
}

// LogEvent - appends entry to log
func (l *Logger) LogEvent(level Level, event string, fields map[string]any) error {
	if !l.Enabled(level) {
		return nil
	}

	entry := LogEntry{
		Timestamp: l.now().UTC().Format(time.RFC3339),
		Level:     level,
		Event:     event,
		Fields:    fields,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write log entry: %w", err)
	}

	return nil
}
