// Package logger is the process-wide leveled logger. The terminal belongs to
// the TUI, so nothing is written until a log file or writer is attached.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	// LevelOff silences the logger.
	LevelOff
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
	LevelOff:   "OFF",
}

func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel accepts debug, info, warn, error or off in any case. Empty
// means info.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "off", "none":
		return LevelOff, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", s)
	}
}

// sink is the output shared by a logger and all of its children.
type sink struct {
	mu    sync.Mutex
	level Level
	w     io.Writer
	file  *os.File
	now   func() time.Time
}

// Logger writes leveled lines tagged with a component path such as
// "wizard/issuance".
type Logger struct {
	component string
	sink      *sink
}

// Default backs the package-level helpers.
var Default = New()

// New creates a logger configured from TOKENFORGE_LOG_LEVEL and
// TOKENFORGE_LOG_FILE. Bad values fall back to info with no output.
func New() *Logger {
	l := &Logger{sink: &sink{level: LevelInfo, w: io.Discard, now: time.Now}}
	if err := l.Configure(os.Getenv("TOKENFORGE_LOG_LEVEL"), os.Getenv("TOKENFORGE_LOG_FILE")); err != nil {
		l.SetLevel(LevelInfo)
	}
	return l
}

// Configure sets the level and, when path is not empty, appends to that
// file from now on.
func (l *Logger) Configure(level, path string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	s.level = lvl
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	if s.file != nil {
		_ = s.file.Close()
	}
	s.file = f
	s.w = f
	return nil
}

// With returns a child tagged with component. Children share the parent's
// level and output.
func (l *Logger) With(component string) *Logger {
	if l.component != "" {
		component = l.component + "/" + component
	}
	return &Logger{component: component, sink: l.sink}
}

// Close closes the log file, if any. Later lines are discarded.
func (l *Logger) Close() error {
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.w = io.Discard
	return err
}

func (l *Logger) SetLevel(level Level) {
	l.sink.mu.Lock()
	l.sink.level = level
	l.sink.mu.Unlock()
}

// Enabled reports whether lines at level are written.
func (l *Logger) Enabled(level Level) bool {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return level >= l.sink.level && l.sink.level != LevelOff
}

func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	l.sink.w = w
	l.sink.mu.Unlock()
}

func (l *Logger) Debug(format string, v ...any) { l.log(LevelDebug, format, v...) }
func (l *Logger) Info(format string, v ...any)  { l.log(LevelInfo, format, v...) }
func (l *Logger) Warn(format string, v ...any)  { l.log(LevelWarn, format, v...) }
func (l *Logger) Error(format string, v ...any) { l.log(LevelError, format, v...) }

func (l *Logger) log(level Level, format string, v ...any) {
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	if level < s.level || s.level == LevelOff {
		return
	}

	var b strings.Builder
	b.WriteString(s.now().Format("2006-01-02 15:04:05.000"))
	fmt.Fprintf(&b, " %-5s ", level)
	if l.component != "" {
		b.WriteString(l.component)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, format, v...)
	b.WriteByte('\n')
	_, _ = io.WriteString(s.w, b.String())
}

func Debug(format string, v ...any) { Default.Debug(format, v...) }
func Info(format string, v ...any)  { Default.Info(format, v...) }
func Warn(format string, v ...any)  { Default.Warn(format, v...) }
func Error(format string, v ...any) { Default.Error(format, v...) }

// Configure configures the default logger.
func Configure(level, path string) error {
	return Default.Configure(level, path)
}

// Close closes the default logger.
func Close() error {
	return Default.Close()
}
