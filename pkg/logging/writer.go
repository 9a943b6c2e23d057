package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Format represents the log output format
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var levelColors = map[Level]*color.Color{
	DebugLevel: color.New(color.FgHiBlack),
	InfoLevel:  color.New(color.FgCyan),
	WarnLevel:  color.New(color.FgYellow),
	ErrorLevel: color.New(color.FgRed),
}

// WriterLogger writes leveled text or JSON lines to an io.Writer
type WriterLogger struct {
	mu      *sync.Mutex
	w       io.Writer
	closer  io.Closer
	format  Format
	level   Level
	colored bool
	fields  Fields
}

// NewConsole creates a text logger on stderr, colored unless disabled
func NewConsole(level Level, noColor bool) *WriterLogger {
	return &WriterLogger{
		mu:      &sync.Mutex{},
		w:       os.Stderr,
		format:  FormatText,
		level:   level,
		colored: !noColor,
	}
}

// NewFile creates a logger appending to the given file path
func NewFile(path string, format Format, level Level) (*WriterLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &WriterLogger{
		mu:     &sync.Mutex{},
		w:      f,
		closer: f,
		format: format,
		level:  level,
	}, nil
}

// NewWriter creates a logger on an arbitrary writer (used by tests)
func NewWriter(w io.Writer, format Format, level Level) *WriterLogger {
	return &WriterLogger{mu: &sync.Mutex{}, w: w, format: format, level: level}
}

// Debug logs a debug message
func (l *WriterLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.log(DebugLevel, msg, nil, fields)
}

// Info logs an info message
func (l *WriterLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.log(InfoLevel, msg, nil, fields)
}

// Warn logs a warning message
func (l *WriterLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.log(WarnLevel, msg, nil, fields)
}

// Error logs an error message
func (l *WriterLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.log(ErrorLevel, msg, err, fields)
}

// WithFields returns a logger with additional fields. The underlying writer
// and mutex are shared.
func (l *WriterLogger) WithFields(fields Fields) Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	clone := *l
	clone.fields = merged
	return &clone
}

// Close flushes and closes the logger
func (l *WriterLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func (l *WriterLogger) log(level Level, msg string, err error, fields Fields) {
	if level < l.level {
		return
	}

	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	var line string
	if l.format == FormatJSON {
		line = l.formatJSON(level, msg, err, merged)
	} else {
		line = l.formatText(level, msg, err, merged)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.w, line)
}

func (l *WriterLogger) formatJSON(level Level, msg string, err error, fields Fields) string {
	entry := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"level":     levelString(level),
		"message":   msg,
	}
	if err != nil {
		entry["error"] = err.Error()
	}
	for k, v := range fields {
		entry[k] = v
	}

	data, jsonErr := json.Marshal(entry)
	if jsonErr != nil {
		return ""
	}
	return string(data) + "\n"
}

func (l *WriterLogger) formatText(level Level, msg string, err error, fields Fields) string {
	label := levelString(level)
	if l.colored {
		if c, ok := levelColors[level]; ok {
			label = c.Sprint(label)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", time.Now().UTC().Format("2006-01-02T15:04:05Z"), label, msg)
	if err != nil {
		fmt.Fprintf(&b, " error=%q", err.Error())
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	b.WriteByte('\n')

	return b.String()
}
