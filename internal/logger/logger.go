package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// VerboseChecker interface for checking verbose state
type VerboseChecker interface {
	IsVerbose() bool
}

// Logger writes leveled, component-tagged lines with key=value fields
type Logger struct {
	component      string
	verboseChecker VerboseChecker
	writer         io.Writer
	mu             *sync.Mutex
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// New creates a new logger instance
func New(component string, verboseChecker VerboseChecker) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: verboseChecker,
		writer:         os.Stderr,
		mu:             &sync.Mutex{},
	}
}

// NewWithCallback creates a new logger instance with a callback function
func NewWithCallback(component string, verboseCheck func() bool) *Logger {
	return New(component, &callbackChecker{callback: verboseCheck})
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return New("", nil).WithWriter(io.Discard)
}

// WithComponent creates a logger with a specific component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: l.verboseChecker,
		writer:         l.writer,
		mu:             l.mu,
	}
}

// WithWriter redirects output, mostly for tests
func (l *Logger) WithWriter(w io.Writer) *Logger {
	return &Logger{
		component:      l.component,
		verboseChecker: l.verboseChecker,
		writer:         w,
		mu:             &sync.Mutex{},
	}
}

// callbackChecker implements VerboseChecker with a callback function
type callbackChecker struct {
	callback func() bool
}

func (c *callbackChecker) IsVerbose() bool {
	if c.callback == nil {
		return false
	}
	return c.callback()
}

func (l *Logger) verbose() bool {
	return l.verboseChecker != nil && l.verboseChecker.IsVerbose()
}

// Debug logs debug messages (only when verbose=true)
func (l *Logger) Debug(msg string, fields ...Field) {
	if l.verbose() {
		l.write("DEBUG", msg, fields)
	}
}

// Info logs informational messages (only when verbose=true)
func (l *Logger) Info(msg string, fields ...Field) {
	if l.verbose() {
		l.write("INFO", msg, fields)
	}
}

// Warn logs warning messages (always shown)
func (l *Logger) Warn(msg string, fields ...Field) {
	l.write("WARN", msg, fields)
}

// Error logs error messages (always shown)
func (l *Logger) Error(msg string, fields ...Field) {
	l.write("ERROR", msg, fields)
}

func (l *Logger) write(level, msg string, fields []Field) {
	if l == nil || l.writer == nil {
		return
	}

	component := l.component
	if component == "" {
		component = "main"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s [%s] %s", time.Now().Format("15:04:05.000"), level, component, msg)
	if len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			parts = append(parts, fmt.Sprintf("%s=%v", f.Key, f.Value))
		}
		b.WriteString(" [" + strings.Join(parts, " ") + "]")
	}
	b.WriteString("\n")

	l.mu.Lock()
	defer l.mu.Unlock()
	// Nowhere to report a failed log write.
	_, _ = io.WriteString(l.writer, b.String())
}

// Helper functions for common field types
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func RequestID(id string) Field {
	return Field{Key: "request_id", Value: id}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}
