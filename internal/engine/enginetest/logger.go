package enginetest

import (
	"fmt"
	"strings"
	"sync"
)

// Logger is a ports.Logger that keeps warnings and info lines for assertions.
type Logger struct {
	mu    sync.Mutex
	lines []string
}

// NewLogger creates an empty Logger.
func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) add(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
}

// Debug discards the message.
func (l *Logger) Debug(string, ...any) {}

// Info records msg.
func (l *Logger) Info(msg string) { l.add("INFO " + msg) }

// Warn records msg.
func (l *Logger) Warn(msg string) { l.add("WARN " + msg) }

// Error records err.
func (l *Logger) Error(err error) { l.add(fmt.Sprintf("ERROR %v", err)) }

// Lines returns the recorded lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// String joins the recorded lines.
func (l *Logger) String() string {
	return strings.Join(l.Lines(), "\n")
}
