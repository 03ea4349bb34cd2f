package enginetest

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"go.trai.ch/ypms/internal/core/ports"
)

// Sink records every call made on a ports.UISink.
type Sink struct {
	mu      sync.Mutex
	events  []string
	logs    bytes.Buffer
	stopped int
}

// NewSink creates an empty recording sink.
func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) record(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, fmt.Sprintf(format, args...))
}

// SetHeader implements ports.UISink.
func (s *Sink) SetHeader(text string, style ports.Style) {
	s.record("header %d %s", style, text)
}

// SetStep implements ports.UISink.
func (s *Sink) SetStep(index int, text string, style ports.Style) {
	s.record("step %d %d %s", index, style, text)
}

// ClearStepsKeepHeader implements ports.UISink.
func (s *Sink) ClearStepsKeepHeader() {
	s.record("clear")
}

// LogWriter implements ports.UISink.
func (s *Sink) LogWriter() io.Writer {
	return writerFunc(func(p []byte) (int, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.logs.Write(p)
	})
}

// Stop implements ports.UISink.
func (s *Sink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped++
}

// Events returns the recorded calls.
func (s *Sink) Events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...)
}

// Logs returns what was written to LogWriter.
func (s *Sink) Logs() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logs.String()
}

// Stopped returns how many times Stop was called.
func (s *Sink) Stopped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
