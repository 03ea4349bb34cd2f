// Package linear provides line-oriented progress sinks for non-interactive output.
package linear

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/ypms/internal/core/ports"
	"go.trai.ch/ypms/internal/ui/output"
	"go.trai.ch/ypms/internal/ui/style"
)

// Sink implements ports.UISink by printing one line per state change.
// Progress updates of a step that is still active are folded into its first line.
type Sink struct {
	progress io.Writer
	logs     io.Writer
	output   *termenv.Output

	mu      sync.Mutex
	header  string
	printed map[int]printedStep
}

type printedStep struct {
	text  string
	style ports.Style
}

// NewSink creates a sink that writes progress to progress and shell output to logs.
// Nil writers default to stderr and stdout.
func NewSink(progress, logs io.Writer) *Sink {
	if progress == nil {
		progress = os.Stderr
	}
	if logs == nil {
		logs = os.Stdout
	}
	return &Sink{
		progress: progress,
		logs:     logs,
		output:   output.NewWithProfile(progress, output.ColorProfileANSI),
		printed:  make(map[int]printedStep),
	}
}

// SetHeader prints the header when it changes.
func (s *Sink) SetHeader(text string, st ports.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if text == s.header {
		return
	}
	s.header = text
	_, _ = fmt.Fprintln(s.progress, s.render(text, st, ""))
}

// SetStep prints the step line when its style changes.
func (s *Sink) SetStep(index int, text string, st ports.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, seen := s.printed[index]
	if seen && prev.style == st && (st == ports.StyleActive || prev.text == text) {
		return
	}
	s.printed[index] = printedStep{text: text, style: st}
	_, _ = fmt.Fprintln(s.progress, s.render(text, st, "  "))
}

// ClearStepsKeepHeader forgets the printed steps so the next guide starts fresh.
func (s *Sink) ClearStepsKeepHeader() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.printed = make(map[int]printedStep)
}

// LogWriter returns the writer for raw shell output.
func (s *Sink) LogWriter() io.Writer {
	return s.logs
}

// Stop is a no-op; every line is written synchronously.
func (s *Sink) Stop() {}

func (s *Sink) render(text string, st ports.Style, indent string) string {
	icon, color := style.Progress(st)
	c := s.output.Color(string(color))
	styled := s.output.String(icon).Foreground(c).String()
	if st == ports.StyleError {
		text = s.output.String(text).Foreground(c).String()
	}
	return indent + styled + " " + text
}
