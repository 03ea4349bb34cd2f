package tui

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/ypms/internal/core/ports"
	"go.trai.ch/ypms/internal/ui/output"
)

// Sink implements ports.UISink on top of a running Bubble Tea program.
type Sink struct {
	program *tea.Program
	done    chan struct{}
	once    sync.Once
	final   *Model
	err     error
}

// NewSink starts a program rendering to w. A nil w means stderr.
// The program reads no input and leaves signals to the process, so Ctrl+C cancels the command.
func NewSink(w io.Writer, opts ...tea.ProgramOption) *Sink {
	if w == nil {
		w = os.Stderr
	}
	lipgloss.SetColorProfile(output.New(w).Profile)

	model := NewModel()
	opts = append([]tea.ProgramOption{
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	}, opts...)
	s := &Sink{
		program: tea.NewProgram(model, opts...),
		done:    make(chan struct{}),
		final:   model,
	}
	go func() {
		defer close(s.done)
		m, err := s.program.Run()
		if fm, ok := m.(*Model); ok {
			s.final = fm
		}
		s.err = err
	}()
	return s
}

// SetHeader replaces the header line.
func (s *Sink) SetHeader(text string, st ports.Style) {
	s.program.Send(msgHeader{text: text, style: st})
}

// SetStep sets a step line.
func (s *Sink) SetStep(index int, text string, st ports.Style) {
	s.program.Send(msgStep{index: index, text: text, style: st})
}

// ClearStepsKeepHeader drops the step lines and the output pane.
func (s *Sink) ClearStepsKeepHeader() {
	s.program.Send(msgClearSteps{})
}

// LogWriter returns a writer feeding the output pane.
func (s *Sink) LogWriter() io.Writer {
	return logWriter{program: s.program}
}

// Stop quits the program and waits for the final frame to be drawn.
func (s *Sink) Stop() {
	s.once.Do(func() {
		s.program.Quit()
		<-s.done
	})
}

// Model returns the model as of the last update. It is only stable after Stop.
func (s *Sink) Model() *Model {
	return s.final
}

// Err returns the error the program exited with. It is only stable after Stop.
func (s *Sink) Err() error {
	return s.err
}

type logWriter struct {
	program *tea.Program
}

func (w logWriter) Write(p []byte) (int, error) {
	data := make([]byte, len(p))
	copy(data, p)
	w.program.Send(msgLog{data: data})
	return len(p), nil
}
