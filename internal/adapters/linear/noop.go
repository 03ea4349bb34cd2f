package linear

import (
	"io"

	"go.trai.ch/ypms/internal/core/ports"
)

// Noop is a UISink that discards everything.
type Noop struct{}

// NewNoop returns a sink that renders nothing.
func NewNoop() Noop {
	return Noop{}
}

// SetHeader does nothing.
func (Noop) SetHeader(string, ports.Style) {}

// SetStep does nothing.
func (Noop) SetStep(int, string, ports.Style) {}

// ClearStepsKeepHeader does nothing.
func (Noop) ClearStepsKeepHeader() {}

// LogWriter returns io.Discard.
func (Noop) LogWriter() io.Writer { return io.Discard }

// Stop does nothing.
func (Noop) Stop() {}
