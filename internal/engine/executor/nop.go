package executor

import (
	"io"

	"go.trai.ch/ypms/internal/core/ports"
)

type nopSink struct{}

func (nopSink) SetHeader(string, ports.Style)    {}
func (nopSink) SetStep(int, string, ports.Style) {}
func (nopSink) ClearStepsKeepHeader()            {}
func (nopSink) LogWriter() io.Writer             { return io.Discard }
func (nopSink) Stop()                            {}
