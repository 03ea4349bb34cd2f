package ports

import "io"

// Style is a presentation hint for sink lines.
type Style int

const (
	// StyleNormal is plain progress text.
	StyleNormal Style = iota
	// StyleActive marks the line currently in progress.
	StyleActive
	// StyleSuccess marks a completed line.
	StyleSuccess
	// StyleWarning marks a warning line.
	StyleWarning
	// StyleError marks a failed line.
	StyleError
)

// UISink receives progress from guide execution.
// It is purely observational: a no-op sink never changes planning or execution outcomes.
//
//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks
type UISink interface {
	// SetHeader replaces the header line.
	SetHeader(text string, style Style)

	// SetStep sets the text of the numbered step line.
	SetStep(index int, text string, style Style)

	// ClearStepsKeepHeader drops the step lines but keeps the header.
	ClearStepsKeepHeader()

	// LogWriter returns the writer that receives raw output of shell steps.
	LogWriter() io.Writer

	// Stop flushes the sink. No further calls are made after Stop.
	Stop()
}

// SinkFactory creates a sink for one guide run.
type SinkFactory func() UISink
