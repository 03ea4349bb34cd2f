// Package detector selects how progress is rendered for the current environment.
package detector

import (
	"os"

	"go.trai.ch/ypms/internal/adapters/linear"
	"go.trai.ch/ypms/internal/adapters/tui"
	"go.trai.ch/ypms/internal/core/ports"
	"golang.org/x/term"
)

// OutputMode represents the rendering mode for the application.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive renderer.
	ModeTUI
	// ModeLinear forces line-oriented output.
	ModeLinear
	// ModeQuiet renders no progress at all.
	ModeQuiet
)

// DetectEnvironment returns the recommended output mode.
// Interactive rendering needs stderr to be a terminal and no CI marker in the environment.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stderr.Fd())) //nolint:gosec // fd fits in int

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModeLinear
	}
	return ModeTUI
}

// ResolveMode applies the user's --output flag to auto-detection.
// userFlag should be one of: "auto", "tui", "linear", "ci", "quiet", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "tui":
		return ModeTUI
	case "linear", "ci":
		return ModeLinear
	case "quiet":
		return ModeQuiet
	default:
		return autoDetected
	}
}

// NewSink creates the progress sink for mode.
func NewSink(mode OutputMode) ports.UISink {
	switch mode {
	case ModeTUI:
		return tui.NewSink(os.Stderr)
	case ModeQuiet:
		return linear.NewNoop()
	default:
		return linear.NewSink(os.Stderr, os.Stdout)
	}
}

// SinkFactory returns a factory honouring the user's --output flag.
func SinkFactory(userFlag string) ports.SinkFactory {
	return func() ports.UISink {
		return NewSink(ResolveMode(DetectEnvironment(), userFlag))
	}
}
