// Package style provides the shared colors and icons of the ypms terminal output.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/ypms/internal/core/ports"
)

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
	Arrow   = "→"
)

// Progress returns the icon and color used for a progress line of the given style.
func Progress(s ports.Style) (icon string, color lipgloss.Color) {
	switch s {
	case ports.StyleActive:
		return Dot, Iris
	case ports.StyleSuccess:
		return Check, Green
	case ports.StyleWarning:
		return Warning, Yellow
	case ports.StyleError:
		return Cross, Red
	default:
		return Circle, Slate
	}
}
