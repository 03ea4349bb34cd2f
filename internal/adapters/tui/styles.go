package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/ypms/internal/core/ports"
	"go.trai.ch/ypms/internal/ui/style"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)

	logStyle = lipgloss.NewStyle().Foreground(style.Slate)
)

func lineStyle(s ports.Style) (string, lipgloss.Style) {
	icon, color := style.Progress(s)
	st := lipgloss.NewStyle().Foreground(color)
	if s == ports.StyleActive {
		st = st.Bold(true)
	}
	return icon, st
}
