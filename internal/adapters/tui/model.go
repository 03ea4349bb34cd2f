// Package tui renders guide progress interactively with Bubble Tea.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/ypms/internal/core/ports"
)

const (
	defaultLogHeight = 8
	logPrefix        = "  │ "
)

type (
	msgHeader struct {
		text  string
		style ports.Style
	}
	msgStep struct {
		index int
		text  string
		style ports.Style
	}
	msgClearSteps struct{}
	msgLog        struct{ data []byte }
)

// Line is one rendered progress line.
type Line struct {
	Text  string
	Style ports.Style
}

// Model holds the header, the step lines and the output pane of the running guide.
type Model struct {
	Header Line
	Steps  []Line
	Log    *Vterm
	Width  int
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{Log: NewVterm(defaultLogHeight, logPrefix)}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Log.SetWidth(msg.Width)
		if h := msg.Height / 3; h > 0 {
			m.Log.SetHeight(h)
		}
	case msgHeader:
		m.Header = Line{Text: msg.text, Style: msg.style}
	case msgStep:
		for len(m.Steps) <= msg.index {
			m.Steps = append(m.Steps, Line{})
		}
		m.Steps[msg.index] = Line{Text: msg.text, Style: msg.style}
	case msgClearSteps:
		m.Steps = nil
		m.Log.Reset()
	case msgLog:
		_, _ = m.Log.Write(msg.data)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	if m.Header.Text != "" {
		icon, st := lineStyle(m.Header.Style)
		b.WriteString(st.Render(icon) + " " + headerStyle.Render(m.Header.Text) + "\n")
	}
	for _, step := range m.Steps {
		if step.Text == "" {
			continue
		}
		icon, st := lineStyle(step.Style)
		b.WriteString("  " + st.Render(icon) + " " + step.Text + "\n")
	}
	if m.hasActiveStep() && m.Log.UsedHeight() > 0 {
		b.WriteString(logStyle.Render(m.Log.View()) + "\n")
	}
	return b.String()
}

func (m *Model) hasActiveStep() bool {
	for _, s := range m.Steps {
		if s.Style == ports.StyleActive {
			return true
		}
	}
	return false
}
