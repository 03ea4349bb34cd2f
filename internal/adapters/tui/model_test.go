package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/ypms/internal/core/ports"
)

func TestModel_Update(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	m := NewModel()
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m.Update(msgHeader{text: "install yopr:user/pkg@1.0", style: ports.StyleActive})
	m.Update(msgStep{index: 1, text: "shell make", style: ports.StyleActive})
	m.Update(msgLog{data: []byte("building\r\n")})

	assert.Equal(t, 80, m.Width)
	assert.Len(t, m.Steps, 2)
	assert.Equal(t, "shell make", m.Steps[1].Text)

	view := m.View()
	assert.Contains(t, view, "install yopr:user/pkg@1.0")
	assert.Contains(t, view, "shell make")
	assert.Contains(t, view, "building")

	m.Update(msgStep{index: 1, text: "shell make", style: ports.StyleSuccess})
	assert.NotContains(t, m.View(), "building", "output pane is only shown while a step runs")

	m.Update(msgClearSteps{})
	assert.Empty(t, m.Steps)
	m.Update(msgStep{index: 0, text: "shell make", style: ports.StyleActive})
	assert.NotContains(t, m.View(), "building")
	assert.Contains(t, m.View(), "install yopr:user/pkg@1.0")
}

func TestVterm_ShowsTail(t *testing.T) {
	t.Parallel()

	v := NewVterm(2, "> ")
	v.SetWidth(40)
	_, err := v.Write([]byte("one\r\ntwo\r\nthree"))
	assert.NoError(t, err)

	view := v.View()
	assert.NotContains(t, view, "one")
	assert.Contains(t, view, "> two")
	assert.Contains(t, view, "three")

	v.Reset()
	assert.NotContains(t, v.View(), "three")
}
