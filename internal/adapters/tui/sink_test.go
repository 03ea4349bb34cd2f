package tui_test

import (
	"bytes"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ypms/internal/adapters/tui"
	"go.trai.ch/ypms/internal/core/ports"
)

var _ ports.UISink = (*tui.Sink)(nil)

func TestSink_DeliversUpdatesInOrder(t *testing.T) {
	var buf bytes.Buffer
	sink := tui.NewSink(&buf, tea.WithoutRenderer())

	sink.SetHeader("update yopr:user/pkg 1.0 → 2.0", ports.StyleActive)
	sink.SetStep(0, "download-file 50%", ports.StyleActive)
	sink.SetStep(0, "download-file 100%", ports.StyleSuccess)
	_, err := sink.LogWriter().Write([]byte("log line\n"))
	require.NoError(t, err)
	sink.Stop()
	sink.Stop()

	require.NoError(t, sink.Err())
	m := sink.Model()
	assert.Equal(t, "update yopr:user/pkg 1.0 → 2.0", m.Header.Text)
	require.Len(t, m.Steps, 1)
	assert.Equal(t, tui.Line{Text: "download-file 100%", Style: ports.StyleSuccess}, m.Steps[0])
	assert.Positive(t, m.Log.UsedHeight())
}
