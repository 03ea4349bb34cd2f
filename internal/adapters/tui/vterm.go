package tui

import (
	"bytes"
	"sync"

	"github.com/vito/midterm"
)

// Vterm is a virtual terminal holding shell step output. It renders its last rows.
type Vterm struct {
	mu      sync.Mutex
	vt      *midterm.Terminal
	width   int
	height  int
	prefix  string
	viewBuf bytes.Buffer
}

// NewVterm creates a Vterm showing at most height rows, each starting with prefix.
func NewVterm(height int, prefix string) *Vterm {
	if height < 1 {
		height = 1
	}
	return &Vterm{
		vt:     midterm.NewAutoResizingTerminal(),
		height: height,
		prefix: prefix,
	}
}

// Write feeds raw output, including escape sequences, into the terminal.
func (v *Vterm) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.vt.Write(p)
}

// SetWidth resizes the terminal to the given screen width.
func (v *Vterm) SetWidth(w int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	cols := w - len(v.prefix)
	if cols < 1 {
		cols = 1
	}
	v.width = w
	v.vt.ResizeX(cols)
}

// SetHeight changes how many rows View shows.
func (v *Vterm) SetHeight(h int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if h < 1 {
		h = 1
	}
	v.height = h
}

// UsedHeight returns the number of rows written so far.
func (v *Vterm) UsedHeight() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.vt.UsedHeight()
}

// Reset drops everything written so far.
func (v *Vterm) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vt = midterm.NewAutoResizingTerminal()
	if v.width > 0 {
		cols := v.width - len(v.prefix)
		if cols < 1 {
			cols = 1
		}
		v.vt.ResizeX(cols)
	}
}

// View renders the tail of the terminal.
func (v *Vterm) View() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.viewBuf.Reset()
	used := v.vt.UsedHeight()
	start := used - v.height
	if start < 0 {
		start = 0
	}
	for row := start; row < used; row++ {
		if row > start {
			_ = v.viewBuf.WriteByte('\n')
		}
		_, _ = v.viewBuf.WriteString(v.prefix)
		_ = v.vt.RenderLine(&v.viewBuf, row)
	}
	return v.viewBuf.String()
}
