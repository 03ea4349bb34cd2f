// Package prompt implements the Prompter port with interactive terminal questions.
package prompt

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"go.trai.ch/ypms/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

type askFunc func(p survey.Prompt, response any, opts ...survey.AskOpt) error

// Prompter asks yes/no questions on the controlling terminal.
type Prompter struct {
	logger ports.Logger
	in     terminal.FileReader
	out    terminal.FileWriter
	errOut io.Writer
	isTTY  func() bool
	ask    askFunc
}

// NewPrompter creates a Prompter bound to the process stdio.
func NewPrompter(logger ports.Logger) *Prompter {
	return &Prompter{
		logger: logger,
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		isTTY: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // fd fits in int
		},
		ask: survey.AskOne,
	}
}

// Confirm asks message and reports the answer. It defaults to no.
// Without a terminal nobody can answer, so the question counts as declined.
func (p *Prompter) Confirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !p.isTTY() {
		p.logger.Debug("no terminal for confirmation, declining", "question", message)
		return false, nil
	}

	answer := false
	q := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := p.ask(q, &answer, survey.WithStdio(p.in, p.out, p.errOut)); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return false, nil
		}
		return false, zerr.Wrap(err, "confirmation prompt failed")
	}
	return answer, nil
}
