package prompt

import (
	"github.com/AlecAivazis/survey/v2"
	"go.trai.ch/ypms/internal/core/ports"
)

// NewPrompterForTest creates a Prompter with a fake terminal check and question func.
func NewPrompterForTest(
	logger ports.Logger,
	isTTY bool,
	ask func(p survey.Prompt, response any, opts ...survey.AskOpt) error,
) *Prompter {
	p := NewPrompter(logger)
	p.isTTY = func() bool { return isTTY }
	p.ask = ask
	return p
}
