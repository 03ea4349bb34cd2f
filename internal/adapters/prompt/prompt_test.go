package prompt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ypms/internal/adapters/prompt"
	"go.trai.ch/ypms/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func answer(value bool, err error) func(survey.Prompt, any, ...survey.AskOpt) error {
	return func(p survey.Prompt, response any, _ ...survey.AskOpt) error {
		if err != nil {
			return err
		}
		if _, ok := p.(*survey.Confirm); !ok {
			return errors.New("unexpected prompt type")
		}
		*(response.(*bool)) = value
		return nil
	}
}

func TestPrompter_Confirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tty      bool
		ask      func(survey.Prompt, any, ...survey.AskOpt) error
		expected bool
		wantErr  bool
	}{
		{name: "yes", tty: true, ask: answer(true, nil), expected: true},
		{name: "no", tty: true, ask: answer(false, nil), expected: false},
		{name: "interrupt declines", tty: true, ask: answer(false, terminal.InterruptErr), expected: false},
		{name: "prompt failure", tty: true, ask: answer(false, errors.New("broken terminal")), wantErr: true},
		{name: "no terminal declines", tty: false, ask: answer(true, nil), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			log := mocks.NewMockLogger(ctrl)
			log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

			p := prompt.NewPrompterForTest(log, tt.tty, tt.ask)
			got, err := p.Confirm(context.Background(), "Proceed anyway?")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPrompter_CanceledContext(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	p := prompt.NewPrompterForTest(mocks.NewMockLogger(ctrl), true, answer(true, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Confirm(ctx, "Proceed anyway?")
	require.ErrorIs(t, err, context.Canceled)
}
