package ports

import "context"

// Prompter asks the user a yes/no question.
//
//go:generate mockgen -source=prompter.go -destination=mocks/mock_prompter.go -package=mocks
type Prompter interface {
	// Confirm returns true only on an affirmative answer.
	Confirm(ctx context.Context, message string) (bool, error)
}
