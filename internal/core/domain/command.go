package domain

import "github.com/kballard/go-shellquote"

// Command is an external command run by a shell guide step.
type Command struct {
	// Line is run through the system shell when Shell is true.
	Line string
	// Args is executed directly when Shell is false.
	Args  []string
	Shell bool
	Dir   string
	// Env holds KEY=VALUE pairs layered over the inherited environment.
	Env []string
}

// Display returns a printable form of the command.
func (c Command) Display() string {
	if c.Shell {
		return c.Line
	}
	return shellquote.Join(c.Args...)
}
