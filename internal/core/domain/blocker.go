package domain

import (
	"fmt"
	"strings"
)

// DependentInfo describes an installed package that depends on another one.
type DependentInfo struct {
	Source  string
	Package string
	Version string
	// RequiredVersion is the concrete version the dependent needs, or empty for any.
	RequiredVersion string
}

// Key returns the dependent's package key.
func (d DependentInfo) Key() PackageKey {
	return KeyFor(d.Source, d.Package)
}

// String names the dependent and what it requires.
func (d DependentInfo) String() string {
	req := d.RequiredVersion
	if req == "" {
		req = "any version"
	}
	return fmt.Sprintf("%s@%s depends on it (requires %s)", d.Key(), d.Version, req)
}

// BlockedError reports an operation refused because of installed dependents.
// It unwraps to ErrBlockedByDependents or ErrBlockedByVersionConstraint.
type BlockedError struct {
	Kind     error
	Target   PackageKey
	Messages []string
}

// NewBlockedError builds a BlockedError of the given kind.
func NewBlockedError(kind error, target PackageKey, messages []string) *BlockedError {
	return &BlockedError{Kind: kind, Target: target, Messages: messages}
}

// Error implements the error interface.
func (e *BlockedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Target, e.Kind.Error())
	for _, m := range e.Messages {
		b.WriteString("\n  - ")
		b.WriteString(m)
	}
	return b.String()
}

// Unwrap returns the blocker kind sentinel.
func (e *BlockedError) Unwrap() error {
	return e.Kind
}

// StepError reports a failed guide step.
// It unwraps to both ErrGuideStepFailure and the underlying cause.
type StepError struct {
	Guide string
	Index int
	Type  StepType
	Err   error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s: guide %q step %d (%s): %v", ErrGuideStepFailure.Error(), e.Guide, e.Index+1, e.Type, e.Err)
}

// Unwrap returns the sentinel and the cause.
func (e *StepError) Unwrap() []error {
	return []error{ErrGuideStepFailure, e.Err}
}
