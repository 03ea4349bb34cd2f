// Package guard classifies updates and removals against the packages that depend on them.
package guard

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/core/ports"
)

// Decision is the outcome of the blocker policy.
type Decision int

const (
	// Proceed runs the operation.
	Proceed Decision = iota
	// Abort refuses the operation and leaves state untouched.
	Abort
	// NeedsConfirmation runs the operation only after an affirmative answer.
	NeedsConfirmation
)

// String implements fmt.Stringer.
func (d Decision) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case Abort:
		return "abort"
	case NeedsConfirmation:
		return "needs-confirmation"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// Decide applies the block / warn-and-confirm / force policy.
func Decide(blockers int, force, assumeYes bool) Decision {
	switch {
	case blockers == 0:
		return Proceed
	case !force:
		return Abort
	case assumeYes:
		return Proceed
	default:
		return NeedsConfirmation
	}
}

// DependentFinder finds installed dependents of a package.
type DependentFinder interface {
	FindDependents(ctx context.Context, env, source, ref string) ([]domain.DependentInfo, error)
	FindPlannedDependents(
		ctx context.Context,
		env, source, ref string,
		planned map[domain.PackageKey]string,
	) ([]domain.DependentInfo, error)
}

// Guard checks updates and removals against installed dependents.
type Guard struct {
	finder   DependentFinder
	prompter ports.Prompter
	logger   ports.Logger
}

// NewGuard creates a new Guard.
func NewGuard(finder DependentFinder, prompter ports.Prompter, logger ports.Logger) *Guard {
	return &Guard{finder: finder, prompter: prompter, logger: logger}
}

// CheckUpdate returns one message per dependent whose concrete requirement differs from newVersion.
func (g *Guard) CheckUpdate(ctx context.Context, env, source, ref, newVersion string) ([]string, error) {
	deps, err := g.finder.FindDependents(ctx, env, source, ref)
	if err != nil {
		return nil, err
	}
	return updateMessages(deps, newVersion), nil
}

// CheckPlannedUpdate is CheckUpdate for one update item of plan. Dependents that the plan also
// moves are judged by the release they are moving to.
func (g *Guard) CheckPlannedUpdate(ctx context.Context, env string, plan *domain.OperationPlan, item domain.OpItem) ([]string, error) {
	deps, err := g.finder.FindPlannedDependents(ctx, env, item.Source, item.Package, plan.PlannedVersions())
	if err != nil {
		return nil, err
	}
	return updateMessages(deps, item.Version), nil
}

func updateMessages(deps []domain.DependentInfo, newVersion string) []string {
	var msgs []string
	for _, d := range deps {
		if d.RequiredVersion == "" || d.RequiredVersion == newVersion {
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s@%s requires %s, but %s is planned",
			d.Key(), d.Version, d.RequiredVersion, newVersion))
	}
	return msgs
}

// PlannedUpdateBlockers wraps CheckPlannedUpdate into a BlockedError, or nil when nothing blocks.
func (g *Guard) PlannedUpdateBlockers(
	ctx context.Context,
	env string,
	plan *domain.OperationPlan,
	item domain.OpItem,
) (*domain.BlockedError, error) {
	msgs, err := g.CheckPlannedUpdate(ctx, env, plan, item)
	if err != nil || len(msgs) == 0 {
		return nil, err
	}
	return domain.NewBlockedError(domain.ErrBlockedByVersionConstraint, item.Key(), msgs), nil
}

// CheckUninstall returns every installed dependent of source:ref.
func (g *Guard) CheckUninstall(ctx context.Context, env, source, ref string) ([]domain.DependentInfo, error) {
	return g.finder.FindDependents(ctx, env, source, ref)
}

// UpdateBlockers wraps CheckUpdate into a BlockedError, or nil when nothing blocks.
func (g *Guard) UpdateBlockers(ctx context.Context, env, source, ref, newVersion string) (*domain.BlockedError, error) {
	msgs, err := g.CheckUpdate(ctx, env, source, ref, newVersion)
	if err != nil || len(msgs) == 0 {
		return nil, err
	}
	return domain.NewBlockedError(domain.ErrBlockedByVersionConstraint, domain.KeyFor(source, ref), msgs), nil
}

// UninstallBlockers wraps CheckUninstall into a BlockedError, or nil when nothing blocks.
func (g *Guard) UninstallBlockers(ctx context.Context, env, source, ref string) (*domain.BlockedError, error) {
	deps, err := g.CheckUninstall(ctx, env, source, ref)
	if err != nil || len(deps) == 0 {
		return nil, err
	}
	return domain.NewBlockedError(domain.ErrBlockedByDependents, domain.KeyFor(source, ref), UninstallMessages(deps)), nil
}

// UninstallMessages renders dependents as blocker messages.
func UninstallMessages(deps []domain.DependentInfo) []string {
	msgs := make([]string, 0, len(deps))
	for _, d := range deps {
		msgs = append(msgs, d.String())
	}
	return msgs
}

// Enforce applies Decide to the blockers of one operation. Blockers are reported as warnings
// when the operation goes ahead. A declined or impossible confirmation aborts.
func (g *Guard) Enforce(ctx context.Context, blocked *domain.BlockedError, force, assumeYes bool) error {
	if blocked == nil || len(blocked.Messages) == 0 {
		return nil
	}

	switch Decide(len(blocked.Messages), force, assumeYes) {
	case Abort:
		return blocked
	case NeedsConfirmation:
		g.warn(blocked)
		ok, err := g.prompter.Confirm(ctx, fmt.Sprintf("Proceed with %s anyway?", blocked.Target))
		if err != nil {
			return err
		}
		if !ok {
			return errors.Join(domain.ErrConfirmationDeclined, blocked)
		}
		return nil
	default:
		g.warn(blocked)
		return nil
	}
}

func (g *Guard) warn(blocked *domain.BlockedError) {
	g.logger.Warn(fmt.Sprintf("forcing past blockers: %s", blocked.Error()))
}
