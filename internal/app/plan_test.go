package app_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/sebdah/goldie/v2"
	"go.trai.ch/ypms/internal/app"
	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/ui/output"
)

func TestRenderPlan(t *testing.T) {
	t.Parallel()

	plan := &domain.OperationPlan{}
	plan.Add(domain.OpItem{Kind: domain.OpTarget, Source: "main", Package: "user/app", Version: "1.0", Explicit: true})
	plan.Add(domain.OpItem{
		Kind:     domain.OpInstall,
		Source:   "main",
		Package:  "user/lib",
		Version:  "2.1",
		Footnote: "dependency of user/app",
	})
	idx := plan.Add(domain.OpItem{
		Kind:      domain.OpUpdate,
		Source:    "main",
		Package:   "user/core",
		Version:   "2.0",
		Installed: "1.0",
	})
	plan.Note(idx, "required by main:user/app@1.0")

	var buf bytes.Buffer
	out := output.NewWithProfile(&buf, func() termenv.Profile { return termenv.Ascii })
	app.RenderPlan(out, domain.DefaultEnv, plan)

	g := goldie.New(t)
	g.Assert(t, "plan", buf.Bytes())
}
