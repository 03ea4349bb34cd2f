package app

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/ui/style"
)

// RenderPlan prints the plan as a numbered list with footnotes and notes.
func RenderPlan(out *termenv.Output, env string, plan *domain.OperationPlan) {
	_, _ = fmt.Fprintf(out, "Plan for environment %q:\n", env)
	for i, item := range plan.Items {
		kind := out.String(fmt.Sprintf("%-7s", item.Kind)).Foreground(out.Color(string(kindColor(item.Kind))))

		line := fmt.Sprintf("%3d. %s %s", i+1, kind, item.Key())
		if item.Kind == domain.OpUpdate {
			line += fmt.Sprintf(" %s %s %s", item.Installed, style.Arrow, item.Version)
		} else {
			line += "@" + item.Version
		}
		if item.Footnote != "" {
			line += " " + out.String("("+item.Footnote+")").Faint().String()
		}
		_, _ = fmt.Fprintln(out, line)

		if note, ok := plan.Notes[i]; ok {
			_, _ = fmt.Fprintf(out, "     note: %s\n", note)
		}
	}
}

func kindColor(k domain.OpKind) lipgloss.Color {
	switch k {
	case domain.OpUpdate:
		return style.Yellow
	case domain.OpInstall:
		return style.Green
	default:
		return style.Iris
	}
}
