package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/ypms/internal/app"
)

func (c *CLI) newUpgradeCmd() *cobra.Command {
	return c.newMaintenanceCmd(
		"upgrade",
		"Refresh caches and run 'update' for all installed packages",
		"(nothing to upgrade)",
		c.app.Upgrade,
	)
}

func (c *CLI) newAutoremoveCmd() *cobra.Command {
	return c.newMaintenanceCmd(
		"autoremove",
		"Uninstall packages that were only installed as dependencies",
		"(nothing to autoremove)",
		c.app.Autoremove,
	)
}

func (c *CLI) newMaintenanceCmd(
	use, short, empty string,
	op func(context.Context, app.MaintenanceOptions) ([]app.Outcome, error),
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, _ := cmd.Flags().GetString("env")
			force, _ := cmd.Flags().GetBool("force")
			outputMode, _ := cmd.Flags().GetString("output")

			outcomes, err := op(cmd.Context(), app.MaintenanceOptions{
				Env:        env,
				Force:      force,
				OutputMode: outputMode,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(outcomes) == 0 {
				_, _ = fmt.Fprintln(out, empty)
				return nil
			}
			for _, o := range outcomes {
				_, _ = fmt.Fprintln(out, o.String())
			}
			return nil
		},
	}
	cmd.Flags().String("env", "", "Target environment ID (default: all environments)")
	cmd.Flags().BoolP("force", "f", false, "Proceed even when installed packages depend on the change")
	return cmd
}
