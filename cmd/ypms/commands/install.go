package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/ypms/internal/app"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <user/package>",
		Short: "Install a package via its 'install' guide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, _ := cmd.Flags().GetString("version")
			env, _ := cmd.Flags().GetString("env")
			source, _ := cmd.Flags().GetString("source")
			yes, _ := cmd.Flags().GetBool("yes")
			force, _ := cmd.Flags().GetBool("force")
			outputMode, _ := cmd.Flags().GetString("output")

			res, err := c.app.Install(cmd.Context(), args[0], app.InstallOptions{
				Env:        env,
				Version:    version,
				Source:     source,
				Explicit:   true,
				AssumeYes:  yes,
				Force:      force,
				OutputMode: outputMode,
			})
			if err != nil {
				return err
			}
			if !res.NothingToDo {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Installed -> %s\n", res.EnvDir)
			}
			return nil
		},
	}
	addPackageFlags(cmd)
	return cmd
}
