package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/ypms/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <guide> <user/package>",
		Short: "Run any release guide of a package",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGuide(cmd, args[0], args[1])
		},
	}
	addPackageFlags(cmd)
	return cmd
}

func (c *CLI) newGuideCmd(guide, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   guide + " <user/package>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGuide(cmd, guide, args[0])
		},
	}
	addPackageFlags(cmd)
	return cmd
}

func (c *CLI) runGuide(cmd *cobra.Command, guide, ref string) error {
	version, _ := cmd.Flags().GetString("version")
	env, _ := cmd.Flags().GetString("env")
	source, _ := cmd.Flags().GetString("source")
	yes, _ := cmd.Flags().GetBool("yes")
	force, _ := cmd.Flags().GetBool("force")
	outputMode, _ := cmd.Flags().GetString("output")

	res, err := c.app.Run(cmd.Context(), ref, guide, app.RunOptions{
		Env:        env,
		Version:    version,
		Source:     source,
		AssumeYes:  yes,
		Force:      force,
		OutputMode: outputMode,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res.LastResult != "" {
		_, _ = fmt.Fprintf(out, "%s -> %s\n", guide, res.LastResult)
	} else {
		_, _ = fmt.Fprintf(out, "%s done\n", guide)
	}
	return nil
}
