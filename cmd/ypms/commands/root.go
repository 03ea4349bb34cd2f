// Package commands implements the CLI commands for the ypms package manager.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/ypms/internal/app"
	"go.trai.ch/ypms/internal/build"
)

// CLI represents the command line interface for ypms.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	ConfigureLogging(verbose, json bool)
	Install(ctx context.Context, ref string, opts app.InstallOptions) (*app.InstallResult, error)
	Run(ctx context.Context, ref, guide string, opts app.RunOptions) (*app.RunResult, error)
	Upgrade(ctx context.Context, opts app.MaintenanceOptions) ([]app.Outcome, error)
	Autoremove(ctx context.Context, opts app.MaintenanceOptions) ([]app.Outcome, error)
	ListInstalled(env string) ([]app.EnvRecords, error)
	Envs() ([]app.EnvInfo, error)
	Sources() ([]app.SourceInfo, error)
	AddSource(name, url string) error
	RemoveSource(name string) error
	Refresh(ctx context.Context) error
	Info(ctx context.Context, ref, source, version string) (*app.PackageDetails, error)
	Search(ctx context.Context, query, source string) ([]app.SearchHit, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "ypms",
		Short:         "YPMS - YPSH Package Manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("source", "s", "", "Source name (default: yopr or the first configured source)")
	flags.BoolP("verbose", "v", false, "Verbose output")
	flags.Bool("log-json", false, "Write log records as JSON")
	flags.StringP("output", "o", "auto", "Progress output: auto, tui, linear, or quiet")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logJSON, _ := cmd.Flags().GetBool("log-json")
		c.app.ConfigureLogging(verbose, logJSON)
	}

	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newGuideCmd("update", "Update a package via its 'update' guide"))
	rootCmd.AddCommand(c.newGuideCmd("uninstall", "Uninstall a package via its 'uninstall' guide"))
	rootCmd.AddCommand(c.newUpgradeCmd())
	rootCmd.AddCommand(c.newAutoremoveCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newInfoCmd())
	rootCmd.AddCommand(c.newSearchCmd())
	rootCmd.AddCommand(c.newEnvsCmd())
	rootCmd.AddCommand(c.newSourcesCmd())
	rootCmd.AddCommand(c.newRefreshCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func addPackageFlags(cmd *cobra.Command) {
	cmd.Flags().String("version", "", "Release tag or alias (e.g., latest, v1.0)")
	cmd.Flags().String("env", "", "Environment ID (default: default)")
	cmd.Flags().BoolP("yes", "y", false, "Assume yes when a forced operation asks for confirmation")
	cmd.Flags().BoolP("force", "f", false, "Proceed even when installed packages depend on the change")
}

func addJSONFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Print the result as JSON")
}
