package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/ypms/internal/app"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, _ := cmd.Flags().GetString("env")
			asJSON, _ := cmd.Flags().GetBool("json")

			envs, err := c.app.ListInstalled(env)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, envs)
			}
			for _, e := range envs {
				_, _ = fmt.Fprintf(out, "[%s]\n", e.Env)
				for _, rec := range e.Records {
					line := fmt.Sprintf("  - %s@%s", rec.Key(), rec.Version)
					if !rec.Explicit {
						line += " (dependency)"
					}
					_, _ = fmt.Fprintln(out, line)
				}
			}
			return nil
		},
	}
	cmd.Flags().String("env", "", "Environment ID (default: all environments)")
	addJSONFlag(cmd)
	return cmd
}

func (c *CLI) newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <user/package>",
		Short: "Show package info",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			version, _ := cmd.Flags().GetString("version")
			asJSON, _ := cmd.Flags().GetBool("json")

			d, err := c.app.Info(cmd.Context(), args[0], source, version)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, d)
			}
			printDetails(out, d)
			return nil
		},
	}
	cmd.Flags().String("version", "", "Release tag or alias to resolve and show")
	addJSONFlag(cmd)
	return cmd
}

func printDetails(out io.Writer, d *app.PackageDetails) {
	_, _ = fmt.Fprintf(out, "%s:%s\n", d.Source, d.Package)
	_, _ = fmt.Fprintf(out, "  default:  %s\n", orDash(d.Default))
	_, _ = fmt.Fprintf(out, "  releases: %s\n", orDash(strings.Join(d.Releases, ", ")))

	aliases := make([]string, 0, len(d.Aliases))
	for k, v := range d.Aliases {
		aliases = append(aliases, k+"="+v)
	}
	sort.Strings(aliases)
	_, _ = fmt.Fprintf(out, "  aliases:  %s\n", orDash(strings.Join(aliases, ", ")))

	_, _ = fmt.Fprintf(out, "\nResolved version: %s\n", d.Resolved)
	_, _ = fmt.Fprintf(out, "Release info URL: %s\n", d.ReleaseURL)
	_, _ = fmt.Fprintf(out, "  guides:   %s\n", orDash(strings.Join(d.Guides, ", ")))

	deps := make([]string, 0, len(d.Depends))
	for _, dep := range d.Depends {
		deps = append(deps, dep.String())
	}
	_, _ = fmt.Fprintf(out, "  depends:  %s\n", orDash(strings.Join(deps, ", ")))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (c *CLI) newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the packages of a source",
		Long:  "Fuzzy-search the package index of a source. Without a query every package is listed.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			asJSON, _ := cmd.Flags().GetBool("json")

			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			hits, err := c.app.Search(cmd.Context(), query, source)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, hits)
			}
			if len(hits) == 0 {
				_, _ = fmt.Fprintln(out, "(no packages found)")
				return nil
			}
			for _, h := range hits {
				if h.Description != "" {
					_, _ = fmt.Fprintf(out, "%s:%s  %s\n", h.Source, h.Package, h.Description)
				} else {
					_, _ = fmt.Fprintf(out, "%s:%s\n", h.Source, h.Package)
				}
			}
			return nil
		},
	}
	addJSONFlag(cmd)
	return cmd
}

func (c *CLI) newEnvsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "envs",
		Short: "List environments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			envs, err := c.app.Envs()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, envs)
			}
			if len(envs) == 0 {
				_, _ = fmt.Fprintln(out, "(no environments yet)")
				return nil
			}
			for _, e := range envs {
				_, _ = fmt.Fprintf(out, "%s: %s\n", e.Name, e.Path)
			}
			return nil
		},
	}
	addJSONFlag(cmd)
	return cmd
}
