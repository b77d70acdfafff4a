package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/barysiuk/procreate/internal/core"
	"github.com/barysiuk/procreate/internal/core/route"
	"github.com/barysiuk/procreate/internal/ui"
)

var fetchBlocksCmd = &cobra.Command{
	Use:   "fetch-blocks",
	Short: "Install the blocks of a project's routes",
	Long: `Rewrite the routes of config/config.ts (or config/config.js) to their
layout skeleton, install the block of every content route from the block
registry, then install the project's dependencies.

Routes come from the complete template's route tree unless --routes names
a JSON or YAML manifest. The run stops at the first block that fails to
install.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		projectDir, err := resolveTargetDir(cmd)
		if err != nil {
			return err
		}
		branch, _ := cmd.Flags().GetString("branch")
		js, _ := cmd.Flags().GetBool("js")
		routesFile, _ := cmd.Flags().GetString("routes")
		skipExcluded, _ := cmd.Flags().GetBool("skip-excluded")

		tree := route.Default()
		if routesFile != "" {
			if tree, err = route.Load(routesFile); err != nil {
				return err
			}
		}

		out := ui.NewPrinter(cmd.OutOrStdout())
		errOut := ui.NewPrinter(cmd.ErrOrStderr())

		result, err := d.orchestrator(projectDir, ui.NewSpinner()).FetchBlocks(cmd.Context(), core.FetchBlocksOptions{
			ProjectDir:   projectDir,
			Branch:       branch,
			JS:           js,
			Routes:       tree,
			SkipExcluded: skipExcluded,
		})
		if errors.Is(err, core.ErrRouteConfigNotFound) {
			out.Warning(fmt.Sprintf("No config/config.ts or config/config.js in %s, nothing to do", projectDir))
			return nil
		}
		if result != nil {
			printFetchResult(out, projectDir, result)
		}
		if err != nil {
			printToolOutput(errOut, err)
			return err
		}
		return nil
	},
}

func printFetchResult(out *ui.Printer, projectDir string, result *core.FetchBlocksResult) {
	if result.RoutesPath != "" {
		out.Success("Routes written to " + relPath(projectDir, result.RoutesPath))
	}
	if report := result.Install; report != nil {
		out.Printf("Installed %d %s, skipped %d %s\n",
			len(report.Installed), plural(len(report.Installed), "block", "blocks"),
			len(report.Skipped), plural(len(report.Skipped), "route", "routes"))
		for _, b := range report.Installed {
			out.KeyValue(b.ID, b.Path, 24)
		}
	}
	if result.DependencyCommand != nil {
		out.Command(strings.Join(result.DependencyCommand, " "))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func init() {
	fetchBlocksCmd.Flags().StringP("dir", "d", "", "Project directory (default: current directory)")
	fetchBlocksCmd.Flags().String("branch", core.DefaultBlockRef, "Block branch passed to the block tool")
	fetchBlocksCmd.Flags().Bool("js", false, "Install the JavaScript variant of every block")
	fetchBlocksCmd.Flags().String("routes", "", "Route manifest (JSON or YAML) to install instead of the default tree")
	fetchBlocksCmd.Flags().Bool("skip-excluded", false, "Do not install blocks for the layout roots / and /user")
	rootCmd.AddCommand(fetchBlocksCmd)
}
