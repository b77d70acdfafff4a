package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barysiuk/procreate/internal/core/route"
	"github.com/barysiuk/procreate/internal/ui"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Inspect route trees",
	Long: `Show how procreate reads a route tree: the routes it installs blocks
for, the layout skeleton it writes back to the config, and the block
identifier of a route path.`,
}

var routesFlattenCmd = &cobra.Command{
	Use:   "flatten [manifest]",
	Short: "List the routes that can receive a block",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree(args)
		if err != nil {
			return err
		}
		skipExcluded, _ := cmd.Flags().GetBool("skip-excluded")

		out := ui.NewPrinter(cmd.OutOrStdout())
		for _, r := range route.FlattenWith(tree.Routes, skipExcluded) {
			line := fmt.Sprintf("%-28s %s", r.Path, route.Normalize(r.Path))
			if r.HasChildren {
				line += " (has routes)"
			}
			out.Print(line)
		}
		return nil
	},
}

var routesParentsCmd = &cobra.Command{
	Use:   "parents [manifest]",
	Short: "Print the layout skeleton written to the route config",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree(args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), route.Render(route.FilterParents(tree, true), ""))
		return nil
	},
}

var routesNormalizeCmd = &cobra.Command{
	Use:   "normalize <path>...",
	Short: "Print the block identifier of route paths",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ui.NewPrinter(cmd.OutOrStdout())
		for _, p := range args {
			out.Print(route.Normalize(p))
		}
		return nil
	},
}

// loadTree reads the manifest named in args, or the default tree.
func loadTree(args []string) (route.Tree, error) {
	if len(args) == 0 {
		return route.Default(), nil
	}
	return route.Load(args[0])
}

func init() {
	routesFlattenCmd.Flags().Bool("skip-excluded", false, "Leave out the layout roots / and /user")
	routesCmd.AddCommand(routesFlattenCmd)
	routesCmd.AddCommand(routesParentsCmd)
	routesCmd.AddCommand(routesNormalizeCmd)
	rootCmd.AddCommand(routesCmd)
}
