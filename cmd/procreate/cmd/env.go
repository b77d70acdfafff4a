package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barysiuk/procreate/internal/ui"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the variables passed to the block and package tools",
	Long: `List the variables declared in .env.procreate files and where each
value comes from: the process environment, the project's .env.procreate
or ~/.procreate/.env.procreate.

Every spawned tool also gets PUPPETEER_SKIP_CHROMIUM_DOWNLOAD=true.`,
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

		out := ui.NewPrinter(cmd.OutOrStdout())
		vars := d.envResolver(projectDir).Files()
		if len(vars) == 0 {
			out.Dim("No .env.procreate variables")
			return nil
		}
		for _, ev := range vars {
			out.KeyValue(ev.Name, fmt.Sprintf("%s (%s)", ev.Value, ev.Source), 24)
		}
		return nil
	},
}

func init() {
	envCmd.Flags().StringP("dir", "d", "", "Project directory (default: current directory)")
	rootCmd.AddCommand(envCmd)
}
