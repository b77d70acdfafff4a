package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/barysiuk/procreate/internal/core"
	"github.com/barysiuk/procreate/internal/ui"
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a project from the Ant Design Pro template",
	Long: `Create a project directory from the Ant Design Pro template.

The template is cloned from the fastest of GitHub and its mirrors unless
--template or the templateRepo setting names one. Local directories are
copied. Missing options are asked for when running in a terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		opts := core.GenerateOptions{}
		if len(args) == 1 {
			opts.Name = args[0]
		}
		opts.Version, _ = cmd.Flags().GetString("version")
		opts.AllBlocks, _ = cmd.Flags().GetBool("all-blocks")
		opts.Template, _ = cmd.Flags().GetString("template")
		opts.Dir, _ = cmd.Flags().GetString("dir")

		if isInteractive() {
			if err := promptCreateOptions(cmd, &opts); err != nil {
				return err
			}
		}
		if opts.Name == "" {
			return errors.New("project name is required")
		}
		if v.GetBool("verbose") {
			opts.Output = cmd.ErrOrStderr()
		}

		out := ui.NewPrinter(cmd.OutOrStdout())
		errOut := ui.NewPrinter(cmd.ErrOrStderr())

		out.Title("Creating " + opts.Name)
		result, err := d.generator(ui.NewSpinner()).Generate(cmd.Context(), opts)
		if err != nil {
			printCloneHints(errOut, err)
			return err
		}

		out.Success(fmt.Sprintf("Created %s from %s", result.ProjectDir, result.Source.CloneURL))
		if result.Branch != "" {
			out.KeyValue("branch", result.Branch, 10)
		}
		if n := len(result.Removed); n > 0 {
			out.Dim(fmt.Sprintf("Removed %d template %s", n, plural(n, "file", "files")))
		}
		printNextSteps(cmd.OutOrStdout(), opts.Name)
		return nil
	},
}

// promptCreateOptions asks for the options that were not given as flags.
func promptCreateOptions(cmd *cobra.Command, opts *core.GenerateOptions) error {
	var err error
	if opts.Name == "" {
		opts.Name, err = ui.Input("Project name",
			ui.WithPlaceholder("myapp"),
			ui.WithValidation(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("name is required")
				}
				return nil
			}))
		if err != nil {
			return err
		}
		opts.Name = strings.TrimSpace(opts.Name)
	}

	if !cmd.Flags().Changed("version") {
		opts.Version, err = ui.Select("Which umi version?", []ui.SelectOption[string]{
			{Label: "umi@4", Value: core.VersionUmi4},
			{Label: "umi@3", Value: core.VersionUmi3},
		})
		if err != nil {
			return err
		}
	}

	if opts.Version == core.VersionUmi3 && !cmd.Flags().Changed("all-blocks") {
		opts.AllBlocks, err = ui.Select("Which template?", []ui.SelectOption[bool]{
			{Label: "simple", Value: false},
			{Label: "complete (every block installed)", Value: true},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func printNextSteps(w io.Writer, name string) {
	steps := ui.NextSteps(name, []string{"cd " + name, "npm install", "npm start"})
	fmt.Fprint(w, ui.RenderMarkdown(steps))
}

func init() {
	createCmd.Flags().String("version", core.VersionUmi4, "Template version: umi@4 or umi@3")
	createCmd.Flags().Bool("all-blocks", false, "Use the complete template with every block (umi@3 only)")
	createCmd.Flags().String("template", "", "Template clone URL, owner/repo or local directory")
	createCmd.Flags().StringP("dir", "d", "", "Parent directory (default: current directory)")
	rootCmd.AddCommand(createCmd)
}
