package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barysiuk/procreate/internal/core"
	"github.com/barysiuk/procreate/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and change settings",
	Long: `Read and change the settings stored in ~/.procreate/config.json.

Keys: blockRepo, blockRef, blockTool, catalogURL, templateRepo, npmRegistry.
Setting an empty value restores the default.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		out := ui.NewPrinter(cmd.OutOrStdout())
		if len(args) == 1 {
			val, err := d.settings.Get(args[0])
			if err != nil {
				return err
			}
			out.Print(val)
			return nil
		}

		for _, key := range core.SettingKeys() {
			val, _ := d.settings.Get(key)
			out.KeyValue(key, val, 12)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Change a setting",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		// Environment overrides are not persisted.
		cfg, err := d.config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		value := ""
		if len(args) == 2 {
			value = args[1]
		}
		if err := cfg.Settings.Set(args[0], value); err != nil {
			return err
		}
		if err := d.config.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		val, _ := cfg.Settings.Get(args[0])
		ui.NewPrinter(cmd.OutOrStdout()).Success(fmt.Sprintf("%s = %s", args[0], val))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), d.config.ConfigPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
