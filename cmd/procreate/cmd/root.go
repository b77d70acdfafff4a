package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

const envPrefix = "PROCREATE"

// v holds flag values and PROCREATE_* environment overrides.
var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "procreate",
	Short: "Scaffold Ant Design Pro projects and install their blocks",
	Long: `procreate creates projects from the Ant Design Pro template and fills
their routes with blocks from the block registry.

Settings live in ~/.procreate/config.json and can be overridden with
PROCREATE_* environment variables, e.g. PROCREATE_BLOCK_REPO.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "procreate %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug logs")
	_ = v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	v.SetEnvPrefix(envPrefix)
	for _, key := range settingEnv {
		_ = v.BindEnv(key)
	}
	v.AutomaticEnv()

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command. An interrupt cancels the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
