package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aki/dsrename/internal/cli/ui"
	"github.com/aki/dsrename/internal/core/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the dsrename configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Display the configuration after merging defaults, the config file,
DSRENAME_* environment variables and command line flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := configManager.Settings()
		f := formatter(cmd)
		if f.IsJSON() {
			return f.Output(settings)
		}

		data, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to marshal configuration: %w", err)
		}
		header := "# defaults (no config file found)\n"
		if path := configManager.ConfigFile(); path != "" {
			header = "# " + path + "\n"
		}
		return f.Output(header + string(data))
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with the current settings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.FileName + ".yaml"
		if len(args) == 1 {
			path = args[0]
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		if err := configManager.WriteDefaults(abs); err != nil {
			return err
		}
		ui.Success(cmd.OutOrStdout(), "Wrote %s", abs)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
