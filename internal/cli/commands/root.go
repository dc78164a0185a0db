package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aki/dsrename/internal/cli/ui"
	"github.com/aki/dsrename/internal/core/config"
	"github.com/aki/dsrename/internal/core/dataset"
	"github.com/aki/dsrename/internal/core/logger"
)

// Global flags
var (
	flagConfig string
	flagOutput string
	flagSort   string
)

// Loaded once per invocation by PersistentPreRunE.
var (
	configManager *config.Manager
	cfg           *config.Config
	appLogger     logger.Logger = logger.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "dsrename",
	Short: "Normalize image dataset file names",

	Long: `dsrename renames every file in a dataset directory to <prefix>1..N,
keeping extensions (lower-cased, .jpeg becomes .jpg) and leaving .keep
markers alone. Renames go through unique intermediate names so original
and final names may overlap.`,

	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default .dsrename.yaml in the working or home directory)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output format (pretty, json)")
	rootCmd.PersistentFlags().StringVar(&flagSort, "sort", "", "File ordering used for numbering (lexical, natural)")
	RegisterLoggerFlags(rootCmd)

	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration, applies explicitly set flags on top of it and
// prepares the output formatter and logger.
func setup(cmd *cobra.Command, args []string) error {
	configManager = config.NewManager(flagConfig)

	flags := cmd.Flags()
	overrides := []struct {
		flag, key string
		value     *string
	}{
		{"output", "output", &flagOutput},
		{"sort", "sort", &flagSort},
		{"log-level", "log.level", &flagLogLevel},
		{"log-format", "log.format", &flagLogFormat},
	}
	for _, o := range overrides {
		if flags.Changed(o.flag) {
			configManager.Set(o.key, *o.value)
		}
	}

	loaded, err := configManager.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	format, err := ui.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}
	if err := ui.SetGlobalFormatter(format); err != nil {
		return err
	}

	appLogger, err = CreateLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if path := configManager.ConfigFile(); path != "" {
		appLogger.Debug("loaded config", "path", path)
	}
	cmd.SetContext(logger.WithContext(cmd.Context(), appLogger))
	return nil
}

// sortOrder returns the configured ordering. setup has already validated it.
func sortOrder() dataset.SortOrder {
	order, err := dataset.ParseSortOrder(cfg.Sort)
	if err != nil {
		panic(fmt.Sprintf("unvalidated sort order %q", cfg.Sort))
	}
	return order
}

// Execute runs the root command and reports a failure in the selected
// output format on stderr.
func Execute() error {
	return execute(rootCmd)
}

func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		_ = formatter(cmd).OutputError(err)
	}
	return err
}
