package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/aki/dsrename/internal/cli/ui"
	"github.com/aki/dsrename/internal/core/dataset"
	"github.com/aki/dsrename/internal/core/watch"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <dir> <prefix>",
	Short: "Keep a directory normalized as files are added",
	Long: `Normalize <dir> once, then watch it and normalize again whenever a burst
of changes settles. A directory that already verifies as normalized is left
alone, so the tool's own renames do not trigger another run. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := commandContext(cmd)
		defer stop()

		dir, err := absDir(args[0])
		if err != nil {
			return err
		}
		prefix := args[1]
		if err := dataset.ValidatePrefix(prefix); err != nil {
			return err
		}

		debounce := cfg.Watch.Debounce
		if cmd.Flags().Changed("debounce") {
			debounce = watchDebounce
		}

		renamer := newRenamer(sortOrder())
		w := cmd.OutOrStdout()

		appLogger.Info("watching directory", "dir", dir, "debounce", debounce)
		return watch.Run(ctx, dir, debounce, appLogger, func(ctx context.Context) error {
			report, err := dataset.Verify(dir, prefix)
			if err != nil {
				return err
			}
			if report.Normalized() {
				appLogger.Debug("directory already normalized", "dir", dir, "files", report.Total)
				return nil
			}

			release, err := lockDir(ctx, dir, false)
			if err != nil {
				return err
			}
			defer release()

			res, err := renamer.Rename(ctx, dir, prefix)
			if err != nil {
				if dataset.KindOf(err) == dataset.KindCanceled {
					return nil
				}
				return err
			}
			ui.PrintResult(w, res)
			return nil
		})
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period before normalizing (default from watch.debounce)")
}
