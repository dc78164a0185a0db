package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/aki/dsrename/internal/cli/ui"
	"github.com/aki/dsrename/internal/core/dataset"
	"github.com/aki/dsrename/internal/core/journal"
)

var resumeCmd = &cobra.Command{
	Use:   "resume <journal>",
	Short: "Complete a rename interrupted while journaling",
	Long: `Load a journal written by 'dsrename rename --journal' and finish the
recorded plan. Files already staged or renamed are detected and skipped, so
resume is safe to repeat. The journal is removed on success.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := commandContext(cmd)
		defer stop()

		store := journal.NewStore(args[0])
		j, err := store.Load(ctx)
		if err != nil {
			return err
		}

		release, err := lockDir(ctx, j.Plan.Dir, false)
		if err != nil {
			return err
		}
		defer release()

		order := j.Plan.Order
		if order == "" {
			order = sortOrder()
		}
		res, err := newRenamer(order, dataset.WithRecorder(store)).Resume(ctx, &j.Plan)
		if err != nil {
			return err
		}
		return output(cmd, res, func(w io.Writer) { ui.PrintResult(w, res) })
	},
}
