package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/aki/dsrename/internal/cli/ui"
)

var planCmd = &cobra.Command{
	Use:   "plan <dir> <prefix>",
	Short: "Show the rename plan without touching any file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := absDir(args[0])
		if err != nil {
			return err
		}
		plan, err := newRenamer(sortOrder()).Plan(dir, args[1])
		if err != nil {
			return err
		}
		return output(cmd, plan, func(w io.Writer) { ui.PrintPlan(w, plan) })
	},
}
