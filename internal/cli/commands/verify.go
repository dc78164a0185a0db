package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aki/dsrename/internal/cli/ui"
	"github.com/aki/dsrename/internal/core/dataset"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <dir> <prefix>",
	Short: "Check that a directory holds exactly <prefix>1..N",
	Long: `Check that every eligible file in <dir> is named <prefix><n><ext> with
n running from 1 to the file count, extensions normalized, and no
intermediate names left behind by an interrupted run. Exits non-zero
when the directory is not normalized.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := absDir(args[0])
		if err != nil {
			return err
		}
		report, err := dataset.Verify(dir, args[1])
		if err != nil {
			return err
		}

		type verifyOutput struct {
			*dataset.Report
			Normalized bool `json:"normalized"`
		}
		if err := output(cmd, verifyOutput{report, report.Normalized()}, func(w io.Writer) { ui.PrintReport(w, report) }); err != nil {
			return err
		}
		if !report.Normalized() {
			return fmt.Errorf("%s is not normalized", dir)
		}
		return nil
	},
}
