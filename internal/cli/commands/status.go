package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aki/dsrename/internal/cli/ui"
	"github.com/aki/dsrename/internal/core/dataset"
	"github.com/aki/dsrename/internal/core/journal"
	"github.com/aki/dsrename/internal/core/vcs"
)

var statusPrefix string

var statusCmd = &cobra.Command{
	Use:   "status <dir>",
	Short: "Show naming, journal and git state of a dataset directory",
	Long: `Show whether <dir> is normalized, whether an interrupted journaled run
is pending for it, and its git state. The prefix defaults to the
directory's own name, matching the class layout.`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusPrefix, "prefix", "", "Expected prefix (default: directory name)")
}

type statusOutput struct {
	Report     *dataset.Report `json:"report"`
	Normalized bool            `json:"normalized"`
	Journal    string          `json:"journal,omitempty"`
	Git        *vcs.Status     `json:"git"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	dir, err := absDir(args[0])
	if err != nil {
		return err
	}
	prefix := statusPrefix
	if prefix == "" {
		prefix = filepath.Base(dir)
	}

	report, err := dataset.Verify(dir, prefix)
	if err != nil {
		return err
	}
	git, err := vcs.Inspect(dir)
	if err != nil {
		return err
	}

	out := statusOutput{Report: report, Normalized: report.Normalized(), Git: git}
	if path, err := journal.DefaultPath(journalDir(), dir); err == nil {
		if _, err := os.Stat(path); err == nil {
			out.Journal = path
		}
	}

	return output(cmd, out, func(w io.Writer) {
		fmt.Fprintf(w, "%s %s\n", ui.FolderIcon, ui.BoldStyle.Render(dir))
		ui.PrintReport(w, report)
		if out.Journal != "" {
			fmt.Fprintf(w, "   %s %s\n", ui.DimStyle.Render("Pending journal:"), out.Journal)
		}
		ui.PrintVCSStatus(w, git)
	})
}
