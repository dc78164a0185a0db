package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aki/dsrename/internal/cli/ui"
	"github.com/aki/dsrename/internal/core/dataset"
	"github.com/aki/dsrename/internal/core/journal"
	"github.com/aki/dsrename/internal/core/vcs"
)

var (
	renameDryRun       bool
	renameJournal      bool
	renameRequireClean bool
	renameLock         bool
)

var renameCmd = &cobra.Command{
	Use:   "rename <dir> <prefix>",
	Short: "Rename all files in a directory to <prefix>1..N",
	Long: `Rename every regular file in <dir> (except .keep) to <prefix><n><ext>,
numbering from 1 in sorted order. Extensions are lower-cased and .jpeg
becomes .jpg. The directory is not recursed into.`,
	Example: `  # Rename the crow class
  dsrename rename data/crow crow

  # Show what would happen
  dsrename rename data/crow crow --dry-run

  # Keep a journal so an interrupted run can be resumed
  dsrename rename data/crow crow --journal`,
	Args: cobra.ExactArgs(2),
	RunE: runRename,
}

func init() {
	renameCmd.Flags().BoolVarP(&renameDryRun, "dry-run", "n", false, "Print the plan without renaming")
	renameCmd.Flags().BoolVar(&renameJournal, "journal", false, "Record progress so an interrupted run can be resumed")
	renameCmd.Flags().BoolVar(&renameRequireClean, "require-clean", false, "Refuse to run when the directory has uncommitted git changes")
	renameCmd.Flags().BoolVar(&renameLock, "lock", false, "Take an advisory lock on the directory")
}

func runRename(cmd *cobra.Command, args []string) error {
	ctx, stop := commandContext(cmd)
	defer stop()

	dir, err := absDir(args[0])
	if err != nil {
		return err
	}
	prefix := args[1]

	if renameRequireClean {
		if err := requireClean(dir); err != nil {
			return err
		}
	}

	if renameDryRun {
		plan, err := newRenamer(sortOrder()).Plan(dir, prefix)
		if err != nil {
			return err
		}
		return output(cmd, plan, func(w io.Writer) { ui.PrintPlan(w, plan) })
	}

	release, err := lockDir(ctx, dir, renameLock)
	if err != nil {
		return err
	}
	defer release()

	var opts []dataset.Option
	var store *journal.Store
	if renameJournal || cfg.Journal.Dir != "" {
		path, err := journal.DefaultPath(journalDir(), dir)
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("an earlier run on %s did not finish; complete it with 'dsrename resume %s'", dir, path)
		}
		store = journal.NewStore(path)
		opts = append(opts, dataset.WithRecorder(store))
	}

	res, err := newRenamer(sortOrder(), opts...).Rename(ctx, dir, prefix)
	if err != nil {
		if store != nil {
			if _, serr := os.Stat(store.Path()); serr == nil {
				ui.Warning(cmd.ErrOrStderr(), "progress saved; resume with 'dsrename resume %s'", store.Path())
			}
		}
		return err
	}
	return output(cmd, res, func(w io.Writer) { ui.PrintResult(w, res) })
}

// requireClean fails unless dir is inside a git repository with no
// uncommitted changes below it.
func requireClean(dir string) error {
	st, err := vcs.Inspect(dir)
	if err != nil {
		return err
	}
	if !st.InRepo {
		return fmt.Errorf("--require-clean: %s is not inside a git repository", dir)
	}
	if !st.Clean {
		return fmt.Errorf("--require-clean: %s has %d uncommitted changes; commit or stash them first", dir, len(st.Dirty))
	}
	return nil
}
