package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aki/dsrename/internal/cli/ui"
	"github.com/aki/dsrename/internal/core/classes"
)

var classesLabelsFile string

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "Work with a dataset root holding one directory per class",
}

var classesListCmd = &cobra.Command{
	Use:   "list <root>",
	Short: "List class directories and whether they are normalized",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := absDir(args[0])
		if err != nil {
			return err
		}
		list, err := classes.List(root)
		if err != nil {
			return err
		}
		return output(cmd, list, func(w io.Writer) { ui.PrintClasses(w, root, list) })
	},
}

var classesEnsureCmd = &cobra.Command{
	Use:   "ensure <root>",
	Short: "Create missing class directories with a placeholder image",
	Long: `Create a directory for every configured class label that does not exist
yet, each holding a black dummy.png so data loaders never see an empty
class. Labels come from --labels (one per line) or the 'classes' setting.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := absDir(args[0])
		if err != nil {
			return err
		}

		labels := cfg.Classes
		if classesLabelsFile != "" {
			if labels, err = classes.ReadLabels(classesLabelsFile); err != nil {
				return err
			}
		}
		if len(labels) == 0 {
			return fmt.Errorf("no class labels configured")
		}

		created, err := classes.Ensure(root, labels)
		if err != nil {
			return err
		}
		return output(cmd, map[string]interface{}{"root": root, "created": created}, func(w io.Writer) {
			if len(created) == 0 {
				ui.Info(w, "All %d classes already exist under %s", len(labels), root)
				return
			}
			for _, c := range created {
				ui.Success(w, "Created class %s", c)
			}
		})
	},
}

var classesNormalizeCmd = &cobra.Command{
	Use:   "normalize <root>",
	Short: "Rename every class directory using its own name as prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := commandContext(cmd)
		defer stop()

		root, err := absDir(args[0])
		if err != nil {
			return err
		}
		release, err := lockDir(ctx, root, false)
		if err != nil {
			return err
		}
		defer release()

		outcomes, err := classes.NormalizeAll(ctx, newRenamer(sortOrder()), root)
		if err != nil {
			return err
		}
		return output(cmd, outcomes, func(w io.Writer) { ui.PrintOutcomes(w, outcomes) })
	},
}

func init() {
	classesEnsureCmd.Flags().StringVar(&classesLabelsFile, "labels", "", "File with one class label per line")

	classesCmd.AddCommand(classesListCmd)
	classesCmd.AddCommand(classesEnsureCmd)
	classesCmd.AddCommand(classesNormalizeCmd)
}
