package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aki/dsrename/internal/core/classes"
	"github.com/aki/dsrename/internal/core/dataset"
	"github.com/aki/dsrename/internal/core/vcs"
)

// Print functions for consistent output

func Success(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", SuccessIcon, SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

func Info(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", InfoIcon, InfoStyle.Render(fmt.Sprintf(format, args...)))
}

func Warning(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", WarningIcon, WarningStyle.Render(fmt.Sprintf(format, args...)))
}

// PrintPlan displays the planned renames as a table
func PrintPlan(w io.Writer, plan *dataset.Plan) {
	if plan.Len() == 0 {
		Info(w, "No files to rename in %s", plan.Dir)
		return
	}

	tbl := NewTable(w, "#", "ORIGINAL", "FINAL", "STATE")
	for _, s := range plan.Steps {
		final := s.Final
		if s.Original == s.Final {
			final = DimStyle.Render(final + " (unchanged)")
		}
		tbl.AddRow(s.Index, s.Original, final, string(s.State))
	}

	PrintSectionHeader(w, FolderIcon, plan.Dir+" ("+string(plan.Order)+")", plan.Len())
	tbl.Print()
	fmt.Fprintln(w)
}

// PrintResult summarizes a completed rename
func PrintResult(w io.Writer, res *dataset.Result) {
	if res.Renamed == 0 {
		Info(w, "No files to rename in %s", res.Dir)
		return
	}
	first := res.Steps[0].Final
	last := res.Steps[len(res.Steps)-1].Final
	fmt.Fprintf(w, "%s %s %s\n", SuccessIcon,
		SuccessStyle.Render(fmt.Sprintf("Renamed %d files in %s", res.Renamed, res.Dir)),
		DimStyle.Render(fmt.Sprintf("(%s .. %s)", first, last)),
	)
}

// PrintReport displays a verification report
func PrintReport(w io.Writer, r *dataset.Report) {
	if r.Normalized() {
		fmt.Fprintf(w, "%s %s\n", SuccessIcon,
			SuccessStyle.Render(fmt.Sprintf("%s is normalized: %d files named %s1..%s%d", r.Dir, r.Total, r.Prefix, r.Prefix, r.Total)))
		return
	}

	fmt.Fprintf(w, "%s %s\n", WarningIcon,
		WarningStyle.Render(fmt.Sprintf("%s is not normalized (%d files)", r.Dir, r.Total)))
	printList(w, "Interrupted run leftovers:", r.Staged)
	printList(w, "Unexpected names:", r.Foreign)
	printList(w, "Extensions to normalize:", r.Denormalized)
	printList(w, "Missing numbers:", ints(r.Missing))
	printList(w, "Duplicate numbers:", ints(r.Duplicates))
}

func printList(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "   %s %s\n", DimStyle.Render(label), strings.Join(items, ", "))
}

func ints(ns []int) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = strconv.Itoa(n)
	}
	return out
}

// PrintClasses displays class directories as a table
func PrintClasses(w io.Writer, root string, list []classes.Class) {
	if len(list) == 0 {
		Info(w, "No classes found under %s", root)
		return
	}

	tbl := NewTable(w, "CLASS", "FILES", "NORMALIZED")
	for _, c := range list {
		state := SuccessStyle.Render("yes")
		if !c.Normalized {
			state = WarningStyle.Render("no")
		}
		tbl.AddRow(c.Name, c.Files, state)
	}

	PrintSectionHeader(w, FolderIcon, "Classes", len(list))
	tbl.Print()
	fmt.Fprintln(w)
}

// PrintOutcomes summarizes a normalize run over all classes
func PrintOutcomes(w io.Writer, outcomes []classes.Outcome) {
	tbl := NewTable(w, "CLASS", "FILES", "ACTION")
	for _, o := range outcomes {
		action := DimStyle.Render("already normalized")
		if !o.Skipped && o.Result != nil {
			action = SuccessStyle.Render(fmt.Sprintf("renamed %d", o.Result.Renamed))
		}
		tbl.AddRow(o.Class.Name, o.Class.Files, action)
	}
	PrintSectionHeader(w, FolderIcon, "Classes", len(outcomes))
	tbl.Print()
	fmt.Fprintln(w)
}

// PrintVCSStatus displays the version control state of a dataset directory
func PrintVCSStatus(w io.Writer, s *vcs.Status) {
	switch {
	case !s.InRepo:
		fmt.Fprintf(w, "   %s %s\n", DimStyle.Render("Git:"), "not a repository")
	case s.Clean:
		fmt.Fprintf(w, "   %s %s %s\n", DimStyle.Render("Git:"), SuccessStyle.Render("clean"), DimStyle.Render("("+s.Root+")"))
	default:
		fmt.Fprintf(w, "   %s %s\n", DimStyle.Render("Git:"),
			WarningStyle.Render(fmt.Sprintf("%d uncommitted changes", len(s.Dirty))))
		for _, p := range s.Dirty {
			fmt.Fprintf(w, "     %s\n", p)
		}
	}
}
