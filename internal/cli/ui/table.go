package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
)

// NewTable creates a new table with consistent styling writing to w
func NewTable(w io.Writer, headers ...interface{}) table.Table {
	tbl := table.New(headers...)

	// Header formatters break the layout, so only the first column is styled
	tbl.WithFirstColumnFormatter(func(format string, vals ...interface{}) string {
		return BoldStyle.Render(fmt.Sprintf(format, vals...))
	})

	tbl.WithPadding(2)

	// lipgloss.Width ignores ANSI codes
	tbl.WithWidthFunc(lipgloss.Width)
	tbl.WithWriter(w)

	return tbl
}

// PrintSectionHeader prints a consistent section header
func PrintSectionHeader(w io.Writer, icon string, title string, count int) {
	fmt.Fprintf(w, "\n%s %s (%d)\n", icon, title, count)
}
