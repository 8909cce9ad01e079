package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

const maxCellWidth = 40

var (
	warnColor  = color.New(color.FgYellow)
	totalColor = color.New(color.Bold)
	faintColor = color.New(color.Faint)
)

func newTable() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = maxCellWidth
	return tbl
}

// addRow appends string cells to tbl.
func addRow(tbl *uitable.Table, cells []string) {
	row := make([]any, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	tbl.AddRow(row...)
}

func printTable(w io.Writer, tbl *uitable.Table) error {
	_, err := fmt.Fprintln(w, tbl)
	return err
}

func warnf(w io.Writer, format string, args ...any) {
	_, _ = warnColor.Fprintf(w, "warning: "+format+"\n", args...)
}
