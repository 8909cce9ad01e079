package cli

import (
	"strings"

	"github.com/rpggio/quotedesk/internal/console"
	"github.com/rpggio/quotedesk/internal/domain/catalog"
	"github.com/rpggio/quotedesk/internal/domain/viewstate"
	"github.com/spf13/cobra"
)

func newListCmd(st *state) *cobra.Command {
	var (
		filter   string
		sortSpec string
		page     int
		pageSize int
	)
	cmd := &cobra.Command{
		Use:       "list <resource>",
		Short:     "List proposals, subscriptions, invoices, customers or products",
		Args:      cobra.ExactArgs(1),
		ValidArgs: resourceNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := catalog.ParseResource(args[0])
			if err != nil {
				return err
			}
			v, err := st.app.Console.FreshView(r)
			if err != nil {
				return err
			}
			if pageSize > 0 {
				v.SetPageSize(pageSize)
			}
			if err := v.Refresh(cmd.Context()); err != nil {
				warnf(cmd.ErrOrStderr(), "could not load %s: %v", r, err)
			}

			v.SetFilter(filter)
			if sortSpec != "" {
				col, dir := parseSortSpec(sortSpec)
				if err := console.ApplySort(v, col, dir); err != nil {
					return err
				}
			}
			if page > 0 {
				v.SetPage(page - 1)
			}
			return printView(cmd, v)
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "Case-insensitive match on the title column")
	cmd.Flags().StringVar(&sortSpec, "sort", "", "Sort as column[:asc|desc|none]")
	cmd.Flags().IntVar(&page, "page", 1, "1-based page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Rows per page (defaults to ui.page_size)")
	return cmd
}

func resourceNames() []string {
	var names []string
	for _, r := range catalog.Resources() {
		names = append(names, string(r))
	}
	return names
}

// parseSortSpec splits "col:dir". A bare column sorts ascending.
func parseSortSpec(spec string) (string, viewstate.Direction) {
	col, dir, _ := strings.Cut(spec, ":")
	return col, viewstate.ParseDirection(strings.ToLower(dir))
}

func printView(cmd *cobra.Command, v console.View) error {
	out := cmd.OutOrStdout()
	tbl := newTable()

	cols := v.Columns()
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = strings.ToUpper(c.Title)
		if s := v.Sort(); s.ColumnKey == c.Key {
			switch s.Direction {
			case viewstate.DirectionAscending:
				header[i] += " ^"
			case viewstate.DirectionDescending:
				header[i] += " v"
			}
		}
	}
	addRow(tbl, header)
	for _, row := range v.Rows() {
		addRow(tbl, row)
	}
	if err := printTable(out, tbl); err != nil {
		return err
	}

	_, err := faintColor.Fprintf(out, "\npage %d/%d  %d of %d %s\n",
		v.Page()+1, max(v.PageCount(), 1), v.Len(), v.Total(), v.Resource())
	return err
}
