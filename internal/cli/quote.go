package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rpggio/quotedesk/internal/domain/proposal"
	"github.com/spf13/cobra"
)

func newQuoteCmd(st *state) *cobra.Command {
	var specs []string
	cmd := &cobra.Command{
		Use:     "quote",
		Short:   "Price product lines without creating a proposal",
		Example: "  quotedesk quote --line 1=4 --line 3=1",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := parseQuoteLines(specs)
			if err != nil {
				return err
			}
			d, err := st.app.Console.Proposals().Quote(cmd.Context(), lines)
			if err != nil {
				return err
			}

			tbl := newTable()
			tbl.AddRow("ID", "PRODUCT", "UNIT PRICE", "QTY", "SUBTOTAL")
			for _, l := range d.Lines() {
				tbl.AddRow(l.ProductID, l.Name,
					fmt.Sprintf("%.2f", l.UnitPrice),
					strconv.FormatFloat(l.Quantity, 'f', -1, 64),
					fmt.Sprintf("%.2f", l.Subtotal()))
			}
			out := cmd.OutOrStdout()
			if err := printTable(out, tbl); err != nil {
				return err
			}
			_, err = totalColor.Fprintf(out, "\nTotal %.2f\n", d.Total())
			return err
		},
	}
	cmd.Flags().StringArrayVar(&specs, "line", nil, "Product line as <product id>=<quantity> (repeatable)")
	return cmd
}

func parseQuoteLines(specs []string) ([]proposal.QuoteLine, error) {
	lines := make([]proposal.QuoteLine, 0, len(specs))
	for _, spec := range specs {
		idText, qty, ok := strings.Cut(spec, "=")
		if !ok {
			qty = "1"
		}
		id, err := strconv.ParseInt(strings.TrimSpace(idText), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --line %q: product id must be a number", spec)
		}
		lines = append(lines, proposal.QuoteLine{ProductID: id, Quantity: strings.TrimSpace(qty)})
	}
	return lines, nil
}
