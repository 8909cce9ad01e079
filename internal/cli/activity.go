package cli

import (
	"time"

	"github.com/rpggio/quotedesk/internal/domain/activity"
	"github.com/spf13/cobra"
)

func newActivityCmd(st *state) *cobra.Command {
	var (
		limit    int
		typ      string
		resource string
	)
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent console activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := activity.ListActivityOptions{Resource: resource, Limit: limit}
			if typ != "" {
				t := activity.ActivityType(typ)
				opts.ActivityType = &t
			}
			entries, err := st.app.Activity.GetRecentActivity(cmd.Context(), opts)
			if err != nil {
				return err
			}

			tbl := newTable()
			tbl.AddRow("WHEN", "TYPE", "RESOURCE", "SUMMARY")
			for _, e := range entries {
				tbl.AddRow(e.CreatedAt.Local().Format(time.DateTime), e.ActivityType, e.Resource, e.Summary)
			}
			return printTable(cmd.OutOrStdout(), tbl)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", activity.DefaultListLimit, "Maximum entries")
	cmd.Flags().StringVar(&typ, "type", "", "Only entries of this type, e.g. signed_in or record_created")
	cmd.Flags().StringVar(&resource, "resource", "", "Only entries for this resource")
	return cmd
}
