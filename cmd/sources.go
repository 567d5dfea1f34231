package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kookmin-feed/notice-crawler/internal/adapter"
)

func newSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "Lists the notice boards in the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMODE\tNAME\tURL")
			for _, src := range adapter.Catalog() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", src.ID, src.Mode, src.Name, src.URL)
			}
			return w.Flush()
		},
	}
}
