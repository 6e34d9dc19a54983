package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/roster/internal/person"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts per variant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := a.load()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "File:\t%s\n", a.store.Path())
			counts := reg.Counts()
			for _, k := range person.Kinds {
				fmt.Fprintf(w, "%s:\t%d\n", k, counts[k])
			}
			fmt.Fprintf(w, "Total:\t%d\n", reg.Len())

			if records := reg.All(); len(records) > 0 {
				lo, hi, sum := records[0].Age().Years(), records[0].Age().Years(), 0
				for _, rec := range records {
					y := rec.Age().Years()
					lo, hi, sum = min(lo, y), max(hi, y), sum+y
				}
				fmt.Fprintf(w, "Ages:\t%d-%d (mean %.1f)\n", lo, hi, float64(sum)/float64(len(records)))
			}
			return w.Flush()
		},
	}
}
