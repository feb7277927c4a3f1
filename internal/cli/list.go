package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pricetag/internal/catalog"
)

func newListCmd(o *options) *cobra.Command {
	var incompleteOnly bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List session records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := o.openSession()
			if err != nil {
				return err
			}
			recs := s.Records()
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No records. Use 'pricetag scan' or 'pricetag add'.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tSEL\tNAME\tPRICE\tSKU\tMISSING\tSOURCE")
			for i, r := range recs {
				if incompleteOnly && r.Complete() {
					continue
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					i+1, check(r.Selected), r.ProductName, r.Price, r.SKU, r.Missing, source(r))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&incompleteOnly, "incomplete", false, "Only records with missing fields")
	return cmd
}

func check(b bool) string {
	if b {
		return "[x]"
	}
	return "[ ]"
}

func source(r catalog.Record) string {
	if r.Origin == nil {
		return "manual"
	}
	return r.Origin.String()
}

// parseIndex converts a 1-based record number to an index.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid record number %q", arg)
	}
	return n - 1, nil
}
