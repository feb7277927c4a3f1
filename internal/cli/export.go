package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pricetag/internal/catalog"
)

func newExportCmd(o *options) *cobra.Command {
	var csvFile string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export session records as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := o.openSession()
			if err != nil {
				return err
			}
			recs := s.Records()
			if csvFile == "-" {
				return catalog.WriteCSV(cmd.OutOrStdout(), recs)
			}
			if err := writeFile(csvFile, func(w io.Writer) error { return catalog.WriteCSV(w, recs) }); err != nil {
				return fmt.Errorf("failed to write CSV: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d record(s) to %s\n", len(recs), csvFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&csvFile, "csv", "c", "-", "CSV file to write, - for stdout")
	return cmd
}
