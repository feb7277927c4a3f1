package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pricetag/internal/catalog"
)

func newImportCmd(o *options) *cobra.Command {
	var csvFile string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Add records from a CSV file",
		Long: `Import appends records from a CSV file with the export header
(productName, price, sku, ...). Imported records count as manual entries and
are selected for printing. Rows with an invalid price are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(csvFile)
			if err != nil {
				return err
			}
			defer in.Close()

			recs, err := catalog.ReadCSV(in)
			if err != nil {
				return fmt.Errorf("failed to parse CSV: %w", err)
			}

			s, f, err := o.openSession()
			if err != nil {
				return err
			}
			added, skipped := 0, 0
			for i, rec := range recs {
				if _, err := s.AddManual(rec); err != nil {
					o.log.Warn("skipping CSV row", zap.Int("row", i+2), zap.Error(err))
					skipped++
					continue
				}
				added++
			}
			if err := o.saveSession(s, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d record(s) from %s", added, csvFile)
			if skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), ", skipped %d", skipped)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().StringVarP(&csvFile, "csv", "c", "", "CSV file to import (required)")
	cmd.MarkFlagRequired("csv")
	return cmd
}
