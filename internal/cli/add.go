package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pricetag/internal/catalog"
)

func newAddCmd(o *options) *cobra.Command {
	var rec catalog.Record
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a tag by hand",
		Long:  "Add a manually entered record. Manual records are selected for printing.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, f, err := o.openSession()
			if err != nil {
				return err
			}
			i, err := s.AddManual(rec)
			if err != nil {
				return err
			}
			if err := o.saveSession(s, f); err != nil {
				return err
			}
			added := s.Records()[i]
			fmt.Fprintf(cmd.OutOrStdout(), "Added #%d %s\n", i+1, added.Label())
			if !added.Complete() {
				fmt.Fprintf(cmd.OutOrStdout(), "Missing %s; it will not print until completed\n", added.Missing)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&rec.ProductName, "name", "n", "", "Product name")
	cmd.Flags().StringVarP(&rec.Price, "price", "p", "", "Price, e.g. 499.99")
	cmd.Flags().StringVar(&rec.SKU, "sku", "", "SKU / model number")
	cmd.Flags().StringVarP(&rec.Description, "description", "d", "", "Description or category")
	return cmd
}
