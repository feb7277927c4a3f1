package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pricetag/internal/catalog"
)

func newEditCmd(o *options) *cobra.Command {
	values := map[catalog.Field]*string{
		catalog.FieldProductName: new(string),
		catalog.FieldPrice:       new(string),
		catalog.FieldSKU:         new(string),
		catalog.FieldDescription: new(string),
	}
	flagFor := map[catalog.Field]string{
		catalog.FieldProductName: "name",
		catalog.FieldPrice:       "price",
		catalog.FieldSKU:         "sku",
		catalog.FieldDescription: "description",
	}

	cmd := &cobra.Command{
		Use:   "edit <n>",
		Short: "Correct fields of record n",
		Long: `Edit one or more fields of a record. Prices must be positive numbers;
an invalid price is rejected and the previous value kept. The barcode always
follows the SKU.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			s, f, err := o.openSession()
			if err != nil {
				return err
			}

			changed := false
			for _, field := range []catalog.Field{catalog.FieldProductName, catalog.FieldSKU, catalog.FieldPrice, catalog.FieldDescription} {
				if !cmd.Flags().Changed(flagFor[field]) {
					continue
				}
				if err := s.Edit(i, field, *values[field]); err != nil {
					return fmt.Errorf("%s: %w", field, err)
				}
				changed = true
			}
			if !changed {
				return fmt.Errorf("nothing to change; pass --name, --price, --sku or --description")
			}
			if err := o.saveSession(s, f); err != nil {
				return err
			}

			rec := s.Records()[i]
			fmt.Fprintf(cmd.OutOrStdout(), "#%d %s price %s barcode %s\n", i+1, rec.Label(), rec.Price, rec.Barcode)
			if !rec.Complete() {
				fmt.Fprintf(cmd.OutOrStdout(), "Still missing %s\n", rec.Missing)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(values[catalog.FieldProductName], "name", "n", "", "Product name")
	cmd.Flags().StringVarP(values[catalog.FieldPrice], "price", "p", "", "Price")
	cmd.Flags().StringVar(values[catalog.FieldSKU], "sku", "", "SKU / model number")
	cmd.Flags().StringVarP(values[catalog.FieldDescription], "description", "d", "", "Description")
	return cmd
}
