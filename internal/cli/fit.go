package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pricetag/internal/layout"
)

func newFitCmd(o *options) *cobra.Command {
	var width float64
	cmd := &cobra.Command{
		Use:   "fit <product name>",
		Short: "Preview how a product name is laid out on a tag",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fitter := o.cfg.Fitter(layout.GoBold())
			if width <= 0 {
				width = o.cfg.Sheet().MaxTextWidth() / layout.Inch
			}
			lay := fitter.Fit(strings.Join(args, " "), width*layout.Inch)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%dpt, %d line(s)", lay.FontSize, len(lay.Lines))
			if lay.Overflow {
				fmt.Fprint(w, ", overflows")
			}
			fmt.Fprintln(w)
			for _, line := range lay.Lines {
				fmt.Fprintf(w, "  %s  (%.2fin)\n", line, fitter.Measurer.TextWidth(line, float64(lay.FontSize))/layout.Inch)
			}
			return nil
		},
	}
	cmd.Flags().Float64VarP(&width, "width", "w", 0, "Printable width in inches (default: tag width less padding)")
	return cmd
}
