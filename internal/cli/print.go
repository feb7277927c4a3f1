package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newPrintCmd(o *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Render selected, complete records as a tag PDF",
		Long: `Print renders every selected record with no missing field onto 4x1.5in
tags, six per letter page. Selected records that are incomplete are listed
and left out. Nothing is written when no record can print.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := o.openSession()
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			report, genErr := s.Generate(&buf)
			w := cmd.OutOrStdout()
			for _, b := range report.Blocked {
				fmt.Fprintf(w, "blocked: %s\n", b)
			}
			if genErr != nil {
				return genErr
			}

			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(w, "Wrote %d tag(s) on %d page(s) to %s\n", report.Printed, report.Pages, out)
			if report.Overflow > 0 {
				fmt.Fprintf(w, "%d name(s) were too long and may overflow the tag\n", report.Overflow)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "tags.pdf", "Output PDF file")
	return cmd
}
