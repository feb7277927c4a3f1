package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSelectCmd(o *options) *cobra.Command {
	var all, off bool
	cmd := &cobra.Command{
		Use:   "select [n...]",
		Short: "Choose which records print",
		Long: `Select records for printing by number, or every record with --all.
--off deselects instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) > 0) {
				return fmt.Errorf("pass record numbers or --all")
			}
			s, f, err := o.openSession()
			if err != nil {
				return err
			}

			if all {
				s.SelectAll(!off)
			}
			for _, arg := range args {
				i, err := parseIndex(arg)
				if err != nil {
					return err
				}
				if err := s.SetSelected(i, !off); err != nil {
					return err
				}
			}
			if err := o.saveSession(s, f); err != nil {
				return err
			}

			selected, blocked := 0, 0
			for _, r := range s.Records() {
				if !r.Selected {
					continue
				}
				selected++
				if !r.Complete() {
					blocked++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d record(s) selected", selected)
			if blocked > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), ", %d incomplete and will not print", blocked)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Every record")
	cmd.Flags().BoolVar(&off, "off", false, "Deselect instead of select")
	return cmd
}
