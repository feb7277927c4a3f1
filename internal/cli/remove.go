package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <n>",
		Aliases: []string{"rm"},
		Short:   "Remove record n",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			s, f, err := o.openSession()
			if err != nil {
				return err
			}
			var label string
			if recs := s.Records(); i < len(recs) {
				label = recs[i].Label()
			}
			if err := s.Remove(i); err != nil {
				return err
			}
			if err := o.saveSession(s, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed #%d %s\n", i+1, label)
			return nil
		},
	}
}
