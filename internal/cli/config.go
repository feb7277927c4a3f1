package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"pricetag/internal/config"
)

func newConfigCmd(o *options) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if save {
				path := o.configPath
				if path == "" {
					path = config.DefaultPath()
				}
				if err := o.cfg.Save(path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
				return nil
			}
			data, err := json.MarshalIndent(o.cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Write the effective configuration to the config file")
	return cmd
}
