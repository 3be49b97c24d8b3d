package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/placement-prep/internal/rules"
)

func newDomainsCmd(_ *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "domains",
		Short: "List the available rule domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			domains := rules.AvailableDomains()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), map[string][]string{"domains": domains})
			}
			for _, d := range domains {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of one domain per line")
	return cmd
}
