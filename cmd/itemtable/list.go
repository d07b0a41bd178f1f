package main

import (
	"fmt"

	"github.com/JonMunkholm/itemtable/internal/catalog"
	"github.com/spf13/cobra"
)

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, group := range catalog.Groups() {
				fmt.Fprintln(out, group)
				for _, def := range catalog.ByGroup(group) {
					fmt.Fprintf(out, "  %-12s %s\n", def.Info.Key, def.Info.Description)
				}
			}
			return nil
		},
	}
}
