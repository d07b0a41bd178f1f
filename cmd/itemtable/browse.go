package main

import (
	"github.com/JonMunkholm/itemtable/internal/app"
	"github.com/JonMunkholm/itemtable/internal/application"
	"github.com/spf13/cobra"
)

func newBrowseCmd(c *cli) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse tables in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pool, err := app.OpenPool(ctx, c.cfg.Database)
			if err != nil {
				return err
			}
			if pool != nil {
				defer pool.Close()
			}

			events := &application.Events{}
			tables := app.NewManager(c.cfg, pool, events.Notifier, c.logger)
			return application.Run(ctx, tables, events, key)
		},
	}

	cmd.Flags().StringVarP(&key, "table", "t", "", "open this table directly")
	return cmd
}
