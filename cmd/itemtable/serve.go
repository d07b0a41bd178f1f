package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/itemtable/internal/app"
	"github.com/JonMunkholm/itemtable/internal/web"
	"github.com/spf13/cobra"
)

func newServeCmd(c *cli) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the table catalog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			pool, err := app.OpenPool(ctx, cfg.Database)
			if err != nil {
				return err
			}
			if pool != nil {
				defer pool.Close()
			}

			events := web.NewEventLog(cfg.Server.EventLogSize, c.logger)
			tables := app.NewManager(cfg, pool, events.Notifier, c.logger)
			server := web.NewServer(cfg, tables, events)

			errCh := make(chan error, 1)
			go func() { errCh <- server.Start(cfg.Server.Addr()) }()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			c.logger.Info("shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return err
			}
			return tables.Drain(shutdownCtx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides SERVER_PORT)")
	return cmd
}
