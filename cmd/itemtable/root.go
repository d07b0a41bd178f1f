package main

import (
	"fmt"
	"log/slog"
	"os"

	_ "github.com/JonMunkholm/itemtable/internal/catalog/demo" // Register demo tables
	"github.com/JonMunkholm/itemtable/internal/config"
	"github.com/JonMunkholm/itemtable/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// cli holds state shared by every subcommand once the root has run.
type cli struct {
	envFile  string
	logLevel string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "itemtable",
		Short: "Render, browse and serve declarative item tables",
		Long: `itemtable renders tables described by field lists and row data.

Tables come from the built-in catalog or from a JSON file given on the
command line. They can be printed, browsed in the terminal or served over
HTTP with a JSON API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init()
		},
	}

	root.PersistentFlags().StringVar(&c.envFile, "env-file", "", "load environment from this file (default .env when present)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")

	root.AddCommand(
		newListCmd(c),
		newRenderCmd(c),
		newBrowseCmd(c),
		newServeCmd(c),
	)
	return root
}

func (c *cli) init() error {
	if c.envFile != "" {
		if err := godotenv.Load(c.envFile); err != nil {
			return fmt.Errorf("load %s: %w", c.envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}
	c.cfg = cfg

	// stdout belongs to command output
	c.logger = logging.SetupWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	return nil
}
