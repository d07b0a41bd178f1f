package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/JonMunkholm/itemtable/internal/app"
	"github.com/JonMunkholm/itemtable/internal/catalog/demo"
	"github.com/JonMunkholm/itemtable/internal/source"
	"github.com/JonMunkholm/itemtable/internal/table"
	"github.com/JonMunkholm/itemtable/internal/termview"
	"github.com/spf13/cobra"
)

type renderFlags struct {
	table   string
	fields  []string
	file    string
	path    string
	minRows int
	format  string
}

func newRenderCmd(c *cli) *cobra.Command {
	f := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print a table once",
		Example: `  itemtable render --table products
  itemtable render --fields __sequence,code,price --file rows.json --path items --min-rows 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := f.view(cmd, c)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch f.format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(v)
			case "text":
				fmt.Fprintln(out, termview.Render(v, termview.Options{Styles: termview.DefaultStyles(), Cursor: -1}))
				return nil
			default:
				return fmt.Errorf("unknown format %q (want text or json)", f.format)
			}
		},
	}

	cmd.Flags().StringVarP(&f.table, "table", "t", "", "registered table key")
	cmd.Flags().StringSliceVar(&f.fields, "fields", nil, "comma-separated field names")
	cmd.Flags().StringVar(&f.file, "file", "", "JSON file holding the rows")
	cmd.Flags().StringVar(&f.path, "path", "", "path of the row array inside the JSON document")
	cmd.Flags().IntVar(&f.minRows, "min-rows", -1, "pad the body to this many rows")
	cmd.Flags().StringVar(&f.format, "format", "text", "output format: text or json")
	cmd.MarkFlagsMutuallyExclusive("table", "fields")
	cmd.MarkFlagsMutuallyExclusive("table", "file")
	return cmd
}

func (f *renderFlags) view(cmd *cobra.Command, c *cli) (table.View, error) {
	ctx := cmd.Context()

	if f.table != "" {
		tables := app.NewManager(c.cfg, nil, nil, c.logger)
		in, err := tables.Instance(ctx, f.table)
		if err != nil {
			return table.View{}, err
		}
		if f.minRows >= 0 {
			in.Table.SetOptions(map[string]any{"minRows": f.minRows})
		}
		return in.Table.Render(), nil
	}

	if len(f.fields) == 0 {
		return table.View{}, errors.New("either --table or --fields is required")
	}

	var rows []table.Row
	if f.file != "" {
		var err error
		src := source.JSONFile{File: f.file, Path: f.path, MaxSize: c.cfg.Source.MaxFileSize}
		if rows, err = src.Rows(ctx); err != nil {
			return table.View{}, err
		}
	}

	opts := app.Defaults(c.cfg.Table)
	if f.minRows >= 0 {
		opts.MinRows = f.minRows
	}
	t := table.New(table.Config{
		Fields:    table.FieldNames(f.fields...),
		Rows:      rows,
		Options:   opts,
		Callbacks: demo.Callbacks,
		Logger:    c.logger,
	})
	return t.Render(), nil
}
