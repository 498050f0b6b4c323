package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/notion-export/internal/config"
	"github.com/sells-group/notion-export/internal/extract"
	"github.com/sells-group/notion-export/pkg/notion"
)

var (
	exportDB             string
	exportFormat         string
	exportOut            string
	exportTable          string
	exportDateHandler    string
	exportDateHandlerFor map[string]string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a Notion database as a flat table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		applyExportFlags(cmd)
		if err := config.Validate(cfg, "export"); err != nil {
			return err
		}

		client := notion.NewClient(cfg.Notion.Token, notion.WithRateLimit(cfg.Notion.RateLimit))

		table, err := extract.Database(ctx, client, cfg.Notion.DatabaseID, extract.DatabaseOptions{
			DefaultDateHandling: cfg.Export.DateHandler,
			DateHandling:        cfg.Export.DateHandlers,
			PageSize:            cfg.Notion.PageSize,
		})
		if err != nil {
			return eris.Wrap(err, "export database")
		}

		if err := writeTable(ctx, table, cfg.Export.Format, cfg.Export.Out, cfg.Export.Table); err != nil {
			return eris.Wrap(err, "write output")
		}

		zap.L().Info("export complete",
			zap.String("database", cfg.Notion.DatabaseID),
			zap.Int("rows", len(table.Rows)),
			zap.Int("columns", len(table.Columns)),
			zap.String("format", cfg.Export.Format),
		)
		return nil
	},
}

// applyExportFlags folds explicitly set flags over the loaded config.
func applyExportFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("db") {
		cfg.Notion.DatabaseID = exportDB
	}
	if cmd.Flags().Changed("format") {
		cfg.Export.Format = exportFormat
	}
	if cmd.Flags().Changed("out") {
		cfg.Export.Out = exportOut
	}
	if cmd.Flags().Changed("table") {
		cfg.Export.Table = exportTable
	}
	if cmd.Flags().Changed("date-handler") {
		cfg.Export.DateHandler = exportDateHandler
	}
	if cmd.Flags().Changed("date-handler-for") {
		cfg.Export.DateHandlers = exportDateHandlerFor
	}
}

func init() {
	exportCmd.Flags().StringVar(&exportDB, "db", "", "Notion database ID")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv, xlsx or sqlite")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (csv defaults to stdout)")
	exportCmd.Flags().StringVar(&exportTable, "table", "notion_export", "table name for sqlite / sheet name for xlsx")
	exportCmd.Flags().StringVar(&exportDateHandler, "date-handler", "", "default date handling: ignore_end, mangle or multiindex")
	exportCmd.Flags().StringToStringVar(&exportDateHandlerFor, "date-handler-for", nil, "per-property date handling, e.g. --date-handler-for Due=mangle")
	rootCmd.AddCommand(exportCmd)
}
