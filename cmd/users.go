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
	usersFormat string
	usersOut    string
	usersTable  string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Export all workspace users as a flat table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if cmd.Flags().Changed("format") {
			cfg.Export.Format = usersFormat
		}
		if cmd.Flags().Changed("out") {
			cfg.Export.Out = usersOut
		}
		if cmd.Flags().Changed("table") {
			cfg.Export.Table = usersTable
		} else if cfg.Export.Table == "notion_export" {
			cfg.Export.Table = "notion_users"
		}
		if err := config.Validate(cfg, "users"); err != nil {
			return err
		}

		client := notion.NewClient(cfg.Notion.Token, notion.WithRateLimit(cfg.Notion.RateLimit))

		table, err := extract.Users(ctx, client)
		if err != nil {
			return eris.Wrap(err, "export users")
		}

		if err := writeTable(ctx, table, cfg.Export.Format, cfg.Export.Out, cfg.Export.Table); err != nil {
			return eris.Wrap(err, "write output")
		}

		zap.L().Info("users export complete",
			zap.Int("rows", len(table.Rows)),
			zap.String("format", cfg.Export.Format),
		)
		return nil
	},
}

func init() {
	usersCmd.Flags().StringVar(&usersFormat, "format", "csv", "output format: csv, xlsx or sqlite")
	usersCmd.Flags().StringVar(&usersOut, "out", "", "output path (csv defaults to stdout)")
	usersCmd.Flags().StringVar(&usersTable, "table", "notion_users", "table name for sqlite / sheet name for xlsx")
	rootCmd.AddCommand(usersCmd)
}
