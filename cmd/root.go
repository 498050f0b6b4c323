package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/notion-export/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "notion-export",
	Short: "Extract Notion databases and users into flat tables",
	Long:  "Pulls a Notion database (or the workspace user list) through the API, flattens typed property values, and writes a CSV, XLSX or SQLite table.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
