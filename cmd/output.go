package main

import (
	"context"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/notion-export/internal/tabular"
)

// writeTable sends a finished table to the configured sink. CSV with no
// output path goes to stdout.
func writeTable(ctx context.Context, t *tabular.Table, format, out, tableName string) error {
	switch format {
	case "csv":
		if out == "" {
			return tabular.WriteCSV(os.Stdout, t)
		}
		f, err := os.Create(out)
		if err != nil {
			return eris.Wrapf(err, "create %s", out)
		}
		if err := tabular.WriteCSV(f, t); err != nil {
			f.Close() //nolint:errcheck,gosec
			return err
		}
		return eris.Wrapf(f.Close(), "close %s", out)
	case "xlsx":
		return tabular.WriteXLSX(out, tableName, t)
	case "sqlite":
		return tabular.WriteSQLite(ctx, out, tableName, t)
	default:
		return eris.Errorf("unknown output format %q", format)
	}
}
