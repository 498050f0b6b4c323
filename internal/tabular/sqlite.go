package tabular

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

var columnNameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_]+`)

// columnName flattens a ColumnKey into a SQLite identifier: lowercased,
// non-alphanumerics collapsed to underscores, sub-label appended.
func columnName(k ColumnKey) string {
	name := k.Name
	if k.Sub != "" {
		name += "_" + k.Sub
	}
	name = columnNameSanitizer.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(name, "_")
}

// WriteSQLite writes the table into a SQLite database at dsn, creating
// tableName with TEXT-affinity columns. nil and Missing cells are stored
// as NULL; numbers and booleans keep their native storage class.
func WriteSQLite(ctx context.Context, dsn, tableName string, t *Table) error {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return eris.Wrap(err, "sqlite: open")
	}
	defer db.Close() //nolint:errcheck

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}

	cols := make([]string, len(t.Columns))
	placeholders := make([]string, len(t.Columns))
	for i, k := range t.Columns {
		cols[i] = fmt.Sprintf("%q TEXT", columnName(k))
		placeholders[i] = "?"
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %q (%s)", tableName, strings.Join(cols, ", "))
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return eris.Wrapf(err, "sqlite: create table %s", tableName)
	}

	stmt, err := db.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %q VALUES (%s)", tableName, strings.Join(placeholders, ", "),
	))
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close() //nolint:errcheck

	for _, row := range t.Rows {
		args := make([]any, len(row))
		for i, v := range row {
			args[i] = sqliteValue(v)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return eris.Wrap(err, "sqlite: insert row")
		}
	}

	return nil
}

// sqliteValue maps a cell to its SQLite storage value.
func sqliteValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case missing:
		return nil
	case float64:
		return val
	case bool:
		return val
	default:
		return FormatValue(v)
	}
}
