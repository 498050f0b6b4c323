package tabular

// Table is the terminal artifact of an extraction: an ordered set of
// columns and one row per source record. Cells whose column is absent
// from the originating record hold the Missing marker.
type Table struct {
	// Columns is the union of all record keys in first-seen order.
	Columns []ColumnKey

	// Rows holds one cell slice per record, aligned with Columns.
	Rows [][]any

	// Hierarchical reports whether any column key carries a sub-label,
	// in which case every header is rendered as a (name, sub) pair.
	Hierarchical bool
}

// FromRecords assembles a table from flattened records in two passes:
// first the ordered union of all keys (detecting hierarchical keys),
// then row materialization with Missing markers for absent keys.
// Schemas may vary across records; a missing column is not an error.
func FromRecords(records []*Record) *Table {
	t := &Table{}

	seen := make(map[ColumnKey]struct{})
	for _, rec := range records {
		for _, k := range rec.Keys() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			t.Columns = append(t.Columns, k)
			if k.Sub != "" {
				t.Hierarchical = true
			}
		}
	}

	t.Rows = make([][]any, 0, len(records))
	for _, rec := range records {
		row := make([]any, len(t.Columns))
		for i, k := range t.Columns {
			if v, ok := rec.Value(k); ok {
				row[i] = v
			} else {
				row[i] = Missing
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}

// Headers returns the column headers as (name, sub) pairs. For a
// non-hierarchical table every sub is empty.
func (t *Table) Headers() (names, subs []string) {
	names = make([]string, len(t.Columns))
	subs = make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
		subs[i] = c.Sub
	}
	return names, subs
}
