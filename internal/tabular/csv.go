package tabular

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"
)

// WriteCSV writes the table to w as CSV. A hierarchical table gets two
// header rows (property names, then sub-labels); otherwise one.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)

	names, subs := t.Headers()
	if err := cw.Write(names); err != nil {
		return eris.Wrap(err, "csv: write header")
	}
	if t.Hierarchical {
		if err := cw.Write(subs); err != nil {
			return eris.Wrap(err, "csv: write sub header")
		}
	}

	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = FormatValue(v)
		}
		if err := cw.Write(cells); err != nil {
			return eris.Wrap(err, "csv: write row")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "csv: flush")
}
