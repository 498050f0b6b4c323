package tabular

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// WriteXLSX writes the table to an XLSX file with a single sheet.
// Numbers and booleans are written as native cell types; everything
// else is formatted text. Hierarchical tables get two header rows.
func WriteXLSX(path, sheetName string, t *Table) error {
	if sheetName == "" {
		sheetName = "Export"
	}

	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrapf(err, "xlsx: add sheet %s", sheetName)
	}

	names, subs := t.Headers()
	writeHeaderRow(sheet, names)
	if t.Hierarchical {
		writeHeaderRow(sheet, subs)
	}

	for _, row := range t.Rows {
		r := sheet.AddRow()
		for _, v := range row {
			cell := r.AddCell()
			switch val := v.(type) {
			case float64:
				cell.SetFloat(val)
			case bool:
				cell.SetBool(val)
			default:
				cell.SetString(FormatValue(v))
			}
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "xlsx: save %s", path)
	}
	return nil
}

func writeHeaderRow(sheet *xlsx.Sheet, cells []string) {
	row := sheet.AddRow()
	for _, c := range cells {
		row.AddCell().SetString(c)
	}
}
