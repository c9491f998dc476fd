// Package xls decodes legacy BIFF workbooks (.xls) into a header row and
// positional data rows. Old purchase archives predate OOXML, so the legacy
// reader stays supported alongside the xlsx path.
package xls

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/extrame/xls"
)

var sheetPreferences = []string{"union", "doe", "dop"}

// Decode opens a legacy workbook from memory. Sheet selection follows the
// same preference markers as the xlsx decoder.
func Decode(content []byte) (headers []string, rows [][]string, err error) {
	wb, err := xls.OpenReader(bytes.NewReader(content), "cp1252")
	if err != nil {
		return nil, nil, fmt.Errorf("no se pudo abrir el libro: %w", err)
	}

	sheet := selectSheet(wb)
	if sheet == nil {
		return nil, nil, fmt.Errorf("el libro no contiene hojas")
	}

	all := readRows(sheet)
	if len(all) < 2 {
		return nil, nil, fmt.Errorf("la hoja %q no contiene filas de datos", sheet.Name)
	}

	headers = all[0]
	rows = all[1:]
	return headers, rows, nil
}

func selectSheet(wb *xls.WorkBook) *xls.WorkSheet {
	var first *xls.WorkSheet
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		if first == nil {
			first = sheet
		}
		lower := strings.ToLower(sheet.Name)
		for _, marker := range sheetPreferences {
			if strings.Contains(lower, marker) {
				return sheet
			}
		}
	}
	return first
}

func readRows(sheet *xls.WorkSheet) [][]string {
	out := make([][]string, 0, int(sheet.MaxRow)+1)
	for ri := 0; ri <= int(sheet.MaxRow); ri++ {
		row := sheet.Row(ri)
		if row == nil {
			continue
		}

		cells := make([]string, 0, row.LastCol()+1)
		empty := true
		for ci := 0; ci <= row.LastCol(); ci++ {
			v := strings.TrimSpace(row.Col(ci))
			if v != "" {
				empty = false
			}
			cells = append(cells, v)
		}
		if empty {
			continue
		}
		out = append(out, cells)
	}
	return out
}
