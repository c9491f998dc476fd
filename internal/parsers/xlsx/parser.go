// Package xlsx decodes OOXML workbooks (.xlsx, .xlsm, .xltx, .xltm) into a
// header row and positional data rows.
package xlsx

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// sheetPreferences are matched case-insensitively against sheet names; the
// first sheet containing one of them is decoded. Purchase workbooks keep the
// consolidated record sheet under one of these markers, with auxiliary
// sheets around it.
var sheetPreferences = []string{"union", "doe", "dop"}

// Decode opens a workbook from memory and returns the preferred sheet's
// first row as headers and the remainder as data rows. Cell values come back
// as display strings with date cells rendered in their cell format.
func Decode(content []byte) (headers []string, rows [][]string, err error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, nil, fmt.Errorf("no se pudo abrir el libro: %w", err)
	}
	defer f.Close()

	sheet, err := selectSheet(f)
	if err != nil {
		return nil, nil, err
	}

	all, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("no se pudo leer la hoja %q: %w", sheet, err)
	}
	if len(all) < 2 {
		return nil, nil, fmt.Errorf("la hoja %q no contiene filas de datos", sheet)
	}

	headers = make([]string, len(all[0]))
	for i, cell := range all[0] {
		headers[i] = strings.TrimSpace(cell)
	}

	rows = make([][]string, 0, len(all)-1)
	for _, raw := range all[1:] {
		if isEmptyRow(raw) {
			continue
		}
		cells := make([]string, len(raw))
		for i, c := range raw {
			cells[i] = strings.TrimSpace(c)
		}
		rows = append(rows, cells)
	}
	return headers, rows, nil
}

func selectSheet(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("el libro no contiene hojas")
	}
	for _, name := range sheets {
		lower := strings.ToLower(name)
		for _, marker := range sheetPreferences {
			if strings.Contains(lower, marker) {
				return name, nil
			}
		}
	}
	return sheets[0], nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
