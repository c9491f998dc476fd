// Package csv decodes equipment purchase CSV exports into a header row and
// positional data rows.
//
// The format is deliberately simple: lines split on \n, cells split on
// literal commas, no quoted-field or escaping support. Source files in
// circulation are comma-free in their values; changing this would silently
// change import semantics for existing files, so the constraint stands.
package csv

import (
	"fmt"
	"strings"

	"github.com/maquinex/import-service/internal/parsers/charset"
)

// Decode splits raw CSV bytes into lowercased, trimmed headers and per-cell
// trimmed data rows. Blank lines are discarded. A file without a header line
// and at least one data row is rejected.
func Decode(content []byte) (headers []string, rows [][]string, err error) {
	enc := charset.DetectEncoding(content)
	text, err := charset.Decode(content, enc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode file text: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) < 2 {
		return nil, nil, fmt.Errorf("el archivo CSV no contiene filas de datos")
	}

	for _, h := range strings.Split(lines[0], ",") {
		headers = append(headers, strings.ToLower(strings.TrimSpace(h)))
	}

	rows = make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := strings.Split(line, ",")
		for i, c := range cells {
			cells[i] = strings.TrimSpace(c)
		}
		rows = append(rows, cells)
	}
	return headers, rows, nil
}
