// Package template generates the blank spreadsheet users fill in before an
// import. The header row is phrased so every column lands on its intended
// field when the file comes back through the mapper.
package template

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetName is the sheet the generated workbook carries. It matches the
// importer's first sheet preference so the template round-trips untouched.
const SheetName = "UNION"

// Filename is the suggested download name for the generated workbook.
const Filename = "plantilla_compras.xlsx"

// Headers returns the template's column headers in order. The last two
// columns have no mapping rule and ride through as pass-through fields.
func Headers() []string {
	return []string{
		"MQ",
		"SHIPMENT",
		"PROVEEDOR",
		"MODELO",
		"SERIAL",
		"FECHA FACTURA",
		"UBICACIÓN",
		"PUERTO EMBARQUE",
		"MONEDA",
		"INCOTERM",
		"VALOR BP",
		"GASTOS LAVADO",
		"DESENSAMBLAJE Y CARGUE",
		"CONTRAVALOR USD/JPY",
		"TRM",
		"FECHA DE PAGO",
		"ETD",
		"ETA",
		"REPORTADO VENTAS",
		"REPORTADO A COMERCIO",
		"REPORTE LUIS LEMUS",
		"AÑO",
		"HORAS",
		"SPEC",
		"MARCA",
		"TIPO MAQUINA",
		"TIPO",
		"OCEAN USD",
		"GASTOS PTO COP",
		"TRASLADOS NACIONALES COP",
		"PPTO REPARACION COP",
		"PVP EST",
		"INVOICE_NUMBER",
		"PURCHASE_ORDER",
	}
}

// exampleRows are the two sample records shipped with the template, one per
// purchase type, pre-filled with vocabulary values that pass validation.
func exampleRows() [][]string {
	return [][]string{
		{
			"MQ-0001", "MARITIMO", "SUMITOMO CORPORATION", "PC200-8", "C12345",
			"2025-01-15", "YOKOHAMA", "YOKOHAMA", "YEN", "EXY",
			"¥8,169,400", "120000", "85000", "151.20", "4350.50",
			"2025-02-01", "2025-02-10", "2025-03-22", "SI", "SI",
			"NO", "2018", "6540", "PC200-8 STD", "KOMATSU",
			"EXCAVADORA", "COMPRA DIRECTA", "2400", "1850000", "3200000",
			"15000000", "420000000", "INV-2025-001", "OC-2025-001",
		},
		{
			"MQ-0002", "MARITIMO", "RITCHIE BROS", "320D2", "D67890",
			"2025-01-20", "ORLANDO", "MIAMI", "DOLAR", "FOB",
			"$ 3,873.00", "0", "1200", "", "4280.00",
			"2025-02-05", "2025-02-18", "2025-04-02", "NO", "NO",
			"NO", "2016", "8900", "320D2 GC", "CATERPILLAR",
			"EXCAVADORA", "SUBASTA", "3100", "2100000", "2800000",
			"22000000", "380000000", "INV-2025-002", "OC-2025-002",
		},
	}
}

// Build assembles the template workbook. The caller owns the returned file
// and must Close it.
func Build() (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create template sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := writeRow(f, 1, Headers()); err != nil {
		return nil, err
	}
	for i, row := range exampleRows() {
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		end, _ := excelize.CoordinatesToCellName(len(Headers()), 1)
		_ = f.SetCellStyle(SheetName, "A1", end, style)
	}

	return f, nil
}

// Bytes renders the template workbook to an xlsx byte slice.
func Bytes() ([]byte, error) {
	f, err := Build()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render template workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, rowNum int, values []string) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("failed to address cell: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}
