package importer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maquinex/import-service/internal/types"
)

const validCSV = `MQ,MODELO,SERIAL,PROVEEDOR,MONEDA,TIPO,INCOTERM,VALOR BP,TRM,SUMA VALOR FOB,INVOICE_NUMBER
MQ-001,PC200-8,C12345,SUMITOMO CORPORATION,YEN,COMPRA DIRECTA,EXY,¥8169400,4350.50,9000000,INV-001
MQ-002,320D2,D67890,RITCHIE BROS,DOLAR,AUCTION,FOB,$ 3873.00,4280.00,5000,INV-002
`

func TestImportFileValid(t *testing.T) {
	imp := NewDefault()

	result, err := imp.ImportFile(context.Background(), "compras.csv", []byte(validCSV))
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, 2, result.TotalRows)

	first := result.Rows[0]
	assert.Equal(t, "MQ-001", *first.MQ)
	assert.Equal(t, "PC200-8", *first.Model)
	assert.Equal(t, "JPY", *first.CurrencyType)
	assert.Equal(t, "COMPRA_DIRECTA", *first.Tipo)
	assert.Equal(t, "COMPRA_DIRECTA", *first.PurchaseType)
	assert.Equal(t, "EXY", *first.Incoterm)
	assert.Equal(t, "8169400", *first.EXWValueFormatted)
	assert.Equal(t, 4350.50, *first.TRM)
	assert.Equal(t, "INV-001", first.Extra["invoice_number"])

	second := result.Rows[1]
	assert.Equal(t, "USD", *second.CurrencyType)
	assert.Equal(t, "SUBASTA", *second.Tipo)
	assert.Equal(t, "3873", *second.EXWValueFormatted)

	// The computed FOB total column must not survive the import under any
	// name.
	for _, row := range result.Rows {
		for key := range row.Extra {
			assert.NotContains(t, key, "valor fob")
		}
	}

	require.Len(t, result.Preview, 2)
	assert.NotEqual(t, result.Preview[0].Key, result.Preview[1].Key)
}

func TestImportFileAllOrNothing(t *testing.T) {
	imp := NewDefault()

	// Second row is missing the mandatory purchase type; first row is fine.
	csv := `MODELO,SERIAL,TIPO
PC200-8,C12345,SUBASTA
320D2,D67890,
`
	result, err := imp.ImportFile(context.Background(), "compras.csv", []byte(csv))
	require.NoError(t, err)

	assert.Empty(t, result.Rows, "one bad row rejects the whole file")
	assert.Empty(t, result.Preview)
	assert.Equal(t, 2, result.TotalRows)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Fila 3:")
	require.Len(t, result.ErrorItems, 1)
}

func TestImportFileErrorListSummarized(t *testing.T) {
	imp := NewDefault()

	var sb strings.Builder
	sb.WriteString("MODELO,TIPO\n")
	for i := 0; i < 15; i++ {
		// Every row has an invalid purchase type.
		fmt.Fprintf(&sb, "PC200-%d,LEASING\n", i)
	}

	result, err := imp.ImportFile(context.Background(), "compras.csv", []byte(sb.String()))
	require.NoError(t, err)
	assert.Len(t, result.Errors, 15)
	require.Len(t, result.ErrorItems, 11)
	assert.Equal(t, "... y 5 error(es) más", result.ErrorItems[10].Message)
}

func TestImportFileRejectsUnsupportedExtension(t *testing.T) {
	imp := NewDefault()

	for _, name := range []string{"compras.pdf", "compras.txt", "compras"} {
		_, err := imp.ImportFile(context.Background(), name, []byte("MODELO\nPC200"))
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "formato de archivo no soportado")
	}
}

func TestImportFileAcceptedExtensions(t *testing.T) {
	// Only the extension gate is under test; CSV content goes through the
	// CSV decoder regardless, so non-csv extensions would fail later.
	imp := NewDefault()

	result, err := imp.ImportFile(context.Background(), "COMPRAS.CSV", []byte(validCSV))
	require.NoError(t, err, "extension check is case-insensitive")
	assert.Len(t, result.Rows, 2)
}

func TestImportFileEmptyFile(t *testing.T) {
	imp := NewDefault()

	_, err := imp.ImportFile(context.Background(), "compras.csv", []byte("MODELO,TIPO\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no contiene filas de datos")
}

// Short rows are tolerated: missing trailing cells simply leave their fields
// absent instead of failing the file.
func TestImportFileShortRows(t *testing.T) {
	imp := NewDefault()

	csv := `MODELO,SERIAL,TIPO,MONEDA
PC200-8,C12345,SUBASTA,YEN
320D2,D67890,SUBASTA
`
	result, err := imp.ImportFile(context.Background(), "compras.csv", []byte(csv))
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	assert.Nil(t, result.Rows[1].CurrencyType)
}

func TestImportFilePreviewUsesValidatedRows(t *testing.T) {
	imp := NewDefault()

	result, err := imp.ImportFile(context.Background(), "compras.csv", []byte(validCSV))
	require.NoError(t, err)

	// Preview rows carry canonical values, not the raw spreadsheet input.
	assert.Equal(t, "JPY", result.Preview[0].Row.Get(types.FieldCurrencyType))
	assert.Equal(t, "COMPRA_DIRECTA", result.Preview[0].Row.Get(types.FieldTipo))
}
