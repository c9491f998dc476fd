package template

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maquinex/import-service/internal/importer"
	"github.com/maquinex/import-service/internal/parsers/xlsx"
	"github.com/maquinex/import-service/internal/types"
)

func TestHeadersCount(t *testing.T) {
	assert.Len(t, Headers(), 34)
}

func TestBytesProducesReadableWorkbook(t *testing.T) {
	data, err := Bytes()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	headers, rows, err := xlsx.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, Headers(), headers)
	assert.Len(t, rows, 2)
}

// Every template header must land on its intended field when the filled-in
// template comes back through the import pipeline.
func TestTemplateHeadersMapCleanly(t *testing.T) {
	mapper := importer.NewColumnMapper(importer.DefaultMappingRules())

	expected := []string{
		types.FieldMQ,
		types.FieldShipmentTypeV2,
		types.FieldSupplierName,
		types.FieldModel,
		types.FieldSerial,
		types.FieldInvoiceDate,
		types.FieldLocation,
		types.FieldPortOfEmbarkation,
		types.FieldCurrencyType,
		types.FieldIncoterm,
		types.FieldEXWValueFormatted,
		types.FieldFOBExpenses,
		types.FieldDisassemblyLoadValue,
		types.FieldUSDJPYRate,
		types.FieldTRM,
		types.FieldPaymentDate,
		types.FieldShipmentDepartureDate,
		types.FieldShipmentArrivalDate,
		types.FieldSalesReported,
		types.FieldCommerceReported,
		types.FieldLuisLemusReported,
		types.FieldYear,
		types.FieldHours,
		types.FieldSpec,
		types.FieldBrand,
		types.FieldMachineType,
		types.FieldTipo,
		types.FieldOceanUSD,
		types.FieldGastosPtoCOP,
		types.FieldTrasladosNacionalesCOP,
		types.FieldPptoReparacionCOP,
		types.FieldPvpEst,
		"invoice_number",
		"purchase_order",
	}

	headers := Headers()
	require.Len(t, headers, len(expected))
	for i, h := range headers {
		field, keep := mapper.MapHeader(h)
		require.True(t, keep, "header %q dropped", h)
		assert.Equal(t, expected[i], field, "header %q", h)
	}
}

// The two example rows ship pre-filled with values that pass validation, so
// a user can round-trip the untouched template as a smoke test.
func TestTemplateExampleRowsValidate(t *testing.T) {
	data, err := Bytes()
	require.NoError(t, err)

	result, err := importer.NewDefault().ImportFile(context.Background(), Filename, data)
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.Len(t, result.Rows, 2)

	first := result.Rows[0]
	assert.Equal(t, "COMPRA_DIRECTA", *first.Tipo)
	assert.Equal(t, "JPY", *first.CurrencyType)
	assert.Equal(t, "8169400", *first.EXWValueFormatted)

	second := result.Rows[1]
	assert.Equal(t, "SUBASTA", *second.Tipo)
	assert.Equal(t, "USD", *second.CurrencyType)
}
