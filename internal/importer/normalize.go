package importer

import (
	"math"
	"strconv"
	"strings"

	"github.com/maquinex/import-service/internal/types"
)

// currencyGlyphs is the literal set of currency symbols stripped before
// numeric parsing. This is intentionally not locale-aware.
const currencyGlyphs = "¥$€£₹₽₩₪₫¢₱₦₴₺"

// Normalizer coerces raw cell values into their canonical representation
// for the target field.
type Normalizer struct {
	numeric map[string]bool
}

// NewNormalizer creates a normalizer with the fixed numeric field set.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		numeric: map[string]bool{
			types.FieldFOBExpenses:            true,
			types.FieldDisassemblyLoadValue:   true,
			types.FieldUSDJPYRate:             true,
			types.FieldTRM:                    true,
			types.FieldOceanUSD:               true,
			types.FieldGastosPtoCOP:           true,
			types.FieldTrasladosNacionalesCOP: true,
			types.FieldPptoReparacionCOP:      true,
			types.FieldPvpEst:                 true,
			types.FieldYear:                   true,
			types.FieldHours:                  true,
		},
	}
}

// IsNumeric reports whether the field belongs to the numeric set.
func (n *Normalizer) IsNumeric(field string) bool {
	return n.numeric[field]
}

// ParseNumeric parses a raw cell into a float, tolerating currency glyphs
// and thousands-separator commas: "¥8,169,400" -> 8169400, "$ 3,873.00" ->
// 3873. Empty or non-numeric input yields nil.
//
// Known limitation: the parser assumes comma-thousands / dot-decimal. A
// European-formatted value like "1.234,56" parses as 1.23456 — source files
// in circulation use the single convention, so this is kept as-is rather
// than guessed at.
func ParseNumeric(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(currencyGlyphs, r) {
			return -1
		}
		return r
	}, s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.Join(strings.Fields(s), "")
	s = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return nil
	}
	return &f
}

// FormatNumeric renders a parsed numeric value back to its canonical string
// form, used for fields stored as formatted strings.
func FormatNumeric(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Apply writes one raw cell value onto the row under its canonical field.
// Numeric fields are coerced, spec is trimmed with empty collapsing to
// absent, the EXW value passes through numeric parsing before being stored
// as a string again, and everything else passes through as given. Unmapped
// fields land in the Extra bag.
func (n *Normalizer) Apply(row *types.ParsedRow, field, raw string) {
	if n.numeric[field] {
		n.applyNumeric(row, field, ParseNumeric(raw))
		return
	}

	switch field {
	case types.FieldSpec:
		if v := strings.TrimSpace(raw); v != "" {
			row.Spec = &v
		}
	case types.FieldEXWValueFormatted:
		if f := ParseNumeric(raw); f != nil {
			row.EXWValueFormatted = types.StringPtr(FormatNumeric(*f))
		}
	default:
		n.applyString(row, field, raw)
	}
}

func (n *Normalizer) applyNumeric(row *types.ParsedRow, field string, v *float64) {
	switch field {
	case types.FieldFOBExpenses:
		row.FOBExpenses = v
	case types.FieldDisassemblyLoadValue:
		row.DisassemblyLoadValue = v
	case types.FieldUSDJPYRate:
		row.USDJPYRate = v
	case types.FieldTRM:
		row.TRM = v
	case types.FieldOceanUSD:
		row.OceanUSD = v
	case types.FieldGastosPtoCOP:
		row.GastosPtoCOP = v
	case types.FieldTrasladosNacionalesCOP:
		row.TrasladosNacionalesCOP = v
	case types.FieldPptoReparacionCOP:
		row.PptoReparacionCOP = v
	case types.FieldPvpEst:
		row.PvpEst = v
	case types.FieldYear:
		row.Year = v
	case types.FieldHours:
		row.Hours = v
	}
}

func (n *Normalizer) applyString(row *types.ParsedRow, field, raw string) {
	if raw == "" {
		return
	}
	v := raw

	switch field {
	case types.FieldMQ:
		row.MQ = &v
	case types.FieldShipmentTypeV2:
		row.ShipmentTypeV2 = &v
	case types.FieldSupplierName:
		row.SupplierName = &v
	case types.FieldModel:
		row.Model = &v
	case types.FieldSerial:
		row.Serial = &v
	case types.FieldInvoiceDate:
		row.InvoiceDate = &v
	case types.FieldLocation:
		row.Location = &v
	case types.FieldPortOfEmbarkation:
		row.PortOfEmbarkation = &v
	case types.FieldCurrencyType:
		row.CurrencyType = &v
	case types.FieldIncoterm:
		row.Incoterm = &v
	case types.FieldPaymentDate:
		row.PaymentDate = &v
	case types.FieldShipmentDepartureDate:
		row.ShipmentDepartureDate = &v
	case types.FieldShipmentArrivalDate:
		row.ShipmentArrivalDate = &v
	case types.FieldSalesReported:
		row.SalesReported = &v
	case types.FieldCommerceReported:
		row.CommerceReported = &v
	case types.FieldLuisLemusReported:
		row.LuisLemusReported = &v
	case types.FieldBrand:
		row.Brand = &v
	case types.FieldMachineType:
		row.MachineType = &v
	case types.FieldTipo:
		row.Tipo = &v
	case types.FieldPurchaseType:
		row.PurchaseType = &v
	default:
		if row.Extra == nil {
			row.Extra = make(map[string]string)
		}
		row.Extra[field] = v
	}
}
