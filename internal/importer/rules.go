package importer

import "github.com/maquinex/import-service/internal/types"

// MappingRule maps raw spreadsheet headers onto a canonical field. A rule
// matches when at least one IncludeAny token is a substring of the normalized
// header and no ExcludeAny token is. Rules are tried in slice order and the
// first match wins, so the order below is load-bearing.
type MappingRule struct {
	Field      string
	IncludeAny []string
	ExcludeAny []string
}

// DefaultMappingRules returns the header mapping table for equipment purchase
// exports. Returned fresh on every call so callers never share mutable state.
func DefaultMappingRules() []MappingRule {
	return []MappingRule{
		{Field: types.FieldMQ, IncludeAny: []string{"mq"}},
		{Field: types.FieldShipmentTypeV2, IncludeAny: []string{"shipment"}, ExcludeAny: []string{"type"}},
		{Field: types.FieldSupplierName, IncludeAny: []string{"proveedor"}},
		{Field: types.FieldModel, IncludeAny: []string{"modelo"}},
		{Field: types.FieldSerial, IncludeAny: []string{"serial"}},
		{Field: types.FieldInvoiceDate, IncludeAny: []string{"fecha factura", "invoice_date"}},
		{Field: types.FieldLocation, IncludeAny: []string{"ubicación", "location"}},
		// "port" alone would swallow the reportado/reported columns further
		// down, hence the exclusion.
		{Field: types.FieldPortOfEmbarkation, IncludeAny: []string{"puerto embarque", "port"}, ExcludeAny: []string{"report"}},
		{Field: types.FieldCurrencyType, IncludeAny: []string{"moneda", "currency", "crcy"}},
		{Field: types.FieldIncoterm, IncludeAny: []string{"incoterm"}},
		{Field: types.FieldEXWValueFormatted, IncludeAny: []string{"valor bp", "exw"}},
		{Field: types.FieldFOBExpenses, IncludeAny: []string{"gastos lavado", "fob_expenses"}},
		{Field: types.FieldDisassemblyLoadValue, IncludeAny: []string{"desensamblaje", "disassembly"}},
		{Field: types.FieldUSDJPYRate, IncludeAny: []string{"contravalor", "usd_jpy_rate"}},
		{Field: types.FieldTRM, IncludeAny: []string{"trm"}},
		{Field: types.FieldPaymentDate, IncludeAny: []string{"fecha de pago", "payment_date"}},
		{Field: types.FieldShipmentDepartureDate, IncludeAny: []string{"etd", "departure"}},
		{Field: types.FieldShipmentArrivalDate, IncludeAny: []string{"eta", "arrival"}},
		{Field: types.FieldSalesReported, IncludeAny: []string{"reportado ventas", "sales_reported"}},
		{Field: types.FieldCommerceReported, IncludeAny: []string{"reportado a comercio", "commerce_reported"}},
		{Field: types.FieldLuisLemusReported, IncludeAny: []string{"reporte luis", "luis_lemus"}},
		{Field: types.FieldYear, IncludeAny: []string{"año", "year"}},
		{Field: types.FieldHours, IncludeAny: []string{"horas", "hours"}},
		{Field: types.FieldSpec, IncludeAny: []string{"spec"}},
		{Field: types.FieldBrand, IncludeAny: []string{"marca", "brand"}},
		{Field: types.FieldMachineType, IncludeAny: []string{"tipo maquina", "machine_type"}},
		{Field: types.FieldTipo, IncludeAny: []string{"tipo"}, ExcludeAny: []string{"maquina"}},
		{Field: types.FieldOceanUSD, IncludeAny: []string{"ocean"}},
		{Field: types.FieldGastosPtoCOP, IncludeAny: []string{"gastos pto"}},
		{Field: types.FieldTrasladosNacionalesCOP, IncludeAny: []string{"traslados nacionales", "traslados", "trasld"}},
		{Field: types.FieldPptoReparacionCOP, IncludeAny: []string{"reparacion", "mant_ejec"}},
		{Field: types.FieldPvpEst, IncludeAny: []string{"pvp est", "pvp_est"}},
	}
}

// Canonical controlled-vocabulary tokens.
const (
	CurrencyJPY = "JPY"
	CurrencyGBP = "GBP"
	CurrencyEUR = "EUR"
	CurrencyUSD = "USD"
	CurrencyCAD = "CAD"

	PurchaseTypeDirecta = "COMPRA_DIRECTA"
	PurchaseTypeSubasta = "SUBASTA"

	IncotermEXY = "EXY"
	IncotermFOB = "FOB"
	IncotermCIF = "CIF"
)

// Vocabulary is the configuration data the row validator checks against.
// All comparisons are case-insensitive after trimming.
type Vocabulary struct {
	Suppliers            []string
	CurrencySynonyms     map[string]string
	Currencies           []string
	PurchaseTypeSynonyms map[string]string
	PurchaseTypes        []string
	Incoterms            []string
}

// DefaultVocabulary returns the business whitelists for equipment purchase
// records. Returned fresh on every call, same rationale as the mapping rules.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Suppliers: []string{
			"SUMITOMO CORPORATION",
			"MARUBENI",
			"ITOCHU CONSTRUCTION MACHINERY",
			"SOJITZ MACHINERY",
			"KANEMATSU",
			"HANWA CO",
			"OKADA AIYON",
			"TOZAI TRADING",
			"NIPPON MACHINERY TRADERS",
			"KOMATSU USED EQUIPMENT",
			"HITACHI CONSTRUCTION MACHINERY TRADING",
			"KOBELCO INTERNATIONAL",
			"TADANO TRADING",
			"YANMAR USED MACHINERY",
			"TAKEUCHI TRADING",
			"RITCHIE BROS",
			"IRONPLANET",
			"EUROAUCTIONS",
			"CAT AUCTION SERVICES",
			"MASCUS TRADING",
			"SHANGHAI MACHINERY EXCHANGE",
			"WORLD USED MACHINERY",
			"PACIFIC EQUIPMENT BROKERS",
			"ATLANTIC HEAVY MACHINERY",
			"GLOBAL LIFT TRADING",
			"MAQUINARIA DEL PACIFICO",
			"IMPORTADORA ANDINA DE EQUIPOS",
			"TRACTO REPUESTOS DEL NORTE",
			"COMERCIAL DE MAQUINARIA BOGOTA",
			"EQUIPOS Y MONTACARGAS DEL CARIBE",
		},
		CurrencySynonyms: map[string]string{
			"EURO":              CurrencyEUR,
			"YEN":               CurrencyJPY,
			"DOLAR":             CurrencyUSD,
			"DOLLAR":            CurrencyUSD,
			"POUND":             CurrencyGBP,
			"LIBRA":             CurrencyGBP,
			"CANADIAN DOLLAR":   CurrencyCAD,
			"DOLLAR CANADIENSE": CurrencyCAD,
		},
		Currencies: []string{CurrencyJPY, CurrencyGBP, CurrencyEUR, CurrencyUSD, CurrencyCAD},
		PurchaseTypeSynonyms: map[string]string{
			"COMPRA DIRECTA": PurchaseTypeDirecta,
			"DIRECTA":        PurchaseTypeDirecta,
			"AUCTION":        PurchaseTypeSubasta,
		},
		PurchaseTypes: []string{PurchaseTypeDirecta, PurchaseTypeSubasta},
		Incoterms:     []string{IncotermEXY, IncotermFOB, IncotermCIF},
	}
}
